package store

import (
	"errors"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Keys used in the state directory. They match the local storage keys of
// the web client so the layout is familiar to anyone who used it.
const (
	TokenKey      = "syncvault_token"
	DeviceIDKey   = "deviceId"
	DeviceNameKey = "deviceName"
)

// Tokens persists the bearer token. It never inspects the token.
type Tokens struct {
	KV KV
}

func (t *Tokens) Get() (string, bool) {
	v, ok, err := t.KV.Read(TokenKey)
	if err != nil || !ok || v == "" {
		return "", false
	}
	return v, true
}

func (t *Tokens) Set(token string) error {
	if token == "" {
		return errors.New("store: refusing to persist an empty token")
	}
	return t.KV.Write(TokenKey, token)
}

func (t *Tokens) Clear() error {
	return t.KV.Erase(TokenKey)
}

// IsAuthenticated reports whether a token is present; expiry is only
// discovered when the server rejects it.
func (t *Tokens) IsAuthenticated() bool {
	_, ok := t.Get()
	return ok
}

// Token satisfies api.TokenSource.
func (t *Tokens) Token() string {
	v, _ := t.Get()
	return v
}

// Devices persists the selected device id/name pair.
type Devices struct {
	KV KV
}

// Get reports the stored selection; both keys must exist, although the
// name may be empty.
func (d *Devices) Get() (snippet.Selection, bool) {
	id, ok, err := d.KV.Read(DeviceIDKey)
	if err != nil || !ok || id == "" {
		return snippet.Selection{}, false
	}
	name, ok, err := d.KV.Read(DeviceNameKey)
	if err != nil || !ok {
		return snippet.Selection{}, false
	}
	return snippet.Selection{DeviceID: id, DeviceName: name}, true
}

func (d *Devices) Set(id, name string) error {
	if id == "" {
		return errors.New("store: device id required")
	}
	if err := d.KV.Write(DeviceIDKey, id); err != nil {
		return err
	}
	return d.KV.Write(DeviceNameKey, name)
}

func (d *Devices) Clear() error {
	return errors.Join(d.KV.Erase(DeviceIDKey), d.KV.Erase(DeviceNameKey))
}

// State groups everything the client persists.
type State struct {
	Tokens  *Tokens
	Devices *Devices
}

func NewState(kv KV) *State {
	return &State{Tokens: &Tokens{KV: kv}, Devices: &Devices{KV: kv}}
}

// ClearAll forgets the token and the device together, as logout does.
func (s *State) ClearAll() error {
	return errors.Join(s.Tokens.Clear(), s.Devices.Clear())
}
