package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/snippet"
)

// ValidateDeviceName returns the trimmed name or a validation error.
func ValidateDeviceName(name string) (string, error) {
	if utf8.RuneCountInString(name) > MaxDeviceName {
		return "", apperror.Validation("name", fmt.Sprintf("device name must be at most %d characters", MaxDeviceName))
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperror.Required("device name")
	}
	return trimmed, nil
}

// Devices lists the account's devices.
func (s *Service) Devices(ctx context.Context) ([]*snippet.Device, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	devices, err := s.Backend.Devices(ctx)
	return devices, s.guard(err)
}

// RegisterDevice validates name and registers it with the server. It does
// not select the device.
func (s *Service) RegisterDevice(ctx context.Context, name string) (*snippet.Device, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	name, err := ValidateDeviceName(name)
	if err != nil {
		return nil, err
	}
	d, err := s.Backend.RegisterDevice(ctx, name)
	if err != nil {
		return nil, s.guard(err)
	}
	return d, nil
}

// SelectDevice persists the device this client acts as.
func (s *Service) SelectDevice(id, name string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return apperror.Required("device id")
	}
	if err := s.State.Devices.Set(id, name); err != nil {
		return err
	}
	s.Log.Info("device selected", slog.String("id", id), slog.String("name", name))
	return nil
}

// RegisterAndSelect registers a new device and selects it.
func (s *Service) RegisterAndSelect(ctx context.Context, name string) (*snippet.Device, error) {
	d, err := s.RegisterDevice(ctx, name)
	if err != nil {
		return nil, err
	}
	return d, s.SelectDevice(d.ID, d.Name)
}

// DeleteDevice removes a device; deleting the selected one also clears the
// local selection.
func (s *Service) DeleteDevice(ctx context.Context, id string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := s.guard(s.Backend.DeleteDevice(ctx, id)); err != nil {
		return err
	}
	if sel, ok := s.State.Devices.Get(); ok && sel.DeviceID == id {
		return s.State.Devices.Clear()
	}
	return nil
}

// FindDevice resolves a device by exact id or case-insensitive name.
func FindDevice(devices []*snippet.Device, ref string) (*snippet.Device, bool) {
	for _, d := range devices {
		if d.ID == ref {
			return d, true
		}
	}
	for _, d := range devices {
		if strings.EqualFold(d.Name, ref) {
			return d, true
		}
	}
	return nil, false
}
