package store

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// KV is the persistent key/value storage the client state lives in. It
// stands in for browser local storage: small string values that survive
// restarts.
type KV interface {
	Read(key string) (string, bool, error)
	Write(key, value string) error
	Erase(key string) error
	Keys() []string
}

// Load opens the diskv-backed KV described by cfg, loading the default
// configuration when cfg is nil.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 0, // another syncvault process may write concurrently
		PathPerm:     0o700,
		FilePerm:     0o600,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func flatTransform(string) []string {
	return []string{}
}

func (p *persistence) Read(key string) (string, bool, error) {
	if !p.d.Has(key) {
		return "", false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (p *persistence) Write(key, value string) error {
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys() []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(nil) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
