package app

import (
	"log/slog"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/store"
)

// Open loads the persisted session described by cfg and connects a service
// to the configured server.
func Open(cfg store.Config, log *slog.Logger) (*Service, error) {
	kv, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return Connect(cfg.APIURL(), store.NewState(kv), log)
}

// Connect builds a service over state that talks to baseURL.
func Connect(baseURL string, state *store.State, log *slog.Logger, opts ...api.Option) (*Service, error) {
	if log != nil {
		opts = append([]api.Option{api.WithLogger(log)}, opts...)
	}
	client, err := api.New(baseURL, state.Tokens, opts...)
	if err != nil {
		return nil, err
	}
	return New(client, state, log), nil
}
