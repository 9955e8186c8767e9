// Package secrets wraps the Vault API client for reading deployment secrets
// such as the Postgres DSN and the NATS URL.
package secrets

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// Manager wraps the Vault API client for reading secrets.
type Manager struct {
	client *api.Client
}

// NewManager creates a Vault client pointed at the given address and
// authenticated with the provided token.
func NewManager(address, token string) (*Manager, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client initialization failed: %w", err)
	}
	client.SetToken(token)

	return &Manager{client: client}, nil
}

// Read reads a secret at the given path and returns the raw data map.
// For KV v2 backends the caller must unwrap the nested "data" key.
func (m *Manager) Read(path string) (map[string]interface{}, error) {
	secret, err := m.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data found at %s", path)
	}
	return secret.Data, nil
}

// ReadKV2 is a convenience wrapper that reads from a KV v2 backend and
// returns the inner "data" map, unwrapping the v2 envelope automatically.
func (m *Manager) ReadKV2(path string) (map[string]interface{}, error) {
	raw, err := m.Read(path)
	if err != nil {
		return nil, err
	}
	data, ok := raw["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected KV v2 payload at %s", path)
	}
	return data, nil
}

// StringOr returns the string value for key in data, or fallback when the
// key is absent or not a string.
func StringOr(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
