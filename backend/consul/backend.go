package consul

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vfsmux/backend"
)

// ConsulBackend stores entries in the HashiCorp Consul KV store.
// Every entry is one KV pair whose key is the relative path below the configured prefix.
// Directories are virtual and only exist as key prefixes.
//
// Consul KV has a 512KB limit per value, so this backend is best suited for
// configuration files and other small assets.
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "/", meaning no prefix)
	Prefix string
}

// NewConsulBackend creates a new Consul-backed backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// GetCapabilities returns a list of capabilities supported by this backend
func (*ConsulBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: append(backend.ReadWriteCapabilities(), backend.CapabilityPersistent),
		// Consul KV has a default limit of 512KB per value
		MaxObjectSize: 512 * 1024,
	}
}

// Open is a no-op, the Consul client is stateless.
func (*ConsulBackend) Open(ctx context.Context, path string) error {
	return nil
}

// Close is a no-op, the Consul client is stateless.
func (*ConsulBackend) Close(ctx context.Context, path string) error {
	return nil
}

// buildKey constructs the full Consul KV key from a relative path
func (cb *ConsulBackend) buildKey(path string) string {
	key := backend.CleanKey(path)

	// Handle "/" prefix specially - it means no prefix, just use the key
	if cb.config.Prefix == "/" {
		return key
	}

	prefix := strings.Trim(cb.config.Prefix, "/") + "/"
	return prefix + key
}

// stripKey is the inverse of buildKey.
func (cb *ConsulBackend) stripKey(consulKey string) string {
	if cb.config.Prefix == "/" {
		return consulKey
	}

	return strings.TrimPrefix(consulKey, strings.Trim(cb.config.Prefix, "/")+"/")
}
