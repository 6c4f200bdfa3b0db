package consul

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

func (cb *ConsulBackend) Read(ctx context.Context, path string) ([]byte, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	consulKey := cb.buildKey(path)
	pair, _, err := cb.kv.Get(consulKey, cb.queryOptions(ctx))
	if err != nil {
		return nil, data.Other(fmt.Sprintf("consul get '%s'", consulKey), err)
	}
	if pair == nil {
		return nil, backend.NotFound(backend.CleanKey(path))
	}

	return pair.Value, nil
}

func (cb *ConsulBackend) Write(ctx context.Context, path string, content []byte) error {
	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}

	caps := cb.GetCapabilities()
	if caps.MaxObjectSize > 0 && int64(len(content)) > caps.MaxObjectSize {
		return data.Other(fmt.Sprintf("write would exceed max object size of %d bytes (Consul KV limit: 512KB)", caps.MaxObjectSize), nil)
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair := &api.KVPair{
		Key:   cb.buildKey(key),
		Value: content,
	}
	if _, err := cb.kv.Put(pair, cb.writeOptions(ctx)); err != nil {
		return data.Other(fmt.Sprintf("consul put '%s'", pair.Key), err)
	}

	return nil
}

func (cb *ConsulBackend) Exists(ctx context.Context, path string) (bool, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return true, nil
	}

	consulKey := cb.buildKey(key)
	pair, _, err := cb.kv.Get(consulKey, cb.queryOptions(ctx))
	if err != nil {
		return false, data.Other(fmt.Sprintf("consul get '%s'", consulKey), err)
	}
	if pair != nil {
		return true, nil
	}

	// Virtual directory
	keys, _, err := cb.kv.Keys(consulKey+"/", "/", cb.queryOptions(ctx))
	if err != nil {
		return false, data.Other(fmt.Sprintf("consul keys '%s/'", consulKey), err)
	}

	return len(keys) > 0, nil
}

func (cb *ConsulBackend) Remove(ctx context.Context, path string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	key := backend.CleanKey(path)
	consulKey := cb.buildKey(key)

	pair, _, err := cb.kv.Get(consulKey, cb.queryOptions(ctx))
	if err != nil {
		return data.Other(fmt.Sprintf("consul get '%s'", consulKey), err)
	}
	if pair == nil {
		return backend.NotFound(key)
	}

	if _, err := cb.kv.Delete(consulKey, cb.writeOptions(ctx)); err != nil {
		return data.Other(fmt.Sprintf("consul delete '%s'", consulKey), err)
	}

	return nil
}

func (cb *ConsulBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	key := backend.CleanKey(path)
	collector := backend.NewChildCollector(key)

	prefix := cb.buildKey(collector.Prefix())
	if collector.Prefix() != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}

	// The separator makes Consul fold deeper keys into their first level "dir/" entry
	keys, _, err := cb.kv.Keys(prefix, "/", cb.queryOptions(ctx))
	if err != nil {
		return nil, data.Other(fmt.Sprintf("consul keys '%s'", prefix), err)
	}
	for _, consulKey := range keys {
		collector.Add(cb.stripKey(consulKey))
	}

	isEntry := false
	if key != backend.RootPath {
		pair, _, err := cb.kv.Get(cb.buildKey(key), cb.queryOptions(ctx))
		if err != nil {
			return nil, data.Other(fmt.Sprintf("consul get '%s'", key), err)
		}
		isEntry = pair != nil
	}

	return collector.Result(key, isEntry)
}

func (cb *ConsulBackend) queryOptions(ctx context.Context) *api.QueryOptions {
	opts := &api.QueryOptions{}
	return opts.WithContext(ctx)
}

func (cb *ConsulBackend) writeOptions(ctx context.Context) *api.WriteOptions {
	opts := &api.WriteOptions{}
	return opts.WithContext(ctx)
}
