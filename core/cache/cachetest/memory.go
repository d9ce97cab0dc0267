// Package cachetest provides an in-memory cache.Cache for unit tests.
package cachetest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/constants"
)

type entry struct {
	raw       []byte
	expiresAt time.Time
}

type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

var _ cache.Cache = (*Memory)(nil)

func New() *Memory {
	return &Memory{items: map[string]entry{}, now: time.Now}
}

func (m *Memory) get(key string) ([]byte, bool) {
	e, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.items, key)
		return nil, false
	}
	return e.raw, true
}

func (m *Memory) set(key string, raw []byte, ttl time.Duration) {
	e := entry{raw: raw}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = e
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.get(key)
	return ok
}

func (m *Memory) GetJSON(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.get(key)
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, raw, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) AcquireLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.get(key); ok {
		return false, nil
	}
	m.set(key, []byte("1"), ttl)
	return true, nil
}

func (m *Memory) ReleaseLock(ctx context.Context, key string) error {
	return m.Delete(ctx, key)
}

func (m *Memory) AddToTokenBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(constants.RedisKeyTokenBlacklist+token, []byte("1"), ttl)
	return nil
}

func (m *Memory) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.get(constants.RedisKeyTokenBlacklist + token)
	return ok, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
