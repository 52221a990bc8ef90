// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var errBackendDown = errors.New("backend down")

// faultyBackend wraps a MemoryBackend and fails every call while down is set.
type faultyBackend struct {
	*MemoryBackend
	down  atomic.Bool
	calls atomic.Int64
}

func newFaultyBackend() *faultyBackend {
	return &faultyBackend{MemoryBackend: NewMemoryBackend(time.Minute)}
}

func (f *faultyBackend) Name() string { return "faulty" }

func (f *faultyBackend) fail() error {
	f.calls.Add(1)
	if f.down.Load() {
		return errBackendDown
	}
	return nil
}

func (f *faultyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := f.fail(); err != nil {
		return nil, false, err
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *faultyBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.MemoryBackend.Set(ctx, key, value, ttl)
}

func (f *faultyBackend) Delete(ctx context.Context, key string) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.MemoryBackend.Delete(ctx, key)
}

func (f *faultyBackend) DeletePattern(ctx context.Context, glob string) (int, error) {
	if err := f.fail(); err != nil {
		return 0, err
	}
	return f.MemoryBackend.DeletePattern(ctx, glob)
}

func (f *faultyBackend) Clear(ctx context.Context) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.MemoryBackend.Clear(ctx)
}

func (f *faultyBackend) Keys(ctx context.Context, glob string) (int, error) {
	if err := f.fail(); err != nil {
		return 0, err
	}
	return f.MemoryBackend.Keys(ctx, glob)
}

// slowBackend blocks every Get until the context is done.
type slowBackend struct {
	*MemoryBackend
}

func (s slowBackend) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}
