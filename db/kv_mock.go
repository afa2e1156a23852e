package db

import (
	"context"
	"sync"
)

// KVMock is an in-memory KV for tests. Setting GetErr or SetErr makes
// the corresponding operation fail until cleared.
type KVMock struct {
	lock sync.Mutex

	Values map[string][]byte

	GetErr error
	SetErr error
}

func (kv *KVMock) Get(ctx context.Context, key string) ([]byte, error) {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	if kv.GetErr != nil {
		return nil, kv.GetErr
	}

	value, ok := kv.Values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (kv *KVMock) Set(ctx context.Context, key string, value []byte) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	if kv.SetErr != nil {
		return kv.SetErr
	}

	if kv.Values == nil {
		kv.Values = map[string][]byte{}
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	kv.Values[key] = copied
	return nil
}
