package kv

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// implementation assertion
var _ MetaKV = (*memoryKV)(nil)

// memoryKV is a process local MetaKV, contents are lost on exit.
type memoryKV struct {
	mut      sync.RWMutex
	data     map[string]string
	rootPath string
}

// NewMemoryKV returns an empty in-memory kv scoped under rootPath.
func NewMemoryKV(rootPath string) *memoryKV {
	return &memoryKV{
		data:     make(map[string]string),
		rootPath: strings.TrimSuffix(rootPath, "/"),
	}
}

func (kv *memoryKV) key(key string) string {
	return prefixKey(kv.rootPath, key)
}

func (kv *memoryKV) relative(key string) string {
	if kv.rootPath == "" {
		return key
	}
	return strings.TrimPrefix(key, kv.rootPath+"/")
}

func (kv *memoryKV) Load(_ context.Context, key string) (string, error) {
	kv.mut.RLock()
	defer kv.mut.RUnlock()

	fullKey := kv.key(key)
	value, ok := kv.data[fullKey]
	if !ok {
		return "", errors.Wrapf(ErrKeyNotFound, "key %s", fullKey)
	}
	return value, nil
}

func (kv *memoryKV) LoadWithPrefix(_ context.Context, prefix string, opts ...LoadOption) ([]string, []string, error) {
	opt := defaultLoadOption()
	for _, o := range opts {
		o(opt)
	}

	kv.mut.RLock()
	defer kv.mut.RUnlock()

	fullPrefix := kv.key(prefix)
	matched := lo.Filter(lo.Keys(kv.data), func(key string, _ int) bool {
		return strings.HasPrefix(key, fullPrefix)
	})
	sort.Strings(matched)

	keys := make([]string, 0, len(matched))
	values := make([]string, 0, len(matched))
	for _, key := range matched {
		keys = append(keys, kv.relative(key))
		if opt.withKeysOnly {
			values = append(values, "")
			continue
		}
		values = append(values, kv.data[key])
	}
	return keys, values, nil
}

func (kv *memoryKV) Save(_ context.Context, key, value string) error {
	kv.mut.Lock()
	defer kv.mut.Unlock()

	kv.data[kv.key(key)] = value
	return nil
}

func (kv *memoryKV) MultiSave(_ context.Context, kvs map[string]string) error {
	kv.mut.Lock()
	defer kv.mut.Unlock()

	for key, value := range kvs {
		kv.data[kv.key(key)] = value
	}
	return nil
}

func (kv *memoryKV) Remove(_ context.Context, key string) error {
	kv.mut.Lock()
	defer kv.mut.Unlock()

	delete(kv.data, kv.key(key))
	return nil
}

func (kv *memoryKV) RemoveWithPrefix(_ context.Context, prefix string) error {
	kv.mut.Lock()
	defer kv.mut.Unlock()

	fullPrefix := kv.key(prefix)
	for key := range kv.data {
		if strings.HasPrefix(key, fullPrefix) {
			delete(kv.data, key)
		}
	}
	return nil
}

func (kv *memoryKV) Close() {}
