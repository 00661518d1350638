package kv

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const (
	// RequestTimeout is the default timeout for a single kv request.
	RequestTimeout = time.Second * 3
)

// ErrKeyNotFound is returned by Load when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// ErrUnscopedRemove is returned when a prefix removal would cover the whole keyspace.
var ErrUnscopedRemove = errors.New("refuse to remove without a key scope")

// MetaKV contains base operations of kv. Include save, load and remove etc.
// Keys are relative to the root path the kv was created with.
type MetaKV interface {
	Load(ctx context.Context, key string) (string, error)
	LoadWithPrefix(ctx context.Context, prefix string, opts ...LoadOption) ([]string, []string, error)
	Save(ctx context.Context, key, value string) error
	// MultiSave writes all pairs atomically.
	MultiSave(ctx context.Context, kvs map[string]string) error
	Remove(ctx context.Context, key string) error
	RemoveWithPrefix(ctx context.Context, prefix string) error
	Close()
}

// implementation assertion
var _ MetaKV = (*etcdKV)(nil)

// etcdKV implements MetaKV on an etcd v3 client.
type etcdKV struct {
	client   *clientv3.Client
	rootPath string
}

// NewEtcdKV creates a new etcd kv scoped under rootPath.
func NewEtcdKV(client *clientv3.Client, rootPath string) *etcdKV {
	kv := &etcdKV{
		client:   client,
		rootPath: strings.TrimSuffix(rootPath, "/"),
	}
	return kv
}

// ConnectEtcd dials the endpoints and checks the connection with a status call.
func ConnectEtcd(ctx context.Context, endpoints []string, dialTimeout time.Duration) (*clientv3.Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("no etcd endpoint provided")
	}
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create etcd client")
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if _, err := cli.Status(ctx, endpoints[0]); err != nil {
		cli.Close()
		return nil, errors.Wrapf(err, "failed to connect etcd %v", endpoints)
	}
	return cli, nil
}

func (kv *etcdKV) key(key string) string {
	return prefixKey(kv.rootPath, key)
}

func (kv *etcdKV) relative(key string) string {
	if kv.rootPath == "" {
		return key
	}
	return strings.TrimPrefix(key, kv.rootPath+"/")
}

// Load returns value of the key.
func (kv *etcdKV) Load(ctx context.Context, key string) (string, error) {
	fullKey := kv.key(key)
	resp, err := kv.client.Get(ctx, fullKey)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load %s", fullKey)
	}
	if resp.Count <= 0 {
		return "", errors.Wrapf(ErrKeyNotFound, "key %s", fullKey)
	}
	return string(resp.Kvs[0].Value), nil
}

// LoadWithPrefix returns all the keys and values with the given key prefix, sorted by key.
func (kv *etcdKV) LoadWithPrefix(ctx context.Context, prefix string, opts ...LoadOption) ([]string, []string, error) {
	opt := defaultLoadOption()
	for _, o := range opts {
		o(opt)
	}

	etcdOpts := append([]clientv3.OpOption{
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend),
	}, opt.EtcdOptions()...)

	resp, err := kv.client.Get(ctx, kv.key(prefix), etcdOpts...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load prefix %s", prefix)
	}
	keys := make([]string, 0, resp.Count)
	values := make([]string, 0, resp.Count)
	for _, item := range resp.Kvs {
		keys = append(keys, kv.relative(string(item.Key)))
		values = append(values, string(item.Value))
	}
	return keys, values, nil
}

// Save saves the key-value pair.
func (kv *etcdKV) Save(ctx context.Context, key, value string) error {
	_, err := kv.client.Put(ctx, kv.key(key), value)
	return errors.Wrapf(err, "failed to save %s", key)
}

// MultiSave saves all pairs in one etcd transaction.
func (kv *etcdKV) MultiSave(ctx context.Context, kvs map[string]string) error {
	ops := make([]clientv3.Op, 0, len(kvs))
	for key, value := range kvs {
		ops = append(ops, clientv3.OpPut(kv.key(key), value))
	}
	resp, err := kv.client.Txn(ctx).If().Then(ops...).Commit()
	if err != nil {
		return errors.Wrap(err, "failed to commit multi save")
	}
	if !resp.Succeeded {
		return errors.New("multi save transaction not succeeded")
	}
	return nil
}

// Remove removes the key.
func (kv *etcdKV) Remove(ctx context.Context, key string) error {
	_, err := kv.client.Delete(ctx, kv.key(key))
	return errors.Wrapf(err, "failed to remove %s", key)
}

// RemoveWithPrefix removes the keys with given prefix.
func (kv *etcdKV) RemoveWithPrefix(ctx context.Context, prefix string) error {
	key := kv.key(prefix)
	if key == "" {
		return ErrUnscopedRemove
	}
	_, err := kv.client.Delete(ctx, key, clientv3.WithPrefix())
	return errors.Wrapf(err, "failed to remove prefix %s", prefix)
}

// Close closes the connection to etcd.
func (kv *etcdKV) Close() {
	kv.client.Close()
}
