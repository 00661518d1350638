package kv

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKVLoad(te *testing.T) {
	te.Run("kv SaveAndLoad", func(t *testing.T) {
		for _, kv := range kvClients {
			ctx := context.TODO()
			err := kv.RemoveWithPrefix(ctx, "")
			require.NoError(t, err)

			defer kv.RemoveWithPrefix(ctx, "")

			saveAndLoadTests := []struct {
				key   string
				value string
			}{
				{"test1", "value1"},
				{"test2", "value2"},
				{"test1/a", "value_a"},
				{"test1/b", "value_b"},
			}

			for _, test := range saveAndLoadTests {
				err = kv.Save(ctx, test.key, test.value)
				assert.NoError(t, err)

				val, err := kv.Load(ctx, test.key)
				assert.NoError(t, err)
				assert.Equal(t, test.value, val)
			}

			invalidLoadTests := []struct {
				invalidKey string
			}{
				{"t"},
				{"a"},
				{"test1a"},
			}

			for _, test := range invalidLoadTests {
				val, err := kv.Load(ctx, test.invalidKey)
				assert.True(t, errors.Is(err, ErrKeyNotFound))
				assert.Zero(t, val)
			}

			loadPrefixTests := []struct {
				prefix string

				expectedKeys   []string
				expectedValues []string
			}{
				{"test", []string{"test1", "test1/a", "test1/b", "test2"}, []string{"value1", "value_a", "value_b", "value2"}},
				{"test1", []string{"test1", "test1/a", "test1/b"}, []string{"value1", "value_a", "value_b"}},
				{"test1/", []string{"test1/a", "test1/b"}, []string{"value_a", "value_b"}},
				{"test2", []string{"test2"}, []string{"value2"}},
				{"", []string{"test1", "test1/a", "test1/b", "test2"}, []string{"value1", "value_a", "value_b", "value2"}},
				{"test1/a", []string{"test1/a"}, []string{"value_a"}},
				{"a", []string{}, []string{}},
				{"root", []string{}, []string{}},
			}

			for _, test := range loadPrefixTests {
				actualKeys, actualValues, err := kv.LoadWithPrefix(ctx, test.prefix)
				assert.NoError(t, err)
				// sorted by key
				assert.Equal(t, test.expectedKeys, actualKeys)
				assert.Equal(t, test.expectedValues, actualValues)
			}

			keys, values, err := kv.LoadWithPrefix(ctx, "test1/", WithKeysOnly())
			assert.NoError(t, err)
			assert.Equal(t, []string{"test1/a", "test1/b"}, keys)
			assert.Equal(t, []string{"", ""}, values)

			removeTests := []struct {
				validKey   string
				invalidKey string
			}{
				{"test1", "abc"},
				{"test1/a", "test1/lskfjal"},
				{"test1/b", "test1/b"},
				{"test2", "-"},
			}

			for _, test := range removeTests {
				err = kv.Remove(ctx, test.validKey)
				assert.NoError(t, err)

				_, err = kv.Load(ctx, test.validKey)
				assert.Error(t, err)

				err = kv.Remove(ctx, test.validKey)
				assert.NoError(t, err)
				err = kv.Remove(ctx, test.invalidKey)
				assert.NoError(t, err)
			}

			removeWithPrefixTests := []struct {
				key   string
				value string
			}{
				{"testr1", "value1"},
				{"testr2", "value2"},
				{"testr1/a", "value_a"},
				{"testr1/b", "value_b"},
				{"testr2/c", "value3"},
			}
			for _, test := range removeWithPrefixTests {
				err = kv.Save(ctx, test.key, test.value)
				assert.NoError(t, err)
			}

			err = kv.RemoveWithPrefix(ctx, "testr1")
			assert.NoError(t, err)
			keys, vals, err := kv.LoadWithPrefix(ctx, "testr")
			assert.NoError(t, err)
			assert.ElementsMatch(t, []string{"testr2", "testr2/c"}, keys)
			assert.ElementsMatch(t, []string{"value2", "value3"}, vals)
			// allow remove with non-exist prefix
			err = kv.RemoveWithPrefix(ctx, "testnoexist")
			assert.NoError(t, err)
		}
	})
}

func TestMultiSave(t *testing.T) {
	for _, kv := range kvClients {
		ctx := context.TODO()
		defer kv.RemoveWithPrefix(ctx, "")

		err := kv.MultiSave(ctx, map[string]string{
			"multi/a": "1",
			"multi/b": "2",
			"multi/c": "3",
		})
		require.NoError(t, err)

		keys, values, err := kv.LoadWithPrefix(ctx, "multi/")
		require.NoError(t, err)
		assert.Equal(t, []string{"multi/a", "multi/b", "multi/c"}, keys)
		assert.Equal(t, []string{"1", "2", "3"}, values)
	}
}

func TestRemoveWithEmptyPrefixKeepsSiblingRoot(t *testing.T) {
	ctx := context.TODO()
	shared := NewMemoryKV("")
	root := &memoryKV{data: shared.data, rootPath: "dir"}
	sibling := &memoryKV{data: shared.data, rootPath: "dir2"}

	require.NoError(t, root.Save(ctx, "k", "v"))
	require.NoError(t, sibling.Save(ctx, "k", "v2"))

	require.NoError(t, root.RemoveWithPrefix(ctx, ""))

	_, err := root.Load(ctx, "k")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	val, err := sibling.Load(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestEtcdRemoveWithoutScope(t *testing.T) {
	if etcdClient == nil {
		t.Skip("embedded etcd not available")
	}
	ctx := context.TODO()
	other := NewEtcdKV(etcdClient, "unrelated-service")
	require.NoError(t, other.Save(ctx, "precious", "v"))
	defer other.Remove(ctx, "precious")

	unscoped := NewEtcdKV(etcdClient, "/")
	err := unscoped.RemoveWithPrefix(ctx, "")
	assert.True(t, errors.Is(err, ErrUnscopedRemove))

	val, err := other.Load(ctx, "precious")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestAuditKV(t *testing.T) {
	ctx := context.TODO()
	kv := NewAuditKV(NewMemoryKV("audit"), zap.NewNop())
	defer kv.Close()

	require.NoError(t, kv.Save(ctx, "a", "1"))
	require.NoError(t, kv.MultiSave(ctx, map[string]string{"b": "2", "c": "3"}))

	keys, values, err := kv.LoadWithPrefix(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []string{"1", "2", "3"}, values)

	require.NoError(t, kv.Remove(ctx, "a"))
	require.NoError(t, kv.RemoveWithPrefix(ctx, ""))
	keys, _, err = kv.LoadWithPrefix(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPrefixKey(t *testing.T) {
	assert.Equal(t, "k", prefixKey("", "k"))
	assert.Equal(t, "root/", prefixKey("root", ""))
	assert.Equal(t, "root/a/b", prefixKey("root", "a/b"))
	assert.Equal(t, "root/a/", prefixKey("root", "a/"))
}
