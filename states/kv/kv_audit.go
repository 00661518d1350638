package kv

import (
	"context"

	"go.uber.org/zap"
)

// implementation assertion
var _ MetaKV = (*AuditKV)(nil)

// AuditKV records every mutation passed to the wrapped kv in the debug log.
type AuditKV struct {
	cli    MetaKV
	logger *zap.Logger
}

// NewAuditKV creates a mutation auditing kv.
func NewAuditKV(kv MetaKV, logger *zap.Logger) *AuditKV {
	return &AuditKV{
		cli:    kv,
		logger: logger.Named("kv-audit"),
	}
}

func (c *AuditKV) Load(ctx context.Context, key string) (string, error) {
	return c.cli.Load(ctx, key)
}

func (c *AuditKV) LoadWithPrefix(ctx context.Context, prefix string, opts ...LoadOption) ([]string, []string, error) {
	return c.cli.LoadWithPrefix(ctx, prefix, opts...)
}

func (c *AuditKV) Save(ctx context.Context, key, value string) error {
	err := c.cli.Save(ctx, key, value)
	c.logger.Info("put", zap.String("key", key), zap.Int("valueSize", len(value)), zap.Error(err))
	return err
}

func (c *AuditKV) MultiSave(ctx context.Context, kvs map[string]string) error {
	err := c.cli.MultiSave(ctx, kvs)
	keys := make([]string, 0, len(kvs))
	for key := range kvs {
		keys = append(keys, key)
	}
	c.logger.Info("multi put", zap.Strings("keys", keys), zap.Error(err))
	return err
}

func (c *AuditKV) Remove(ctx context.Context, key string) error {
	err := c.cli.Remove(ctx, key)
	c.logger.Info("delete", zap.String("key", key), zap.Error(err))
	return err
}

func (c *AuditKV) RemoveWithPrefix(ctx context.Context, prefix string) error {
	err := c.cli.RemoveWithPrefix(ctx, prefix)
	c.logger.Info("delete with prefix", zap.String("prefix", prefix), zap.Error(err))
	return err
}

func (c *AuditKV) Close() {
	c.cli.Close()
}
