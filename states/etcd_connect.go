package states

import (
	"context"

	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/states/kv"
)

// OpenBackend builds the MetaKV selected by config. Mutations are audit logged with logger.
func OpenBackend(ctx context.Context, config *configs.Config, logger *zap.Logger) (kv.MetaKV, error) {
	var metaKV kv.MetaKV
	switch config.Backend {
	case configs.BackendEtcd:
		cli, err := kv.ConnectEtcd(ctx, config.EtcdEndpoints, config.GetDialTimeout())
		if err != nil {
			return nil, err
		}
		logger.Info("etcd connected", zap.Strings("endpoints", config.EtcdEndpoints), zap.String("rootPath", config.RootPath))
		metaKV = kv.NewEtcdKV(cli, config.RootPath)
	default:
		logger.Info("using memory backend", zap.String("rootPath", config.RootPath))
		metaKV = kv.NewMemoryKV(config.RootPath)
	}
	return kv.NewAuditKV(metaKV, logger), nil
}
