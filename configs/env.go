package configs

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	// EnvBackend overrides Config.Backend.
	EnvBackend = "DW_BACKEND"
	// EnvEtcdEndpoints overrides Config.EtcdEndpoints, comma separated.
	EnvEtcdEndpoints = "DW_ETCD_ENDPOINTS"
)

var _ ConfigSource = (*envConfigSource)(nil)

type envConfigSource struct{}

func (e *envConfigSource) Name() string {
	return "env"
}

func (e *envConfigSource) Get(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", ErrConfigNotFound
	}
	return value, nil
}

func (e *envConfigSource) Set(key, value string) error {
	return os.Setenv(key, value)
}

// applySource overrides backend settings with the values present in source.
func (c *Config) applySource(source ConfigSource) error {
	backend, err := source.Get(EnvBackend)
	switch {
	case err == nil:
		c.Backend = strings.ToLower(strings.TrimSpace(backend))
	case !errors.Is(err, ErrConfigNotFound):
		return errors.Wrapf(err, "failed to read %s from %s", EnvBackend, source.Name())
	}

	endpoints, err := source.Get(EnvEtcdEndpoints)
	switch {
	case err == nil:
		c.EtcdEndpoints = splitEndpoints(endpoints)
	case !errors.Is(err, ErrConfigNotFound):
		return errors.Wrapf(err, "failed to read %s from %s", EnvEtcdEndpoints, source.Name())
	}
	return nil
}

func splitEndpoints(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	})
	return lo.Filter(parts, func(part string, _ int) bool {
		return part != ""
	})
}
