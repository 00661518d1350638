package configs

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the config folder used when none is provided.
	DefaultConfigPath = `.dw_config`

	configFileName     = `dirwatcher.yaml`
	defaultWorkspace   = `dw_workspace`
	defaultRootPath    = `dirwatcher`
	defaultDialTimeout = 5

	// BackendMemory keeps the directory in process memory.
	BackendMemory = "memory"
	// BackendEtcd persists the directory into etcd.
	BackendEtcd = "etcd"
)

var (
	errConfigPathNotExist = errors.New("config path not exist")
	errConfigPathIsFile   = errors.New("config path is file")
	// ErrUnknownBackend is returned when Backend is neither memory nor etcd.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrInvalidRootPath is returned when RootPath does not name a key scope.
	ErrInvalidRootPath = errors.New("invalid root path")
)

// Config stores dirwatcher config items.
type Config struct {
	// dirwatcher configuration folder path
	// default $PWD/.dw_config
	ConfigPath string `yaml:"-"`
	// workspace path for history and debug log, default $PWD/dw_workspace
	WorkspacePath string `yaml:"WorkspacePath"`
	// memory or etcd
	Backend       string   `yaml:"Backend"`
	EtcdEndpoints []string `yaml:"EtcdEndpoints"`
	// every directory key lives under RootPath
	RootPath string `yaml:"RootPath"`
	// etcd dial timeout in seconds
	DialTimeout  int    `yaml:"DialTimeout"`
	OutputFormat string `yaml:"OutputFormat"`
	// debug log file name, relative to WorkspacePath
	LogFile  string `yaml:"LogFile"`
	LogLevel string `yaml:"LogLevel"`
}

func (c *Config) load() error {
	err := c.checkConfigPath()
	if err != nil {
		return err
	}

	bs, err := os.ReadFile(c.getConfigPath())
	if os.IsNotExist(err) {
		return errConfigPathNotExist
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	return errors.Wrap(yaml.Unmarshal(bs, c), "failed to parse config file")
}

func (c *Config) getConfigPath() string {
	return path.Join(c.ConfigPath, configFileName)
}

// checkConfigPath exists and is a directory.
func (c *Config) checkConfigPath() error {
	info, err := os.Stat(c.ConfigPath)
	if err != nil {
		// not exist, return specified type to handle
		if os.IsNotExist(err) {
			return errConfigPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return errors.Wrapf(errConfigPathIsFile, "%s is not a directory", c.ConfigPath)
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.WorkspacePath == "" {
		c.WorkspacePath = defaultWorkspace
	}
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.RootPath == "" {
		c.RootPath = defaultRootPath
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.LogFile == "" {
		c.LogFile = "dw_debug.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) createDefault() error {
	err := os.MkdirAll(c.ConfigPath, os.ModePerm)
	if err != nil {
		return errors.Wrap(err, "failed to create config path")
	}

	c.setDefaults()

	bs, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	return errors.Wrap(os.WriteFile(c.getConfigPath(), bs, 0o644), "failed to write default config")
}

func (c *Config) validate() error {
	if strings.Trim(c.RootPath, "/") == "" {
		return errors.Wrapf(ErrInvalidRootPath, "root path %q", c.RootPath)
	}
	switch c.Backend {
	case BackendMemory:
	case BackendEtcd:
		if len(c.EtcdEndpoints) == 0 {
			return errors.New("etcd backend requires at least one endpoint")
		}
	default:
		return errors.Wrapf(ErrUnknownBackend, "backend %q", c.Backend)
	}
	return nil
}

// GetDialTimeout returns the etcd dial timeout.
func (c *Config) GetDialTimeout() time.Duration {
	return time.Duration(c.DialTimeout) * time.Second
}

// LogPath returns the debug log location.
func (c *Config) LogPath() string {
	return path.Join(c.WorkspacePath, c.LogFile)
}

func (c *Config) String() string {
	return fmt.Sprintf("backend: %s, endpoints: %v, root path: %s, workspace: %s", c.Backend, c.EtcdEndpoints, c.RootPath, c.WorkspacePath)
}

// NewConfig loads the config under configPath, creating it with defaults on first run.
// Environment overrides are applied on top of the file.
func NewConfig(configPath string) (*Config, error) {
	expanded, err := homedir.Expand(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand config path %s", configPath)
	}
	config := &Config{
		ConfigPath: expanded,
	}
	err = config.load()
	// config path not exist, may first time to run
	if errors.Is(err, errConfigPathNotExist) {
		err = config.createDefault()
	}
	if err != nil {
		return config, err
	}

	config.setDefaults()
	if err := config.applySource(&envConfigSource{}); err != nil {
		return config, err
	}
	config.WorkspacePath, err = homedir.Expand(config.WorkspacePath)
	if err != nil {
		return config, errors.Wrap(err, "failed to expand workspace path")
	}

	return config, config.validate()
}
