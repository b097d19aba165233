// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the bootstrap configuration once at startup from
// flags, environment, an optional YAML config file, and secrets.
//
// Precedence, highest first: flag, environment, config file, secret, default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/dbinit/pkg/types"
)

// Configuration keys.
const (
	KeyDatabase         = "database"
	KeyURI              = "uri"
	KeyConnectTimeout   = "connect_timeout"
	KeyOperationTimeout = "operation_timeout"
	KeyConnectRetries   = "connect_retries"
	KeyOnExisting       = "on_existing"
)

// Environment variables read in addition to the DBINIT_ prefixed keys.
const (
	EnvDatabase = "MONGO_INITDB_DATABASE"
	EnvURI      = "MONGODB_URI"
)

// SecretURI is the secrets file holding the connection string.
const SecretURI = "mongodb-uri"

const envPrefix = "DBINIT"

var (
	// ErrInvalidPolicy is returned for an on_existing value other than tolerate or fail.
	ErrInvalidPolicy = errors.New("invalid on_existing policy")

	// ErrInvalidTimeout is returned for a negative timeout. Zero disables the bound.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"database":    KeyDatabase,
	"uri":         KeyURI,
	"on-existing": KeyOnExisting,
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	Register(v)
	return v
}

// Register installs defaults and environment bindings on v. The URI has no
// viper default so that a secret can fill it in.
func Register(v *viper.Viper) {
	v.SetDefault(KeyDatabase, types.DefaultDatabaseName)
	v.SetDefault(KeyConnectTimeout, 10*time.Second)
	v.SetDefault(KeyOperationTimeout, 30*time.Second)
	v.SetDefault(KeyConnectRetries, 5)
	v.SetDefault(KeyOnExisting, string(types.PolicyTolerate))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv(KeyDatabase, EnvDatabase, envPrefix+"_DATABASE")
	_ = v.BindEnv(KeyURI, EnvURI, envPrefix+"_URI")
}

// BindFlags binds the known flags present in fs to their keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// ReadFile loads a YAML config file. An explicit path must exist; otherwise
// ./dbinit.yaml and ~/.config/dbinit/config.yaml are searched and a missing
// file is not an error. Returns the file used, or "".
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dbinit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dbinit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load resolves the configuration. secrets may be nil.
func Load(v *viper.Viper, secrets map[string]string) (types.Config, error) {
	uri := v.GetString(KeyURI)
	if uri == "" {
		uri = secrets[SecretURI]
	}
	if uri == "" {
		uri = types.DefaultURI
	}

	cfg := types.Config{
		ConnectionConfig: types.ConnectionConfig{
			URI:            uri,
			ConnectTimeout: v.GetDuration(KeyConnectTimeout),
			ConnectRetries: v.GetInt(KeyConnectRetries),
		},
		DatabaseName:     types.ResolveDatabaseName(v.GetString(KeyDatabase)),
		OperationTimeout: v.GetDuration(KeyOperationTimeout),
		OnExisting:       types.ExistingPolicy(strings.ToLower(strings.TrimSpace(v.GetString(KeyOnExisting)))),
	}

	switch cfg.OnExisting {
	case types.PolicyTolerate, types.PolicyFail:
	default:
		return types.Config{}, fmt.Errorf("%w: %q (use tolerate or fail)", ErrInvalidPolicy, cfg.OnExisting)
	}
	for key, d := range map[string]time.Duration{
		KeyConnectTimeout:   cfg.ConnectTimeout,
		KeyOperationTimeout: cfg.OperationTimeout,
	} {
		if d < 0 {
			return types.Config{}, fmt.Errorf("%w: %s is %s", ErrInvalidTimeout, key, d)
		}
	}

	return cfg, nil
}
