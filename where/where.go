// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "RESOLVER_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the RESOLVER_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Resolver))
}

// Cache resolves the absolute path to the application's cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Resolver))
}

// Logs resolves the absolute path to the directory used for application logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Providers resolves the directory containing scripted (Lua) providers.
func Providers() string {
	return ensureDir(filepath.Join(Config(), "providers"))
}

// Registry resolves the provider registry file.
// An explicit providers.registry setting wins over the default location.
func Registry() string {
	if path := viper.GetString(key.ProvidersRegistry); path != "" {
		return path
	}
	return filepath.Join(Config(), "providers.toml")
}

// Queries resolves the search keyword suggestion store.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
