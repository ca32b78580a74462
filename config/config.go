// Package config registers every setting with its default and wires viper to the
// config file and the RESOLVER_ environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a key such as providers.force_remote to its variable suffix.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, binds the environment and reads resolver.toml if it exists.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.Resolver)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Resolver)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}
