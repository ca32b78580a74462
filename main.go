// Package main is the entry point of resolver.
package main

import (
	"time"

	"github.com/resolver-cli/resolver/cmd"
	"github.com/resolver-cli/resolver/config"
	"github.com/resolver-cli/resolver/internal/cache"
	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	if ttl := time.Duration(viper.GetInt(key.CacheTTL)) * time.Minute; ttl > 0 {
		go cache.CollectGarbage(ttl)
	}

	cmd.Execute()
}
