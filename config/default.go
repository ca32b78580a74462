package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one setting: its key, default value and a human description.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Resolver + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the kind of value the field holds.
func (f *Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.Type(),
		"env":         f.Env(),
	})
}

// Default holds every known setting by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys that can be set from the environment.
var EnvExposed []string

func register(k string, value any, description string) {
	if _, ok := Default[k]; ok {
		panic("config key registered twice: " + k)
	}
	Default[k] = Field{Key: k, Value: value, Description: description}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	// providers
	register(key.ProvidersRegistry, "", "Registry file listing local and remote providers (toml, json or yaml).\nEmpty means providers.toml in the config directory")
	register(key.ProvidersForceRemote, false, "Dispatch every provider through the remote entry with the same id.\nFor machines that should not run adapters themselves")
	register(key.ProvidersDefault, "moviebox", "Provider used when --provider is not given")
	register(key.MovieboxURL, "https://google.com/", "Base URL of the moviebox API")

	// fetching
	register(key.FetchSeasonConcurrency, 4, "How many seasons of one show are fetched at once")
	register(key.NetworkTimeout, 60, "HTTP timeout in seconds")
	register(key.CacheTTL, 10, "Minutes a provider listing is reused before it is fetched again.\nSet to 0 to disable the listing cache")

	// host
	register(key.ServeAddress, ":8080", "Address the remote execution host listens on")

	// cli
	register(key.SearchShowQuerySuggestions, true, "Complete search keywords from previous searches")
	register(key.IconsVariant, "plain", "Icon set, one of: emoji, plain")
	register(key.CliColored, true, "Color the CLI output")

	// logs
	register(key.LogsWrite, false, "Write logs to the logs directory")
	register(key.LogsLevel, "info", "Lowest level that is logged, one of:\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Write logs as json lines")
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		return style.Fg(color.Yellow)(fmt.Sprintf("%q", value))
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"purple":  style.Fg(color.Purple),
	"label":   style.Fg(color.Blue),
	"current": viper.Get,
	"hl":      highlight,
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ purple .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Type:" }}    {{ .Type }}
{{ label "Value:" }}   {{ hl (current .Key) }}
{{ label "Default:" }} {{ hl .Value }}`))
