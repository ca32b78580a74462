package inline

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/source"
)

// Item is a selected entry with whatever was resolved for it.
type Item struct {
	Entry    source.Entry     `json:"entry"`
	Movie    *source.Movie    `json:"movie,omitempty" jsonschema:"description=Set for movies."`
	Show     *source.Show     `json:"show,omitempty" jsonschema:"description=Set for shows, with the seasons left by the episode filter."`
	Streams  []source.Stream  `json:"streams,omitempty" jsonschema:"description=Streams of the movie, best first."`
	Episodes []EpisodeStreams `json:"episodes,omitempty" jsonschema:"description=Streams of each selected episode."`
}

type EpisodeStreams struct {
	Season  int             `json:"season"`
	Episode int             `json:"episode"`
	Streams []source.Stream `json:"streams"`
}

type Output struct {
	Keyword string  `json:"keyword"`
	Result  []*Item `json:"result"`
}

func asJson(items []*Item, keyword string) ([]byte, error) {
	if items == nil {
		items = []*Item{}
	}
	return json.Marshal(&Output{Keyword: keyword, Result: items})
}

// Schema is the JSON Schema of Output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t == reflect.TypeOf(identity.Provider{}) {
			return providerSchema()
		}
		return nil
	}
	return reflector.Reflect(&Output{})
}

func providerSchema() *jsonschema.Schema {
	variant := func(kind identity.Kind, description string) *jsonschema.Schema {
		payload := jsonschema.NewProperties()
		payload.Set("id", &jsonschema.Schema{Type: "string", MinLength: ptr(uint64(1))})

		properties := jsonschema.NewProperties()
		properties.Set(string(kind), &jsonschema.Schema{
			Type:       "object",
			Properties: payload,
			Required:   []string{"id"},
		})

		return &jsonschema.Schema{
			Type:                 "object",
			Description:          description,
			Properties:           properties,
			Required:             []string{string(kind)},
			AdditionalProperties: jsonschema.FalseSchema,
		}
	}

	return &jsonschema.Schema{
		Description: "Provider that produced the entry.",
		OneOf: []*jsonschema.Schema{
			variant(identity.KindLocal, "Built-in or scripted adapter, by name."),
			variant(identity.KindRemote, "Adapter served by a remote host, by registry id."),
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
