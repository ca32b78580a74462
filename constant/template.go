// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Scripted provider entry points - every Lua provider must define these globals.
const (
	LatestMoviesFn   = "LatestMovies"
	LatestShowsFn    = "LatestShows"
	SearchFn         = "Search"
	HomeFn           = "Home"
	MovieDetailsFn   = "MovieDetails"
	ShowInfoFn       = "ShowInfo"
	SeasonEpisodesFn = "SeasonEpisodes"
)

// ScriptExtension is the file extension of scripted providers.
const ScriptExtension = ".lua"

// ProviderTemplate is a Go text/template for scaffolding new Lua provider scripts.
const ProviderTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias entry { title: string, url: string, poster: string|nil, kind: "movie"|"show" }
---@alias section { title: string, entries: entry[] }
---@alias movie { title: string, url: string, poster: string|nil, sources: string[] }
---@alias show { title: string, url: string, poster: string|nil, seasons: number|nil }
---@alias episode { number: number, sources: string[] }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
local base = "{{ .URL }}"
--- END VARIABLES ---



----- MAIN -----

--- Lists the latest movies.
-- @param page number Page to fetch, starting at 1
-- @return entry[]
function {{ .LatestMoviesFn }}(page)
	return {}
end


--- Lists the latest shows.
-- @param page number Page to fetch, starting at 1
-- @return entry[]
function {{ .LatestShowsFn }}(page)
	return {}
end


--- Searches the catalog.
-- @param keyword string
-- @param page number
-- @return entry[]
function {{ .SearchFn }}(keyword, page)
	return {}
end


--- Lists the home page sections.
-- @return section[]
function {{ .HomeFn }}()
	return {}
end


--- Resolves a movie page.
-- @param url string
-- @return movie
function {{ .MovieDetailsFn }}(url)
	return { title = "", url = url, sources = {} }
end


--- Describes a show. Leave seasons nil when the page does not expose a season count.
-- @param url string
-- @return show
function {{ .ShowInfoFn }}(url)
	return { title = "", url = url, seasons = nil }
end


--- Lists the episodes of one season.
-- @param url string
-- @param season number
-- @return episode[]
function {{ .SeasonEpisodesFn }}(url, season)
	return {}
end

----- END MAIN -----
`
