package moviebox

import (
	"encoding/json"
	"net/url"
)

type datum struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Poster    string `json:"poster"`
	BoxType   int    `json:"box_type"`
	MaxSeason *int   `json:"max_season"`
}

// UnmarshalJSON drops posters that are not absolute URLs.
func (d *datum) UnmarshalJSON(data []byte) error {
	type plain datum
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if u, err := url.Parse(raw.Poster); err != nil || !u.IsAbs() {
		raw.Poster = ""
	}
	*d = datum(raw)
	return nil
}

// lenientList skips the items that fail to decode instead of failing the whole list.
type lenientList []datum

func (l *lenientList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	list := make(lenientList, 0, len(items))
	for _, item := range items {
		var d datum
		if err := json.Unmarshal(item, &d); err == nil {
			list = append(list, d)
		}
	}
	*l = list
	return nil
}

type listingResponse struct {
	Data []datum `json:"data"`
}

type homeResponse struct {
	Msg  string        `json:"msg"`
	Data []homeSection `json:"data"`
}

type homeSection struct {
	Name    string      `json:"name"`
	BoxType int         `json:"box_type"`
	List    lenientList `json:"list"`
}

type detailResponse struct {
	Data datum `json:"data"`
}

type seasonResponse struct {
	Data []episodeRow `json:"data"`
}

type episodeRow struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}
