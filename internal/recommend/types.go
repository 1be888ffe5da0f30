// Package recommend provides a client for the random-title recommendation service.
package recommend

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Recommendation is one title picked by the service.
type Recommendation struct {
	ID       ID       `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type,omitempty"` // "movie" or "show"
	Score    float64  `json:"score"`          // IMDB rating, 0-10
	Year     int      `json:"year,omitempty"`
	Runtime  int      `json:"runtime,omitempty"` // minutes
	Genres   []string `json:"genres,omitempty"`
	Cast     []string `json:"cast,omitempty"`
	Director string   `json:"director,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
	Poster   string   `json:"poster,omitempty"` // image URL
}

// ID is a title identifier. The service sends it either as a string or a number.
type ID string

// UnmarshalJSON accepts `"42"` and `42`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// ScoreLabel formats the rating for display, e.g. "8.1/10".
func (r *Recommendation) ScoreLabel() string {
	if r.Score <= 0 {
		return "unrated"
	}
	return strconv.FormatFloat(r.Score, 'f', -1, 64) + "/10"
}
