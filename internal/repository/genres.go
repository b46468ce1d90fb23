package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeGenres serialises a genre list into the JSON text stored in the
// genres column.  A nil list is stored as an empty array.
func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}
	return string(b), nil
}

// decodeGenres parses the genres column.  The result is never nil and
// keeps the stored order.
func decodeGenres(raw string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
