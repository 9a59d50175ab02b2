package catalogue

import (
	"encoding/json"
	"strings"
	"time"
)

// catalogueTimestampLayout matches Python's isoformat() without a zone.
const catalogueTimestampLayout = "2006-01-02T15:04:05.999999"

// Entry is one catalogued image as returned by /api/images.
type Entry struct {
	ID        int64   `json:"id" yaml:"id"`
	UUID      string  `json:"uuid" yaml:"uuid"`
	Filename  string  `json:"filename" yaml:"filename"`
	Info      *string `json:"info" yaml:"info,omitempty"`
	CreatedAt string  `json:"created_at" yaml:"created_at,omitempty"`
}

// Description returns the entry's info text, or "" when the service sent null.
func (e Entry) Description() string {
	if e.Info == nil {
		return ""
	}
	return strings.TrimSpace(*e.Info)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (e Entry) ParsedCreatedAt() time.Time {
	return parseTime(e.CreatedAt)
}

// AssetName is the name the service stored the asset under.
func (e Entry) AssetName() string {
	return e.UUID + "." + Extension(e.Filename)
}

// Extension returns the lowercased last dot-segment of filename. A name with
// no dot yields the whole name lowercased, which is what the service derives.
func Extension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return strings.ToLower(filename[idx+1:])
	}
	return strings.ToLower(filename)
}

// Match is a successful search hit.
type Match struct {
	Similarity float64 `json:"similarity"`
	ImageURL   string  `json:"image_url"`
	Image      Entry   `json:"image"`
}

// File is an image payload sent with search and upload requests.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// envelope is the shape shared by every Catalogue Service response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) hasData() bool {
	trimmed := strings.TrimSpace(string(e.Data))
	return trimmed != "" && trimmed != "null"
}

type searchData struct {
	Similarity float64 `json:"similarity"`
	ImageURL   string  `json:"image_url"`
	Image      *Entry  `json:"image"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	// Naive timestamps are written in UTC by the service.
	if t, err := time.ParseInLocation(catalogueTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}
