// Package export writes the catalogue listing to YAML or Parquet files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/present"
)

// Record is one exported catalogue entry.
type Record struct {
	ID        int64  `yaml:"id" parquet:"id"`
	UUID      string `yaml:"uuid" parquet:"uuid"`
	Filename  string `yaml:"filename" parquet:"filename"`
	Info      string `yaml:"info,omitempty" parquet:"info"`
	CreatedAt string `yaml:"created_at,omitempty" parquet:"created_at"`
	ImageURL  string `yaml:"image_url" parquet:"image_url"`
}

// Document is the YAML export layout.
type Document struct {
	ExportedAt string   `yaml:"exported_at"`
	Service    string   `yaml:"service,omitempty"`
	Count      int      `yaml:"count"`
	Entries    []Record `yaml:"entries"`
}

// Records converts entries into export rows. urls may be nil.
func Records(entries []catalogue.Entry, urls present.Locator) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		r := Record{
			ID:        e.ID,
			UUID:      e.UUID,
			Filename:  e.Filename,
			Info:      e.Description(),
			CreatedAt: e.CreatedAt,
		}
		if urls != nil {
			r.ImageURL = urls.AssetURL(e)
		}
		records = append(records, r)
	}
	return records
}

// WriteYAML encodes records as a YAML document.
func WriteYAML(w io.Writer, service string, records []Record, now time.Time) error {
	doc := Document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Service:    service,
		Count:      len(records),
		Entries:    records,
	}
	if doc.Entries == nil {
		doc.Entries = []Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteFile writes records to path. The format follows the extension:
// .yaml/.yml or .parquet.
func WriteFile(path, service string, records []Record, now time.Time) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		if err := parquet.WriteFile(path, records); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	case ".yaml", ".yml":
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export: %w", err)
		}
		if err := WriteYAML(file, service, records, now); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	default:
		return fmt.Errorf("unsupported export format %q (want .yaml, .yml or .parquet)", ext)
	}
}
