package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads catalog rows from a delimited text file such as the MuSe
// dataset export.
type CSVSource struct {
	path string
}

// NewCSVSource creates a catalog source for a CSV file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// columnAliases maps each canonical column to the source header names it may
// appear under, in preference order.
var columnAliases = map[string][]string{
	"track":      {"track", "title", "song", "name"},
	"artist":     {"artist", "artists", "artist_name"},
	"valence":    {"valence", "valence_tags", "valence_tag"},
	"arousal":    {"arousal", "arousal_tags", "arousal_tag", "energy"},
	"dominance":  {"dominance", "dominance_tags", "dominance_tag"},
	"spotify_id": {"spotify_id", "id", "spotify_uri", "uri"},
}

// Rows reads and parses the whole file. Failures to open or parse are
// reported as ErrCatalogUnavailable so callers can degrade cleanly.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrCatalogUnavailable, s.path, err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCatalogUnavailable, err)
	}

	columns := resolveColumns(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading record: %v", ErrCatalogUnavailable, err)
		}

		row := Row{
			ID:        field(record, columns, "spotify_id"),
			Title:     field(record, columns, "track"),
			Artist:    field(record, columns, "artist"),
			SpotifyID: field(record, columns, "spotify_id"),
			Valence:   numericField(record, columns, "valence"),
			Arousal:   numericField(record, columns, "arousal"),
			Dominance: numericField(record, columns, "dominance"),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// resolveColumns maps canonical column names to indices in the header,
// honoring the alias preference order.
func resolveColumns(header []string) map[string]int {
	indexByName := make(map[string]int, len(header))
	for i, name := range header {
		indexByName[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := indexByName[alias]; ok {
				columns[canonical] = idx
				break
			}
		}
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func numericField(record []string, columns map[string]int, name string) *float64 {
	raw := field(record, columns, name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
