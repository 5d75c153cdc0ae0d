package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		check    func(t *testing.T, rows []Row)
	}{
		{
			name: "canonical headers",
			input: "track,artist,valence,arousal,spotify_id\n" +
				"Song A,Artist A,0.5,0.6,id1\n" +
				"Song B,Artist B,-0.2,0.1,id2\n",
			wantRows: 2,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "Song A" || rows[0].Artist != "Artist A" {
					t.Errorf("row 0 metadata = %q/%q", rows[0].Title, rows[0].Artist)
				}
				if rows[0].Valence == nil || *rows[0].Valence != 0.5 {
					t.Errorf("row 0 valence = %v, want 0.5", rows[0].Valence)
				}
				if rows[0].ID != "id1" || rows[0].SpotifyID != "id1" {
					t.Errorf("row 0 id = %q, spotify id = %q", rows[0].ID, rows[0].SpotifyID)
				}
			},
		},
		{
			name: "muse-style tag headers are coalesced",
			input: "track,artist,valence_tags,arousal_tags,dominance_tags,spotify_id\n" +
				"Song,Artist,4.2,3.1,5.0,id1\n",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Valence == nil || *rows[0].Valence != 4.2 {
					t.Errorf("valence = %v, want 4.2", rows[0].Valence)
				}
				if rows[0].Dominance == nil || *rows[0].Dominance != 5.0 {
					t.Errorf("dominance = %v, want 5.0", rows[0].Dominance)
				}
			},
		},
		{
			name: "energy doubles as arousal",
			input: "title,artist,valence,energy,uri\n" +
				"Song,Artist,0.4,0.9,id1\n",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Arousal == nil || *rows[0].Arousal != 0.9 {
					t.Errorf("arousal = %v, want 0.9", rows[0].Arousal)
				}
				if rows[0].Title != "Song" {
					t.Errorf("title = %q, want Song", rows[0].Title)
				}
			},
		},
		{
			name: "unparseable and missing values become nil",
			input: "track,artist,valence,arousal,spotify_id\n" +
				"Song,Artist,not-a-number,,id1\n",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Valence != nil {
					t.Errorf("valence = %v, want nil", *rows[0].Valence)
				}
				if rows[0].Arousal != nil {
					t.Errorf("arousal = %v, want nil", *rows[0].Arousal)
				}
				if rows[0].HasAffect() {
					t.Error("HasAffect() = true for a row without affect")
				}
			},
		},
		{
			name: "short records tolerated",
			input: "track,artist,valence,arousal,spotify_id\n" +
				"Song,Artist\n",
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := parseCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parseCSV() unexpected error: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Fatalf("parseCSV() returned %d rows, want %d", len(rows), tt.wantRows)
			}
			if tt.check != nil {
				tt.check(t, rows)
			}
		})
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := src.Rows(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("Rows() error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestCSVSourceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "track,artist,valence,arousal,spotify_id\nSong,Artist,0.5,0.5,id1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := NewCSVSource(path).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "id1" {
		t.Errorf("Rows() = %+v, want one row with id1", rows)
	}
}
