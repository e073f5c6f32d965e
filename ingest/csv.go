// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ingest loads song records from CSV files for indexing.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simon200418/songindex/core"
)

// requiredColumns are the CSV header columns a song file must carry.
// Column order is free and extra columns are ignored.
var requiredColumns = []string{
	core.FieldSongID,
	core.FieldTitle,
	core.FieldArtist,
	core.FieldLyrics,
}

// LoadCSV reads song records from the CSV file at path.
func LoadCSV(path string) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// ReadRecords reads song records from CSV data. The first row must be a
// header containing the song_id, title, artist, and lyrics columns;
// missing columns fail with core.ErrConfig naming them.
func ReadRecords(r io.Reader) ([]core.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing CSV header", core.ErrConfig)
		}
		return nil, err
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []core.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, core.Record{
			SongID: strings.TrimSpace(row[columns[core.FieldSongID]]),
			Title:  row[columns[core.FieldTitle]],
			Artist: row[columns[core.FieldArtist]],
			Lyrics: row[columns[core.FieldLyrics]],
		})
	}
	return records, nil
}

// mapColumns resolves each required column to its header position.
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(strings.ToLower(name))] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing CSV columns: %s", core.ErrConfig, strings.Join(missing, ", "))
	}
	return columns, nil
}
