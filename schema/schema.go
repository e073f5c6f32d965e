package schema

import (
	"fmt"
	"strings"

	"github.com/simon200418/songindex/core"
)

// Analyzer selects the analysis chain applied to a field at index and
// query time.
type Analyzer int

const (
	// AnalyzerNone leaves the field out of the inverted index. The value
	// is only useful when the field is stored.
	AnalyzerNone Analyzer = iota

	// AnalyzerStemmed normalizes, tokenizes, and stems the field.
	AnalyzerStemmed
)

// Field describes how one record attribute becomes searchable or storable.
type Field struct {
	Name     string
	Stored   bool
	Analyzer Analyzer
	Unique   bool
}

// Schema is an ordered, validated set of field descriptors.
type Schema struct {
	fields []Field
	byName map[string]Field
	unique Field
}

// Define validates the given descriptors and builds a Schema.
//
// Validation rules:
//   - at least one field
//   - non-empty names without the ':' key separator
//   - names unique
//   - exactly one unique field, stored and unanalyzed
func Define(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	byName := make(map[string]Field, len(fields))
	var unique *Field
	for _, f := range fields {
		if f.Name == "" || strings.ContainsRune(f.Name, ':') {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldName, f.Name)
		}
		if _, exists := byName[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		byName[f.Name] = f

		if !f.Unique {
			continue
		}
		if unique != nil {
			return nil, fmt.Errorf("%w: %q and %q", ErrMultipleUniqueFields, unique.Name, f.Name)
		}
		if !f.Stored {
			return nil, fmt.Errorf("%w: %q", ErrUniqueFieldNotStored, f.Name)
		}
		if f.Analyzer != AnalyzerNone {
			return nil, fmt.Errorf("%w: %q", ErrUniqueFieldAnalyzed, f.Name)
		}
		u := f
		unique = &u
	}
	if unique == nil {
		return nil, ErrUniqueFieldRequired
	}

	return &Schema{
		fields: append([]Field(nil), fields...),
		byName: byName,
		unique: *unique,
	}, nil
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field returns the descriptor with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// UniqueField returns the descriptor carrying the uniqueness constraint.
func (s *Schema) UniqueField() Field {
	return s.unique
}

// AnalyzedFields returns the names of fields entering the inverted index,
// in declaration order.
func (s *Schema) AnalyzedFields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		if f.Analyzer == AnalyzerStemmed {
			names = append(names, f.Name)
		}
	}
	return names
}

// StoredFields returns the names of stored fields in declaration order.
func (s *Schema) StoredFields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		if f.Stored {
			names = append(names, f.Name)
		}
	}
	return names
}

// Searchable reports whether name refers to an analyzed field.
func (s *Schema) Searchable(name string) bool {
	f, ok := s.byName[name]
	return ok && f.Analyzer == AnalyzerStemmed
}

// SongSchema returns the default schema for song records: a unique stored
// song_id, three stemmed searchable fields, and an exact stored shadow per
// display attribute.
func SongSchema() *Schema {
	s, err := Define(
		Field{Name: core.FieldSongID, Stored: true, Analyzer: AnalyzerNone, Unique: true},
		Field{Name: core.FieldTitle, Stored: true, Analyzer: AnalyzerStemmed},
		Field{Name: core.FieldArtist, Stored: true, Analyzer: AnalyzerStemmed},
		Field{Name: core.FieldLyrics, Stored: true, Analyzer: AnalyzerStemmed},
		Field{Name: core.FieldTitleExact, Stored: true, Analyzer: AnalyzerNone},
		Field{Name: core.FieldArtistExact, Stored: true, Analyzer: AnalyzerNone},
	)
	if err != nil {
		panic(err) // the default schema is a constant
	}
	return s
}
