package search

import (
	"strings"
	"unicode/utf8"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/index"
)

// suggestFields are the stored fields suggestion candidates come from.
var suggestFields = []string{core.FieldTitleExact, core.FieldArtistExact}

// Suggest returns up to maxN distinct stored title and artist values that
// contain the input as a case-insensitive substring. Inputs shorter than
// two runes return nothing; candidates are scanned in document id order,
// titles before artists per document, keeping first-seen order.
func Suggest(gen *index.Generation, input string, maxN int) []string {
	input = strings.TrimSpace(input)
	if gen == nil || maxN <= 0 || utf8.RuneCountInString(input) < 2 {
		return nil
	}
	needle := strings.ToLower(input)

	seen := make(map[string]struct{})
	var out []string
	for _, docID := range gen.DocIDs() {
		for _, field := range suggestFields {
			value := gen.StoredValue(docID, field)
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			if !strings.Contains(strings.ToLower(value), needle) {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
			if len(out) == maxN {
				return out
			}
		}
	}
	return out
}
