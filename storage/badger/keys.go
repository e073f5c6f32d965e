package badger

import "strings"

// Key layout within one generation database. Schema field names may not
// contain ':' and analyzed terms never do, so the separator is unambiguous.
const (
	schemaKey      = "meta:schema"
	statsKey       = "meta:stats"
	fingerprintKey = "meta:fingerprint"
	createdKey     = "meta:created"

	postingPrefix = "post:"
	docPrefix     = "doc:"
	lenPrefix     = "len:"
)

// currentFile is the pointer file in the store root naming the active
// generation directory.
const currentFile = "CURRENT"

// makePostingKey generates the key of one term's posting list.
// Format: post:field:term
func makePostingKey(field, term string) []byte {
	return []byte(postingPrefix + field + ":" + term)
}

// splitPostingKey extracts field and term from a posting key.
func splitPostingKey(key []byte) (field, term string, ok bool) {
	s, ok := trimPrefix(key, postingPrefix)
	if !ok {
		return "", "", false
	}
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// makeDocKey generates the key of a document's stored fields.
func makeDocKey(docID string) []byte {
	return []byte(docPrefix + docID)
}

// makeLenKey generates the key of a document's per-field token counts.
func makeLenKey(docID string) []byte {
	return []byte(lenPrefix + docID)
}

// trimPrefix returns the key without the prefix and whether it carried it.
func trimPrefix(key []byte, prefix string) (string, bool) {
	s := string(key)
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
