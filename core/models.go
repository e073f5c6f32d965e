package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint derives a deterministic 64-bit digest from the given parts
// using BLAKE2b hashing. Identical inputs produce identical fingerprints.
func Fingerprint(parts ...string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Canonical field names produced by Record.Values.
const (
	FieldSongID      = "song_id"
	FieldTitle       = "title"
	FieldArtist      = "artist"
	FieldLyrics      = "lyrics"
	FieldTitleExact  = "title_exact"
	FieldArtistExact = "artist_exact"
)

// Record represents a single song as supplied by the data loader.
// Records are immutable once handed to an index build; the writer copies
// every value it stores, so the engine never aliases caller-owned data.
type Record struct {
	SongID string
	Title  string
	Artist string
	Lyrics string
}

// Values returns the record's field values keyed by canonical field name.
// The exact shadow fields carry the raw title and artist, so the original
// casing survives stemming.
func (r Record) Values() map[string]string {
	return map[string]string{
		FieldSongID:      r.SongID,
		FieldTitle:       r.Title,
		FieldArtist:      r.Artist,
		FieldLyrics:      r.Lyrics,
		FieldTitleExact:  r.Title,
		FieldArtistExact: r.Artist,
	}
}

// Posting records the occurrences of one term in one document field.
type Posting struct {
	DocID     string
	Frequency uint32
	Positions []uint32 // ordinal token positions, ascending
}

// PostingList holds the postings of a single term, ordered by DocID.
type PostingList []Posting

// IndexStats summarises one index generation for scoring purposes.
type IndexStats struct {
	DocCount   uint32
	TermTotals map[string]uint64 // field name -> total indexed tokens
}

// SearchResult is one ranked hit returned by the searcher.
// It is ephemeral and never persisted.
type SearchResult struct {
	DocID  string
	Score  float64
	Fields map[string]string // stored field values for display
}
