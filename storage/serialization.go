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


package storage

import (
	"fmt"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

// MarshalPostingList serializes a posting list to bytes.
func MarshalPostingList(list core.PostingList) []byte {
	buf := make([]byte, core.PostingListMUS.Size(list))
	core.PostingListMUS.Marshal(list, buf)
	return buf
}

// UnmarshalPostingList deserializes a posting list from bytes.
func UnmarshalPostingList(data []byte) (core.PostingList, error) {
	list, _, err := core.PostingListMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: posting list: %w", ErrSerializationFailed, err)
	}
	return list, nil
}

// MarshalStoredFields serializes a document's stored field map to bytes.
func MarshalStoredFields(fields map[string]string) []byte {
	buf := make([]byte, core.StoredFieldsMUS.Size(fields))
	core.StoredFieldsMUS.Marshal(fields, buf)
	return buf
}

// UnmarshalStoredFields deserializes a stored field map from bytes.
func UnmarshalStoredFields(data []byte) (map[string]string, error) {
	fields, _, err := core.StoredFieldsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: stored fields: %w", ErrSerializationFailed, err)
	}
	return fields, nil
}

// MarshalFieldLens serializes a document's per-field token counts to bytes.
func MarshalFieldLens(lens map[string]uint32) []byte {
	buf := make([]byte, core.FieldLensMUS.Size(lens))
	core.FieldLensMUS.Marshal(lens, buf)
	return buf
}

// UnmarshalFieldLens deserializes per-field token counts from bytes.
func UnmarshalFieldLens(data []byte) (map[string]uint32, error) {
	lens, _, err := core.FieldLensMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: field lens: %w", ErrSerializationFailed, err)
	}
	return lens, nil
}

// MarshalIndexStats serializes index statistics to bytes.
func MarshalIndexStats(stats core.IndexStats) []byte {
	buf := make([]byte, core.IndexStatsMUS.Size(stats))
	core.IndexStatsMUS.Marshal(stats, buf)
	return buf
}

// UnmarshalIndexStats deserializes index statistics from bytes.
func UnmarshalIndexStats(data []byte) (core.IndexStats, error) {
	stats, _, err := core.IndexStatsMUS.Unmarshal(data)
	if err != nil {
		return core.IndexStats{}, fmt.Errorf("%w: index stats: %w", ErrSerializationFailed, err)
	}
	return stats, nil
}

// MarshalSchemaFields serializes schema field definitions to bytes.
func MarshalSchemaFields(fields []schema.Field) []byte {
	buf := make([]byte, schema.FieldsMUS.Size(fields))
	schema.FieldsMUS.Marshal(fields, buf)
	return buf
}

// UnmarshalSchemaFields deserializes schema field definitions from bytes.
func UnmarshalSchemaFields(data []byte) ([]schema.Field, error) {
	fields, _, err := schema.FieldsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: schema fields: %w", ErrSerializationFailed, err)
	}
	return fields, nil
}
