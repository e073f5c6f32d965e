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


package core

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - SongID must not be empty
//
// NOT validated:
//   - Title, Artist, Lyrics (empty values index as empty fields)
//   - Uniqueness of SongID (enforced by the index writer across a batch)
func ValidateRecord(record Record) error {
	if record.SongID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptySongID)
	}
	return nil
}
