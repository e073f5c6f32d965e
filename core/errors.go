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

import "errors"

var (
	// ErrConfig indicates a configuration problem (unknown field, missing
	// CSV column). The engine stays in a safe unindexed state and the
	// caller reports the problem to the user.
	ErrConfig = errors.New("configuration error")

	// ErrEmptyInput indicates a rebuild was requested with no records.
	ErrEmptyInput = errors.New("no records to index")

	// ErrEmptyQuery indicates a blank or whitespace-only query string.
	ErrEmptyQuery = errors.New("empty query")

	// ErrDuplicateKey indicates two records share a unique-field value.
	// It is always wrapped with the offending id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptySongID indicates the SongID field is empty.
	ErrEmptySongID = errors.New("song_id cannot be empty")
)
