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


package schema

import "errors"

var (
	// ErrNoFields indicates a schema was defined without any fields.
	ErrNoFields = errors.New("schema has no fields")

	// ErrInvalidFieldName indicates an empty field name or one containing
	// a reserved character.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrDuplicateField indicates two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrUniqueFieldRequired indicates no field carries the unique
	// constraint; the index writer needs exactly one document key.
	ErrUniqueFieldRequired = errors.New("schema needs exactly one unique field")

	// ErrMultipleUniqueFields indicates more than one field carries the
	// unique constraint.
	ErrMultipleUniqueFields = errors.New("schema has multiple unique fields")

	// ErrUniqueFieldNotStored indicates the unique field is not stored;
	// the key must be retrievable for results and detail lookups.
	ErrUniqueFieldNotStored = errors.New("unique field must be stored")

	// ErrUniqueFieldAnalyzed indicates the unique field has an analyzer;
	// keys must index verbatim or duplicate detection breaks.
	ErrUniqueFieldAnalyzed = errors.New("unique field must not be analyzed")

	// ErrUnknownAnalyzer indicates an analyzer value outside the declared
	// set, typically from corrupt persisted schema metadata.
	ErrUnknownAnalyzer = errors.New("unknown analyzer")
)
