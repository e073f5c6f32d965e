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


// Package schema declares how record fields become searchable and storable.
//
// A Field pairs a name with a storage policy (stored for display or
// index-only), an analyzer choice (stemmed or none), and an optional
// uniqueness constraint. Stemming destroys the literal text, so a display
// attribute needs two declared fields: a stemmed searchable one and an
// exact stored shadow that preserves the original value.
package schema
