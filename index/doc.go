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


// Package index builds immutable index generations from record batches.
//
// A Generation is one fully-built snapshot of the inverted index: postings
// per (field, term), stored field values per document, and the length
// statistics scoring needs. Generations never change after construction;
// updating the corpus means building a new generation and swapping it in.
//
// The Writer analyzes records concurrently on a worker pool (records are
// independent, so there is no shared mutable state during analysis) and
// merges sequentially, which keeps generation contents deterministic for
// a given input batch.
package index
