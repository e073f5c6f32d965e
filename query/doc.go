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


// Package query parses raw user queries into an AST of term, phrase, and
// boolean nodes over the searchable fields of a schema.
//
// Query text passes through the same analysis as indexed text, so a query
// term always matches the stemmed form stored in the index. Double-quoted
// runs become phrase nodes; everything else becomes individual terms. By
// default a document matching any term in any target field matches the
// query; a parser can be configured to require all terms instead.
package query
