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


package badger

import (
	"io"
	"log/slog"
	"testing"
)

// NewTestStore creates a store in a fresh temporary directory for testing.
// The store and its directory are cleaned up with the test.
func NewTestStore(tb testing.TB) *Store {
	tb.Helper()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewStore(tb.TempDir(), WithLogger(quiet))
	if err != nil {
		tb.Fatalf("creating test store: %v", err)
	}
	tb.Cleanup(func() {
		store.Close()
	})
	return store
}
