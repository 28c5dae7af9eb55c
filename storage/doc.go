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


// Package storage provides the storage abstraction layer for keepsake.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic. It allows for different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern, with one repository
// per journal collection:
//
//   - MemoryRepository: journal memories, with a date index for range and
//     recency queries
//   - LocationRepository: saved locations
//   - TaskRepository: reminder tasks
//   - ContactRepository: family and emergency contacts
//
// Public constructors return interfaces so consumers never couple to a
// specific backend; internal constructors may return concrete types.
//
// # Usage
//
// Create repositories over a BadgerDB backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	memories, err := badger.NewMemoryRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repos, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
