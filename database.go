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

package keepsake

import (
	"log/slog"

	"github.com/poiesic/keepsake/search"
	"github.com/poiesic/keepsake/storage"
	"github.com/poiesic/keepsake/storage/badger"
)

// Database bundles the journal's storage backend and repositories behind a
// single open/close lifecycle.
type Database struct {
	backend *badger.Backend
	repos   *badger.Repositories
	logger  *slog.Logger
}

// NewDatabase opens (or creates) the journal database at filePath.
func NewDatabase(filePath string) (*Database, error) {
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend: backend,
		repos:   repos,
		logger:  slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing repositories", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MemoryRepository() storage.MemoryRepository {
	return db.repos.Memories
}

func (db *Database) LocationRepository() storage.LocationRepository {
	return db.repos.Locations
}

func (db *Database) TaskRepository() storage.TaskRepository {
	return db.repos.Tasks
}

func (db *Database) ContactRepository() storage.ContactRepository {
	return db.repos.Contacts
}

// NewSearcher creates a universal searcher over the journal's repositories.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.repos.Memories, db.repos.Locations, db.repos.Tasks, db.repos.Contacts, opts...)
}
