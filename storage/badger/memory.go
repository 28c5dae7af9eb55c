package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

// MemoryRepository implements storage.MemoryRepository for BadgerDB.
type MemoryRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MemoryRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository(backend *Backend) (storage.MemoryRepository, error) {
	idSeq, err := backend.GetSequence(memoryIDSeq)
	if err != nil {
		return nil, err
	}

	return &MemoryRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MemoryRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMemories adds one or more memories to storage.
func (r *MemoryRepository) AddMemories(ctx context.Context, memories ...*core.Memory) ([]*core.Memory, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, memory := range memories {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			memory.Id = core.ID(nextID)

			memory.InsertedAt = time.Now().UTC()
			memory.UpdatedAt = memory.InsertedAt
			if memory.Date.IsZero() {
				memory.Date = memory.InsertedAt
			}

			// Store primary record
			key := makeRecordKey(memoryPrefix, memory.Id)
			if err := tx.Set(key, storage.MarshalMemory(memory)); err != nil {
				return err
			}

			// Update date index
			dateKey := makeMemoryDateKey(memory.Date, memory.Id)
			if err := tx.Set(dateKey, storage.MarshalID(memory.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return memories, err
}

// UpdateMemories updates existing memories.
func (r *MemoryRepository) UpdateMemories(ctx context.Context, memories ...*core.Memory) ([]*core.Memory, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, memory := range memories {
			key := makeRecordKey(memoryPrefix, memory.Id)

			// Read old record to detect changes
			old, err := r.readMemory(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			memory.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalMemory(memory)); err != nil {
				return err
			}

			// Update date index if the date changed
			if !old.Date.Equal(memory.Date) {
				oldDateKey := makeMemoryDateKey(old.Date, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeMemoryDateKey(memory.Date, memory.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(memory.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return memories, err
}

// DeleteMemories removes memories by their IDs.
func (r *MemoryRepository) DeleteMemories(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(memoryPrefix, id)

			// Read record to get the date for index cleanup
			memory, err := r.readMemory(tx, key)
			if err != nil {
				return err
			}
			if memory == nil {
				return storage.ErrNotFound
			}

			dateKey := makeMemoryDateKey(memory.Date, memory.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMemory retrieves a single memory by ID.
func (r *MemoryRepository) GetMemory(ctx context.Context, id core.ID) (*core.Memory, error) {
	var result *core.Memory
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(memoryPrefix, id)
		var err error
		result, err = r.readMemory(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMemories retrieves multiple memories by their IDs.
func (r *MemoryRepository) GetMemories(ctx context.Context, ids ...core.ID) ([]*core.Memory, error) {
	var result []*core.Memory
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(memoryPrefix, id)
			memory, err := r.readMemory(tx, key)
			if err != nil {
				return err
			}
			if memory != nil {
				result = append(result, memory)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllMemories retrieves every stored memory.
func (r *MemoryRepository) GetAllMemories(ctx context.Context) ([]*core.Memory, error) {
	var results []*core.Memory
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(memoryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var memory *core.Memory
			err := iter.Item().Value(func(val []byte) error {
				var err error
				memory, err = storage.UnmarshalMemory(val)
				return err
			})
			if err != nil {
				return err
			}
			if memory != nil {
				results = append(results, memory)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetMemoriesByDateRange retrieves memories within a time range.
func (r *MemoryRepository) GetMemoriesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Memory, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Memory
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialMemoryDateKey(start)
		endKey := makePartialMemoryDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			memory, err := r.readIndexedMemory(tx, iter.Item())
			if err != nil {
				return err
			}
			if memory != nil {
				results = append(results, memory)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentMemories retrieves the N most recent memories, ordered by date descending.
func (r *MemoryRepository) GetRecentMemories(ctx context.Context, limit int) ([]*core.Memory, error) {
	var results []*core.Memory
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent memories first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialMemoryDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(memoryDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			memory, err := r.readIndexedMemory(tx, iter.Item())
			if err != nil {
				return err
			}
			if memory != nil {
				results = append(results, memory)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readMemory reads and unmarshals a memory by primary key.
// Returns nil (no error) when the key does not exist.
func (r *MemoryRepository) readMemory(tx *badger.Txn, key []byte) (*core.Memory, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var memory *core.Memory
	err = item.Value(func(val []byte) error {
		var err error
		memory, err = storage.UnmarshalMemory(val)
		return err
	})
	return memory, err
}

// readIndexedMemory resolves a date-index entry to its full memory record.
func (r *MemoryRepository) readIndexedMemory(tx *badger.Txn, item *badger.Item) (*core.Memory, error) {
	var memoryID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		memoryID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	return r.readMemory(tx, makeRecordKey(memoryPrefix, memoryID))
}
