package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

// LocationRepository implements storage.LocationRepository for BadgerDB.
type LocationRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.LocationRepository = (*LocationRepository)(nil)

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(backend *Backend) (storage.LocationRepository, error) {
	idSeq, err := backend.GetSequence(locationIDSeq)
	if err != nil {
		return nil, err
	}

	return &LocationRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *LocationRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *LocationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddLocations adds one or more saved locations to storage.
func (r *LocationRepository) AddLocations(ctx context.Context, locations ...*core.SavedLocation) ([]*core.SavedLocation, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, location := range locations {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			location.Id = core.ID(nextID)

			location.InsertedAt = time.Now().UTC()
			location.UpdatedAt = location.InsertedAt

			key := makeRecordKey(locationPrefix, location.Id)
			if err := tx.Set(key, storage.MarshalLocation(location)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return locations, err
}

// UpdateLocations updates existing saved locations.
func (r *LocationRepository) UpdateLocations(ctx context.Context, locations ...*core.SavedLocation) ([]*core.SavedLocation, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, location := range locations {
			key := makeRecordKey(locationPrefix, location.Id)

			old, err := r.readLocation(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			location.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalLocation(location)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return locations, err
}

// DeleteLocations removes saved locations by their IDs.
func (r *LocationRepository) DeleteLocations(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(locationPrefix, id)

			location, err := r.readLocation(tx, key)
			if err != nil {
				return err
			}
			if location == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetLocation retrieves a single saved location by ID.
func (r *LocationRepository) GetLocation(ctx context.Context, id core.ID) (*core.SavedLocation, error) {
	var result *core.SavedLocation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(locationPrefix, id)
		var err error
		result, err = r.readLocation(tx, key)
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

// GetAllLocations retrieves every saved location.
func (r *LocationRepository) GetAllLocations(ctx context.Context) ([]*core.SavedLocation, error) {
	var results []*core.SavedLocation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(locationPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var location *core.SavedLocation
			err := iter.Item().Value(func(val []byte) error {
				var err error
				location, err = storage.UnmarshalLocation(val)
				return err
			})
			if err != nil {
				return err
			}
			if location != nil {
				results = append(results, location)
			}
		}
		return nil
	}, false)
	return results, err
}

// readLocation reads and unmarshals a saved location by primary key.
// Returns nil (no error) when the key does not exist.
func (r *LocationRepository) readLocation(tx *badger.Txn, key []byte) (*core.SavedLocation, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var location *core.SavedLocation
	err = item.Value(func(val []byte) error {
		var err error
		location, err = storage.UnmarshalLocation(val)
		return err
	})
	return location, err
}
