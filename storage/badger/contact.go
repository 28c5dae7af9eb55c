package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

// ContactRepository implements storage.ContactRepository for BadgerDB.
type ContactRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ContactRepository = (*ContactRepository)(nil)

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(backend *Backend) (storage.ContactRepository, error) {
	idSeq, err := backend.GetSequence(contactIDSeq)
	if err != nil {
		return nil, err
	}

	return &ContactRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ContactRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ContactRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddContacts adds one or more contacts to storage.
func (r *ContactRepository) AddContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, contact := range contacts {
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
			contact.Id = core.ID(nextID)

			contact.InsertedAt = time.Now().UTC()
			contact.UpdatedAt = contact.InsertedAt

			key := makeRecordKey(contactPrefix, contact.Id)
			if err := tx.Set(key, storage.MarshalContact(contact)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return contacts, err
}

// UpdateContacts updates existing contacts.
func (r *ContactRepository) UpdateContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, contact := range contacts {
			key := makeRecordKey(contactPrefix, contact.Id)

			old, err := r.readContact(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			contact.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalContact(contact)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return contacts, err
}

// DeleteContacts removes contacts by their IDs.
func (r *ContactRepository) DeleteContacts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(contactPrefix, id)

			contact, err := r.readContact(tx, key)
			if err != nil {
				return err
			}
			if contact == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetContact retrieves a single contact by ID.
func (r *ContactRepository) GetContact(ctx context.Context, id core.ID) (*core.Contact, error) {
	var result *core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(contactPrefix, id)
		var err error
		result, err = r.readContact(tx, key)
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

// GetAllContacts retrieves every contact.
func (r *ContactRepository) GetAllContacts(ctx context.Context) ([]*core.Contact, error) {
	var results []*core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(contactPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var contact *core.Contact
			err := iter.Item().Value(func(val []byte) error {
				var err error
				contact, err = storage.UnmarshalContact(val)
				return err
			})
			if err != nil {
				return err
			}
			if contact != nil {
				results = append(results, contact)
			}
		}
		return nil
	}, false)
	return results, err
}

// readContact reads and unmarshals a contact by primary key.
// Returns nil (no error) when the key does not exist.
func (r *ContactRepository) readContact(tx *badger.Txn, key []byte) (*core.Contact, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var contact *core.Contact
	err = item.Value(func(val []byte) error {
		var err error
		contact, err = storage.UnmarshalContact(val)
		return err
	})
	return contact, err
}
