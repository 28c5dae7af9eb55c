package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

// TaskRepository implements storage.TaskRepository for BadgerDB.
type TaskRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(backend *Backend) (storage.TaskRepository, error) {
	idSeq, err := backend.GetSequence(taskIDSeq)
	if err != nil {
		return nil, err
	}

	return &TaskRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TaskRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *TaskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTasks adds one or more tasks to storage.
func (r *TaskRepository) AddTasks(ctx context.Context, tasks ...*core.Task) ([]*core.Task, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, task := range tasks {
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
			task.Id = core.ID(nextID)

			task.InsertedAt = time.Now().UTC()
			task.UpdatedAt = task.InsertedAt

			key := makeRecordKey(taskPrefix, task.Id)
			if err := tx.Set(key, storage.MarshalTask(task)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tasks, err
}

// UpdateTasks updates existing tasks.
func (r *TaskRepository) UpdateTasks(ctx context.Context, tasks ...*core.Task) ([]*core.Task, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, task := range tasks {
			key := makeRecordKey(taskPrefix, task.Id)

			old, err := r.readTask(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			task.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalTask(task)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tasks, err
}

// DeleteTasks removes tasks by their IDs.
func (r *TaskRepository) DeleteTasks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(taskPrefix, id)

			task, err := r.readTask(tx, key)
			if err != nil {
				return err
			}
			if task == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTask retrieves a single task by ID.
func (r *TaskRepository) GetTask(ctx context.Context, id core.ID) (*core.Task, error) {
	var result *core.Task
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(taskPrefix, id)
		var err error
		result, err = r.readTask(tx, key)
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

// GetAllTasks retrieves every task.
func (r *TaskRepository) GetAllTasks(ctx context.Context) ([]*core.Task, error) {
	var results []*core.Task
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(taskPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var task *core.Task
			err := iter.Item().Value(func(val []byte) error {
				var err error
				task, err = storage.UnmarshalTask(val)
				return err
			})
			if err != nil {
				return err
			}
			if task != nil {
				results = append(results, task)
			}
		}
		return nil
	}, false)
	return results, err
}

// readTask reads and unmarshals a task by primary key.
// Returns nil (no error) when the key does not exist.
func (r *TaskRepository) readTask(tx *badger.Txn, key []byte) (*core.Task, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var task *core.Task
	err = item.Value(func(val []byte) error {
		var err error
		task, err = storage.UnmarshalTask(val)
		return err
	})
	return task, err
}
