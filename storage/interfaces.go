package storage

import (
	"context"
	"time"

	"github.com/poiesic/keepsake/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MemoryRepository provides operations for managing journal memories.
type MemoryRepository interface {
	Repository
	// AddMemories adds one or more memories to storage.
	// Generates new IDs from sequence and sets the InsertedAt timestamp.
	// Returns the memories with generated IDs and timestamps populated.
	AddMemories(ctx context.Context, memories ...*core.Memory) ([]*core.Memory, error)

	// UpdateMemories updates existing memories.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any memory doesn't exist.
	UpdateMemories(ctx context.Context, memories ...*core.Memory) ([]*core.Memory, error)

	// DeleteMemories removes memories by their IDs.
	// Also removes associated index entries.
	// Returns ErrNotFound if any memory doesn't exist.
	DeleteMemories(ctx context.Context, ids ...core.ID) error

	// GetMemory retrieves a single memory by ID.
	// Returns ErrNotFound if the memory doesn't exist.
	GetMemory(ctx context.Context, id core.ID) (*core.Memory, error)

	// GetMemories retrieves multiple memories by their IDs.
	// Returns only the memories that exist (no error for missing records).
	GetMemories(ctx context.Context, ids ...core.ID) ([]*core.Memory, error)

	// GetAllMemories retrieves every stored memory.
	// The universal search loads its candidate set through this.
	GetAllMemories(ctx context.Context) ([]*core.Memory, error)

	// GetMemoriesByDateRange retrieves memories within a time range.
	// Returns memories where start <= Date < end, ordered by date.
	GetMemoriesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Memory, error)

	// GetRecentMemories retrieves the N most recent memories, ordered by date descending.
	GetRecentMemories(ctx context.Context, limit int) ([]*core.Memory, error)
}

// LocationRepository provides operations for managing saved locations.
type LocationRepository interface {
	Repository
	// AddLocations adds one or more saved locations to storage.
	AddLocations(ctx context.Context, locations ...*core.SavedLocation) ([]*core.SavedLocation, error)

	// UpdateLocations updates existing saved locations.
	// Returns ErrNotFound if any location doesn't exist.
	UpdateLocations(ctx context.Context, locations ...*core.SavedLocation) ([]*core.SavedLocation, error)

	// DeleteLocations removes saved locations by their IDs.
	// Returns ErrNotFound if any location doesn't exist.
	DeleteLocations(ctx context.Context, ids ...core.ID) error

	// GetLocation retrieves a single saved location by ID.
	// Returns ErrNotFound if the location doesn't exist.
	GetLocation(ctx context.Context, id core.ID) (*core.SavedLocation, error)

	// GetAllLocations retrieves every saved location.
	GetAllLocations(ctx context.Context) ([]*core.SavedLocation, error)
}

// TaskRepository provides operations for managing tasks.
type TaskRepository interface {
	Repository
	// AddTasks adds one or more tasks to storage.
	AddTasks(ctx context.Context, tasks ...*core.Task) ([]*core.Task, error)

	// UpdateTasks updates existing tasks.
	// Returns ErrNotFound if any task doesn't exist.
	UpdateTasks(ctx context.Context, tasks ...*core.Task) ([]*core.Task, error)

	// DeleteTasks removes tasks by their IDs.
	// Returns ErrNotFound if any task doesn't exist.
	DeleteTasks(ctx context.Context, ids ...core.ID) error

	// GetTask retrieves a single task by ID.
	// Returns ErrNotFound if the task doesn't exist.
	GetTask(ctx context.Context, id core.ID) (*core.Task, error)

	// GetAllTasks retrieves every task.
	GetAllTasks(ctx context.Context) ([]*core.Task, error)
}

// ContactRepository provides operations for managing family and emergency contacts.
type ContactRepository interface {
	Repository
	// AddContacts adds one or more contacts to storage.
	AddContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error)

	// UpdateContacts updates existing contacts.
	// Returns ErrNotFound if any contact doesn't exist.
	UpdateContacts(ctx context.Context, contacts ...*core.Contact) ([]*core.Contact, error)

	// DeleteContacts removes contacts by their IDs.
	// Returns ErrNotFound if any contact doesn't exist.
	DeleteContacts(ctx context.Context, ids ...core.ID) error

	// GetContact retrieves a single contact by ID.
	// Returns ErrNotFound if the contact doesn't exist.
	GetContact(ctx context.Context, id core.ID) (*core.Contact, error)

	// GetAllContacts retrieves every contact.
	GetAllContacts(ctx context.Context) ([]*core.Contact, error)
}
