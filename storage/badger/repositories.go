package badger

import "github.com/poiesic/keepsake/storage"

// Repositories bundles the four journal repositories over one backend.
type Repositories struct {
	Memories  storage.MemoryRepository
	Locations storage.LocationRepository
	Tasks     storage.TaskRepository
	Contacts  storage.ContactRepository
}

// NewRepositories creates all journal repositories over the given backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	memories, err := NewMemoryRepository(backend)
	if err != nil {
		return nil, err
	}

	locations, err := NewLocationRepository(backend)
	if err != nil {
		memories.Close()
		return nil, err
	}

	tasks, err := NewTaskRepository(backend)
	if err != nil {
		locations.Close()
		memories.Close()
		return nil, err
	}

	contacts, err := NewContactRepository(backend)
	if err != nil {
		tasks.Close()
		locations.Close()
		memories.Close()
		return nil, err
	}

	return &Repositories{
		Memories:  memories,
		Locations: locations,
		Tasks:     tasks,
		Contacts:  contacts,
	}, nil
}

// Close releases every repository's resources.
func (r *Repositories) Close() error {
	var firstErr error
	for _, repo := range []storage.Repository{r.Contacts, r.Tasks, r.Locations, r.Memories} {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
