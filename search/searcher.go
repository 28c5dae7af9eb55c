package search

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

const (
	// defaultThreshold is the relevance cutoff; candidates must score
	// strictly above it to appear in results.
	defaultThreshold = 0.2

	// defaultLimit caps how many ranked results a search returns.
	defaultLimit = 8

	// subtitleLength is how much of a memory's content is shown when it
	// has no description.
	subtitleLength = 50
)

// Searched fields per collection.
var (
	memoryFields   = []string{"title", "description", "content", "location", "people"}
	locationFields = []string{"name", "address", "notes"}
	taskFields     = []string{"title", "description"}
	personFields   = []string{"name"}
)

// Searcher provides universal fuzzy/semantic search over the journal:
// memories, saved locations, tasks, and the people attached to them.
type Searcher struct {
	memories  storage.MemoryRepository
	locations storage.LocationRepository
	tasks     storage.TaskRepository
	contacts  storage.ContactRepository
	pool      *ants.Pool
	threshold float64
	limit     int
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent candidate scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithThreshold sets the relevance cutoff. Candidates scoring at or below
// it are dropped. Default is 0.2.
func WithThreshold(threshold float64) Option {
	return func(s *Searcher) error {
		s.threshold = threshold
		return nil
	}
}

// WithLimit sets the maximum number of ranked results returned per search.
// Default is 8.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 1 {
			limit = 1
		}
		s.limit = limit
		return nil
	}
}

// NewSearcher creates a new searcher over the journal repositories.
func NewSearcher(
	memories storage.MemoryRepository,
	locations storage.LocationRepository,
	tasks storage.TaskRepository,
	contacts storage.ContactRepository,
	opts ...Option,
) (*Searcher, error) {
	if memories == nil {
		return nil, ErrMemoryRepositoryRequired
	}
	if locations == nil {
		return nil, ErrLocationRepositoryRequired
	}
	if tasks == nil {
		return nil, ErrTaskRepositoryRequired
	}
	if contacts == nil {
		return nil, ErrContactRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		memories:  memories,
		locations: locations,
		tasks:     tasks,
		contacts:  contacts,
		pool:      pool,
		threshold: defaultThreshold,
		limit:     defaultLimit,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the worker pool. The searcher must not be used afterwards.
func (s *Searcher) Release() {
	s.pool.Release()
}

// candidate pairs a searchable item with the result skeleton it produces
// when its score clears the threshold.
type candidate struct {
	item   Item
	fields []string
	result core.SearchResult
}

// Search scores every journal record against the query and returns the
// ranked results. Shorthand for SearchWithMonitor with no monitor.
func (s *Searcher) Search(ctx context.Context, query string) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor scores every journal record against the query with
// monitoring callbacks at each stage. Candidates are scored concurrently on
// the worker pool; results are filtered by the relevance threshold, ranked
// with SortByRelevance, and truncated to the configured limit.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []*core.SearchResult{}, nil
	}

	monitor.Start(query)

	candidates, counts, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}
	monitor.AfterCandidateLoad(counts[0], counts[1], counts[2], counts[3])

	// Score candidates concurrently; each worker writes its own slot, so the
	// filtered result order below stays deterministic.
	scores := make([]float64, len(candidates))
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		c := &candidates[i]
		slot := &scores[i]
		if err := s.pool.Submit(func() {
			defer wg.Done()
			*slot = Score(query, c.item, c.fields)
		}); err != nil {
			wg.Done()
			wg.Wait()
			s.logger.Error("error submitting scoring task", "err", err)
			return nil, err
		}
	}
	wg.Wait()

	results := make([]*core.SearchResult, 0, len(candidates))
	for i := range candidates {
		if scores[i] <= s.threshold {
			continue
		}
		result := candidates[i].result
		result.Score = scores[i]
		results = append(results, &result)
		monitor.CandidateScored(&result)
	}

	SortByRelevance(results, query)
	if len(results) > s.limit {
		results = results[:s.limit]
	}
	monitor.Finish(results)

	return results, nil
}

// Suggest returns up to five autocomplete suggestions for the query, drawn
// from memory titles, saved location names, and people's names.
func (s *Searcher) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return nil, nil
	}

	memories, err := s.memories.GetAllMemories(ctx)
	if err != nil {
		s.logger.Error("error loading memories for suggestions", "err", err)
		return nil, err
	}
	locations, err := s.locations.GetAllLocations(ctx)
	if err != nil {
		s.logger.Error("error loading locations for suggestions", "err", err)
		return nil, err
	}
	contacts, err := s.contacts.GetAllContacts(ctx)
	if err != nil {
		s.logger.Error("error loading contacts for suggestions", "err", err)
		return nil, err
	}

	corpus := Corpus{
		MemoryTitles:  make([]string, 0, len(memories)),
		LocationNames: make([]string, 0, len(locations)),
	}
	for _, memory := range memories {
		corpus.MemoryTitles = append(corpus.MemoryTitles, memory.Title)
	}
	for _, location := range locations {
		corpus.LocationNames = append(corpus.LocationNames, location.Name)
	}
	corpus.PersonNames = peopleNames(memories, contacts)

	return Suggestions(query, corpus), nil
}

// loadCandidates fetches every journal collection and flattens it into
// scoreable candidates. Returned counts are memories, locations, tasks,
// people in that order.
func (s *Searcher) loadCandidates(ctx context.Context) ([]candidate, [4]int, error) {
	var counts [4]int

	memories, err := s.memories.GetAllMemories(ctx)
	if err != nil {
		s.logger.Error("error loading memories", "err", err)
		return nil, counts, err
	}
	locations, err := s.locations.GetAllLocations(ctx)
	if err != nil {
		s.logger.Error("error loading locations", "err", err)
		return nil, counts, err
	}
	tasks, err := s.tasks.GetAllTasks(ctx)
	if err != nil {
		s.logger.Error("error loading tasks", "err", err)
		return nil, counts, err
	}
	contacts, err := s.contacts.GetAllContacts(ctx)
	if err != nil {
		s.logger.Error("error loading contacts", "err", err)
		return nil, counts, err
	}

	people := peopleNames(memories, contacts)
	counts = [4]int{len(memories), len(locations), len(tasks), len(people)}

	candidates := make([]candidate, 0, len(memories)+len(locations)+len(tasks)+len(people))

	for _, memory := range memories {
		title := memory.Title
		if title == "" {
			title = "Untitled Memory"
		}
		subtitle := memory.Description
		if subtitle == "" && memory.Content != "" {
			subtitle = memory.Content
			if len(subtitle) > subtitleLength {
				subtitle = subtitle[:subtitleLength] + "..."
			}
		}
		candidates = append(candidates, candidate{
			item: Item{
				"title":       Scalar(memory.Title),
				"description": Scalar(memory.Description),
				"content":     Scalar(memory.Content),
				"location":    Scalar(memory.Location),
				"people":      List(memory.People),
			},
			fields: memoryFields,
			result: core.SearchResult{
				Id:       memory.Id,
				Type:     core.ResultTypeMemory,
				Title:    title,
				Subtitle: subtitle,
				Date:     memory.Date,
			},
		})
	}

	for _, location := range locations {
		candidates = append(candidates, candidate{
			item: Item{
				"name":    Scalar(location.Name),
				"address": Scalar(location.Address),
				"notes":   Scalar(location.Notes),
			},
			fields: locationFields,
			result: core.SearchResult{
				Id:       location.Id,
				Type:     core.ResultTypeLocation,
				Title:    location.Name,
				Subtitle: location.Address,
			},
		})
	}

	for _, task := range tasks {
		subtitle := task.Description
		if subtitle == "" {
			subtitle = "Task"
		}
		candidates = append(candidates, candidate{
			item: Item{
				"title":       Scalar(task.Title),
				"description": Scalar(task.Description),
			},
			fields: taskFields,
			result: core.SearchResult{
				Id:       task.Id,
				Type:     core.ResultTypeTask,
				Title:    task.Title,
				Subtitle: subtitle,
				Date:     task.Due,
			},
		})
	}

	relationships := make(map[string]string, len(contacts))
	for _, contact := range contacts {
		relationships[contact.Name] = contact.Relationship
	}
	for _, name := range people {
		subtitle := relationships[name]
		if subtitle == "" {
			subtitle = "Person"
		}
		candidates = append(candidates, candidate{
			item:   Item{"name": Scalar(name)},
			fields: personFields,
			result: core.SearchResult{
				Id:       core.IDFromContent(name),
				Type:     core.ResultTypePerson,
				Title:    name,
				Subtitle: subtitle,
			},
		})
	}

	return candidates, counts, nil
}

// peopleNames collects the distinct people known to the journal, in
// first-seen order: everyone attached to a memory, then every contact.
func peopleNames(memories []*core.Memory, contacts []*core.Contact) []string {
	seen := make(map[string]bool)
	var names []string
	for _, memory := range memories {
		for _, name := range memory.People {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for _, contact := range contacts {
		if contact.Name != "" && !seen[contact.Name] {
			seen[contact.Name] = true
			names = append(names, contact.Name)
		}
	}
	return names
}
