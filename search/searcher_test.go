package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher(t *testing.T) {
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		repos.Close()
		backend.Close()
	}()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(repos.Memories, repos.Locations, repos.Tasks, repos.Contacts)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Release()
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(repos.Memories, repos.Locations, repos.Tasks, repos.Contacts,
			WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Release()
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(repos.Memories, repos.Locations, repos.Tasks, repos.Contacts,
			WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Release()
	})

	t.Run("nil memory repository", func(t *testing.T) {
		_, err := NewSearcher(nil, repos.Locations, repos.Tasks, repos.Contacts)
		assert.Equal(t, ErrMemoryRepositoryRequired, err)
	})

	t.Run("nil location repository", func(t *testing.T) {
		_, err := NewSearcher(repos.Memories, nil, repos.Tasks, repos.Contacts)
		assert.Equal(t, ErrLocationRepositoryRequired, err)
	})

	t.Run("nil task repository", func(t *testing.T) {
		_, err := NewSearcher(repos.Memories, repos.Locations, nil, repos.Contacts)
		assert.Equal(t, ErrTaskRepositoryRequired, err)
	})

	t.Run("nil contact repository", func(t *testing.T) {
		_, err := NewSearcher(repos.Memories, repos.Locations, repos.Tasks, nil)
		assert.Equal(t, ErrContactRepositoryRequired, err)
	})
}

// seedJournal fills the repositories with a small family journal.
func seedJournal(t *testing.T, repos *badger.Repositories) {
	t.Helper()
	ctx := context.Background()

	_, err := repos.Memories.AddMemories(ctx,
		&core.Memory{
			Title:       "Birthday Party at the Park",
			Description: "Grandma's 80th birthday",
			Kind:        core.MemoryKindPhoto,
			Location:    "Riverside Park",
			People:      []string{"Grandma Rose", "Maria"},
			Date:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		&core.Memory{
			Title:   "Beach Trip",
			Kind:    core.MemoryKindText,
			Content: "Sunday by the sea with everyone",
			People:  []string{"Maria"},
		},
	)
	require.NoError(t, err)

	_, err = repos.Locations.AddLocations(ctx,
		&core.SavedLocation{Name: "Riverside Park", Address: "12 River Rd"},
		&core.SavedLocation{Name: "General Hospital", Address: "400 Main St"},
	)
	require.NoError(t, err)

	_, err = repos.Tasks.AddTasks(ctx,
		&core.Task{Title: "Buy birthday cake", Description: "For the party on Saturday"},
	)
	require.NoError(t, err)

	_, err = repos.Contacts.AddContacts(ctx,
		&core.Contact{Name: "Dr. Patel", Relationship: "Doctor", Mobile: "5551234567"},
	)
	require.NoError(t, err)
}

func newSeededSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	repos, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repos.Close()
		backend.Close()
	})

	seedJournal(t, repos)

	searcher, err := NewSearcher(repos.Memories, repos.Locations, repos.Tasks, repos.Contacts, opts...)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)
	return searcher
}

func TestSearch_EmptyQuery(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	results, err := searcher.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searcher.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_AcrossCollections(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	results, err := searcher.Search(ctx, "birthday")
	require.NoError(t, err)
	require.Len(t, results, 2)

	types := []core.ResultType{results[0].Type, results[1].Type}
	assert.Contains(t, types, core.ResultTypeMemory)
	assert.Contains(t, types, core.ResultTypeTask)
	for _, result := range results {
		assert.Greater(t, result.Score, 0.2)
		assert.LessOrEqual(t, result.Score, 1.0)
	}
}

func TestSearch_ExactTitleWinsOverlappingScores(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	// Both the saved location and the memory that happened there score a
	// perfect match; the exact title goes first.
	results, err := searcher.Search(ctx, "Riverside Park")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, core.ResultTypeLocation, results[0].Type)
	assert.Equal(t, "Riverside Park", results[0].Title)
	assert.Equal(t, "12 River Rd", results[0].Subtitle)
}

func TestSearch_PeopleFromMemories(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	results, err := searcher.Search(ctx, "Maria")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Maria only appears inside memory People lists, yet surfaces as a
	// person result with an exact title.
	assert.Equal(t, core.ResultTypePerson, results[0].Type)
	assert.Equal(t, "Maria", results[0].Title)
	assert.Equal(t, "Person", results[0].Subtitle)
}

func TestSearch_ContactRelationshipSubtitle(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	results, err := searcher.Search(ctx, "Dr. Patel")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, core.ResultTypePerson, results[0].Type)
	assert.Equal(t, "Doctor", results[0].Subtitle)
}

func TestSearch_ThresholdFiltersResults(t *testing.T) {
	searcher := newSeededSearcher(t, WithThreshold(0.999))
	ctx := context.Background()

	// Only perfect matches clear a near-1 threshold: the person entry and
	// the two memories that list her.
	results, err := searcher.Search(ctx, "Maria")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		assert.InDelta(t, 1.0, result.Score, 1e-9)
	}
}

func TestSearch_LimitTruncatesResults(t *testing.T) {
	searcher := newSeededSearcher(t, WithLimit(1))
	ctx := context.Background()

	results, err := searcher.Search(ctx, "Maria")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Maria", results[0].Title)
}

func TestSearch_SmallPool(t *testing.T) {
	searcher := newSeededSearcher(t, WithPoolSize(1))
	ctx := context.Background()

	results, err := searcher.Search(ctx, "birthday")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_NoMatches(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	results, err := searcher.Search(ctx, "xylophone")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// recordingMonitor captures every callback for inspection.
type recordingMonitor struct {
	query     string
	memories  int
	locations int
	tasks     int
	people    int
	scored    int
	finished  []*core.SearchResult
}

func (m *recordingMonitor) Start(query string) { m.query = query }
func (m *recordingMonitor) AfterCandidateLoad(memories, locations, tasks, people int) {
	m.memories = memories
	m.locations = locations
	m.tasks = tasks
	m.people = people
}
func (m *recordingMonitor) CandidateScored(_ *core.SearchResult) { m.scored++ }
func (m *recordingMonitor) Finish(results []*core.SearchResult)  { m.finished = results }

func TestSearchWithMonitor(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(ctx, "  birthday  ", monitor)
	require.NoError(t, err)

	assert.Equal(t, "birthday", monitor.query)
	assert.Equal(t, 2, monitor.memories)
	assert.Equal(t, 2, monitor.locations)
	assert.Equal(t, 1, monitor.tasks)
	// Grandma Rose and Maria from memories, Dr. Patel from contacts.
	assert.Equal(t, 3, monitor.people)
	assert.Equal(t, len(results), monitor.scored)
	assert.Equal(t, results, monitor.finished)
}

func TestSuggest(t *testing.T) {
	searcher := newSeededSearcher(t)
	ctx := context.Background()

	t.Run("query too short", func(t *testing.T) {
		suggestions, err := searcher.Suggest(ctx, "r")
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("matches across collections", func(t *testing.T) {
		suggestions, err := searcher.Suggest(ctx, "ri")
		require.NoError(t, err)
		assert.Equal(t, []string{"Beach Trip", "Riverside Park", "Maria"}, suggestions)
	})

	t.Run("no matches", func(t *testing.T) {
		suggestions, err := searcher.Suggest(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}
