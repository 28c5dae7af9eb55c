package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/storage"
)

func TestLocationBasics(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	location := &core.SavedLocation{
		Name:    "Riverside Park",
		Address: "12 River Rd",
		Lat:     51.5,
		Lng:     -0.12,
		IsHome:  false,
	}

	added, err := repos.Locations.AddLocations(ctx, location)
	if err != nil {
		t.Fatalf("Failed to add location: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Locations.GetLocation(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get location: %v", err)
	}
	if retrieved.Name != "Riverside Park" || retrieved.Lat != 51.5 {
		t.Fatalf("Retrieved location does not match: %+v", retrieved)
	}

	retrieved.Notes = "Feed the ducks here"
	if _, err := repos.Locations.UpdateLocations(ctx, retrieved); err != nil {
		t.Fatalf("Failed to update location: %v", err)
	}

	updated, err := repos.Locations.GetLocation(ctx, retrieved.Id)
	if err != nil {
		t.Fatalf("Failed to get updated location: %v", err)
	}
	if updated.Notes != "Feed the ducks here" {
		t.Fatalf("Expected updated notes, got '%s'", updated.Notes)
	}

	if err := repos.Locations.DeleteLocations(ctx, retrieved.Id); err != nil {
		t.Fatalf("Failed to delete location: %v", err)
	}
	if _, err := repos.Locations.GetLocation(ctx, retrieved.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestLocationGetAll(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repos.Locations.AddLocations(ctx,
		&core.SavedLocation{Name: "Home", IsHome: true},
		&core.SavedLocation{Name: "General Hospital"},
	)
	if err != nil {
		t.Fatalf("Failed to add locations: %v", err)
	}

	all, err := repos.Locations.GetAllLocations(ctx)
	if err != nil {
		t.Fatalf("Failed to get all locations: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(all))
	}
}

func TestTaskBasics(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	task := &core.Task{
		Title:       "Take medication",
		Description: "Morning pills with breakfast",
		Due:         time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond),
	}

	added, err := repos.Tasks.AddTasks(ctx, task)
	if err != nil {
		t.Fatalf("Failed to add task: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Tasks.GetTask(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if retrieved.Done {
		t.Fatal("Expected new task to be pending")
	}

	retrieved.Done = true
	if _, err := repos.Tasks.UpdateTasks(ctx, retrieved); err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}

	updated, err := repos.Tasks.GetTask(ctx, retrieved.Id)
	if err != nil {
		t.Fatalf("Failed to get updated task: %v", err)
	}
	if !updated.Done {
		t.Fatal("Expected task to be done")
	}

	if err := repos.Tasks.DeleteTasks(ctx, retrieved.Id); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	if _, err := repos.Tasks.GetTask(ctx, retrieved.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestTaskGetAll(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repos.Tasks.AddTasks(ctx,
		&core.Task{Title: "Water plants"},
		&core.Task{Title: "Call Maria"},
		&core.Task{Title: "Buy groceries"},
	)
	if err != nil {
		t.Fatalf("Failed to add tasks: %v", err)
	}

	all, err := repos.Tasks.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("Failed to get all tasks: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(all))
	}
}

func TestContactBasics(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	contact := &core.Contact{
		Name:         "Maria",
		Relationship: "Daughter",
		Mobile:       "5551234567",
		Email:        "maria@example.com",
		IsEmergency:  true,
	}

	added, err := repos.Contacts.AddContacts(ctx, contact)
	if err != nil {
		t.Fatalf("Failed to add contact: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Contacts.GetContact(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}
	if retrieved.Name != "Maria" || !retrieved.IsEmergency {
		t.Fatalf("Retrieved contact does not match: %+v", retrieved)
	}

	retrieved.Mobile = "5559876543"
	if _, err := repos.Contacts.UpdateContacts(ctx, retrieved); err != nil {
		t.Fatalf("Failed to update contact: %v", err)
	}

	updated, err := repos.Contacts.GetContact(ctx, retrieved.Id)
	if err != nil {
		t.Fatalf("Failed to get updated contact: %v", err)
	}
	if updated.Mobile != "5559876543" {
		t.Fatalf("Expected updated mobile, got '%s'", updated.Mobile)
	}

	if err := repos.Contacts.DeleteContacts(ctx, retrieved.Id); err != nil {
		t.Fatalf("Failed to delete contact: %v", err)
	}
	if _, err := repos.Contacts.GetContact(ctx, retrieved.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestContactGetAll(t *testing.T) {
	repos, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { repos.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repos.Contacts.AddContacts(ctx,
		&core.Contact{Name: "Maria", Relationship: "Daughter"},
		&core.Contact{Name: "Dr. Patel", Relationship: "Doctor"},
	)
	if err != nil {
		t.Fatalf("Failed to add contacts: %v", err)
	}

	all, err := repos.Contacts.GetAllContacts(ctx)
	if err != nil {
		t.Fatalf("Failed to get all contacts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 contacts, got %d", len(all))
	}
}
