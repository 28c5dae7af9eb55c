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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/keepsake"
	"github.com/poiesic/keepsake/core"
	"github.com/poiesic/keepsake/search"
	"github.com/urfave/cli/v2"
)

const dateLayout = "2006-01-02"

func main() {
	app := &cli.App{
		Name:  "keepsake",
		Usage: "Memory journal with universal fuzzy search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./keepsake_db",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add-memory",
				Usage:  "Record a memory in the journal",
				Action: addMemoryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Memory title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Short description",
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Memory kind (photo, voice, text)",
						Value: "text",
					},
					&cli.StringFlag{
						Name:  "content",
						Usage: "Text body, or media URL for photo/voice memories",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Place name where the memory happened",
					},
					&cli.StringSliceFlag{
						Name:  "person",
						Usage: "Person who is part of the memory (repeatable)",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "When the event happened (YYYY-MM-DD, defaults to today)",
					},
				},
			},
			{
				Name:   "add-location",
				Usage:  "Save a place the patient should find again",
				Action: addLocationCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Location name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "address",
						Usage: "Street address",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
					&cli.Float64Flag{
						Name:  "lat",
						Usage: "Latitude",
					},
					&cli.Float64Flag{
						Name:  "lng",
						Usage: "Longitude",
					},
					&cli.BoolFlag{
						Name:  "home",
						Usage: "Mark as the patient's home",
					},
				},
			},
			{
				Name:   "add-task",
				Usage:  "Add a reminder task",
				Action: addTaskCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Task title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Task details",
					},
					&cli.StringFlag{
						Name:  "due",
						Usage: "Due date (YYYY-MM-DD)",
					},
				},
			},
			{
				Name:   "add-contact",
				Usage:  "Add a family member or emergency contact",
				Action: addContactCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Contact name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "relationship",
						Usage: "Relationship to the patient",
					},
					&cli.StringFlag{
						Name:  "mobile",
						Usage: "Mobile number (ten digits)",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email address",
					},
					&cli.BoolFlag{
						Name:  "emergency",
						Usage: "Mark as an emergency contact",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List journal records",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Record type to list (memories, locations, tasks, contacts, all)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:  "recent",
						Usage: "Only show the N most recent memories",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search memories, locations, tasks, and people",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 8,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Relevance cutoff; results must score above it",
						Value: 0.2,
					},
					&cli.BoolFlag{
						Name:  "highlight",
						Usage: "Mark query matches in result titles",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Show autocomplete suggestions for a partial query",
				ArgsUsage: "<query>",
				Action:    suggestCommand,
			},
			{
				Name:   "seed",
				Usage:  "Populate the journal with sample records",
				Action: seedCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func openDatabase(c *cli.Context) (*keepsake.Database, error) {
	db, err := keepsake.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

func addMemoryCommand(c *cli.Context) error {
	var kind core.MemoryKind
	switch strings.ToLower(c.String("kind")) {
	case "photo":
		kind = core.MemoryKindPhoto
	case "voice":
		kind = core.MemoryKindVoice
	case "text":
		kind = core.MemoryKindText
	default:
		return fmt.Errorf("invalid kind %q: must be one of photo, voice, text", c.String("kind"))
	}

	date, err := parseDate(c.String("date"))
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	memory := &core.Memory{
		Title:       c.String("title"),
		Description: c.String("description"),
		Kind:        kind,
		Content:     c.String("content"),
		Location:    c.String("location"),
		People:      c.StringSlice("person"),
		Date:        date,
	}

	if err := core.ValidateMemory(memory); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.MemoryRepository().AddMemories(context.Background(), memory)
	if err != nil {
		return fmt.Errorf("failed to add memory: %w", err)
	}

	fmt.Printf("Added memory %d: %s\n", added[0].Id, added[0].Title)
	return nil
}

func addLocationCommand(c *cli.Context) error {
	location := &core.SavedLocation{
		Name:    c.String("name"),
		Address: c.String("address"),
		Notes:   c.String("notes"),
		Lat:     c.Float64("lat"),
		Lng:     c.Float64("lng"),
		IsHome:  c.Bool("home"),
	}

	if err := core.ValidateSavedLocation(location); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.LocationRepository().AddLocations(context.Background(), location)
	if err != nil {
		return fmt.Errorf("failed to add location: %w", err)
	}

	fmt.Printf("Added location %d: %s\n", added[0].Id, added[0].Name)
	return nil
}

func addTaskCommand(c *cli.Context) error {
	due, err := parseDate(c.String("due"))
	if err != nil {
		return fmt.Errorf("invalid due date: %w", err)
	}

	task := &core.Task{
		Title:       c.String("title"),
		Description: c.String("description"),
		Due:         due,
	}

	if err := core.ValidateTask(task); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.TaskRepository().AddTasks(context.Background(), task)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task %d: %s\n", added[0].Id, added[0].Title)
	return nil
}

func addContactCommand(c *cli.Context) error {
	contact := &core.Contact{
		Name:         c.String("name"),
		Relationship: c.String("relationship"),
		Mobile:       c.String("mobile"),
		Email:        c.String("email"),
		IsEmergency:  c.Bool("emergency"),
	}

	if err := core.ValidateContact(contact); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.ContactRepository().AddContacts(context.Background(), contact)
	if err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}

	fmt.Printf("Added contact %d: %s\n", added[0].Id, added[0].Name)
	return nil
}

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	kind := strings.ToLower(c.String("type"))

	switch kind {
	case "memories", "locations", "tasks", "contacts", "all":
	default:
		return fmt.Errorf("invalid type %q: must be one of memories, locations, tasks, contacts, all", kind)
	}

	if kind == "memories" || kind == "all" {
		var memories []*core.Memory
		if recent := c.Int("recent"); recent > 0 {
			memories, err = db.MemoryRepository().GetRecentMemories(ctx, recent)
		} else {
			memories, err = db.MemoryRepository().GetAllMemories(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list memories: %w", err)
		}
		fmt.Printf("Memories (%d):\n", len(memories))
		for _, memory := range memories {
			fmt.Printf("  %d [%s] %s (%s)\n", memory.Id, memory.Kind, memory.Title, memory.Date.Format(dateLayout))
		}
	}

	if kind == "locations" || kind == "all" {
		locations, err := db.LocationRepository().GetAllLocations(ctx)
		if err != nil {
			return fmt.Errorf("failed to list locations: %w", err)
		}
		fmt.Printf("Locations (%d):\n", len(locations))
		for _, location := range locations {
			marker := ""
			if location.IsHome {
				marker = " (home)"
			}
			fmt.Printf("  %d %s%s - %s\n", location.Id, location.Name, marker, location.Address)
		}
	}

	if kind == "tasks" || kind == "all" {
		tasks, err := db.TaskRepository().GetAllTasks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		fmt.Printf("Tasks (%d):\n", len(tasks))
		for _, task := range tasks {
			status := " "
			if task.Done {
				status = "x"
			}
			fmt.Printf("  %d [%s] %s\n", task.Id, status, task.Title)
		}
	}

	if kind == "contacts" || kind == "all" {
		contacts, err := db.ContactRepository().GetAllContacts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list contacts: %w", err)
		}
		fmt.Printf("Contacts (%d):\n", len(contacts))
		for _, contact := range contacts {
			marker := ""
			if contact.IsEmergency {
				marker = " (emergency)"
			}
			fmt.Printf("  %d %s - %s%s\n", contact.Id, contact.Name, contact.Relationship, marker)
		}
	}

	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(
		search.WithLimit(c.Int("limit")),
		search.WithThreshold(c.Float64("threshold")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	results, err := searcher.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d results for %q\n", len(results), query)
	for i, result := range results {
		title := result.Title
		if c.Bool("highlight") {
			title = search.Highlight(title, query)
		}
		fmt.Printf("%d: [%s] %s", i+1, result.Type, title)
		if result.Subtitle != "" {
			fmt.Printf(" - %s", result.Subtitle)
		}
		fmt.Printf(" [%0.3f]\n", result.Score)
	}

	return nil
}

func suggestCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	suggestions, err := searcher.Suggest(context.Background(), query)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	for _, suggestion := range suggestions {
		fmt.Println(suggestion)
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	memories := []*core.Memory{
		{
			Title:       "Birthday Party at the Park",
			Description: "Grandma's 80th birthday with the whole family",
			Kind:        core.MemoryKindPhoto,
			Content:     "https://example.com/photos/birthday.jpg",
			Location:    "Riverside Park",
			People:      []string{"Grandma Rose", "Maria", "Theo"},
			Date:        now.AddDate(0, -2, 0),
		},
		{
			Title:    "Beach Trip",
			Kind:     core.MemoryKindText,
			Content:  "A long walk on the sand, we collected shells until sunset.",
			Location: "Sandy Cove",
			People:   []string{"Maria"},
			Date:     now.AddDate(0, -1, -10),
		},
		{
			Title:       "Sunday Lunch",
			Description: "Roast dinner at home",
			Kind:        core.MemoryKindVoice,
			Content:     "https://example.com/audio/lunch.m4a",
			People:      []string{"Maria", "Theo"},
			Date:        now.AddDate(0, 0, -7),
		},
	}
	if _, err := db.MemoryRepository().AddMemories(ctx, memories...); err != nil {
		return fmt.Errorf("failed to seed memories: %w", err)
	}

	locations := []*core.SavedLocation{
		{Name: "Home", Address: "14 Elm Street", IsHome: true},
		{Name: "Riverside Park", Address: "12 River Rd", Notes: "Feed the ducks by the east gate"},
		{Name: "General Hospital", Address: "400 Main St", Notes: "Dr. Patel, third floor"},
	}
	if _, err := db.LocationRepository().AddLocations(ctx, locations...); err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}

	tasks := []*core.Task{
		{Title: "Take morning medication", Description: "With breakfast", Due: now.AddDate(0, 0, 1)},
		{Title: "Call Maria", Description: "She calls every Sunday"},
		{Title: "Water the garden", Done: true},
	}
	if _, err := db.TaskRepository().AddTasks(ctx, tasks...); err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}

	contacts := []*core.Contact{
		{Name: "Maria", Relationship: "Daughter", Mobile: "5551234567", IsEmergency: true},
		{Name: "Theo", Relationship: "Grandson", Email: "theo@example.com"},
		{Name: "Dr. Patel", Relationship: "Doctor", Mobile: "5559876543"},
	}
	if _, err := db.ContactRepository().AddContacts(ctx, contacts...); err != nil {
		return fmt.Errorf("failed to seed contacts: %w", err)
	}

	fmt.Println("Seeded sample journal: 3 memories, 3 locations, 3 tasks, 3 contacts")
	return nil
}
