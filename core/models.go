package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MemoryKind identifies how a memory was captured.
type MemoryKind int

const (
	// MemoryKindPhoto is a photo memory; Content holds the image URL.
	MemoryKindPhoto MemoryKind = iota + 1
	// MemoryKindVoice is a voice recording; Content holds the audio URL.
	MemoryKindVoice
	// MemoryKindText is a written memory; Content holds the text body.
	MemoryKindText
)

// String returns the lowercase name of the kind, or "unknown".
func (k MemoryKind) String() string {
	switch k {
	case MemoryKindPhoto:
		return "photo"
	case MemoryKindVoice:
		return "voice"
	case MemoryKindText:
		return "text"
	}
	return "unknown"
}

// Memory is a journal entry recorded by or for a patient.
type Memory struct {
	Id          ID
	Title       string
	Description string
	Kind        MemoryKind
	Content     string    // Text body, or media URL for photo/voice memories
	Location    string    // Free-form place name
	People      []string  // Names of people who are part of the memory
	Date        time.Time // When the remembered event happened
	InsertedAt  time.Time // When the record was inserted into the database
	UpdatedAt   time.Time // When the record was last updated
}

// SavedLocation is a place the patient should be able to find again.
type SavedLocation struct {
	Id         ID
	Name       string
	Address    string
	Notes      string
	Lat        float64
	Lng        float64
	IsHome     bool
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Task is a reminder item on the patient's list.
type Task struct {
	Id          ID
	Title       string
	Description string
	Done        bool
	Due         time.Time
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Contact is a family member or emergency contact linked to the patient.
type Contact struct {
	Id           ID
	Name         string
	Relationship string
	Mobile       string
	Email        string
	IsEmergency  bool
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// ResultType tags which collection a search result came from.
// It participates in ranking only as a tie-breaker.
type ResultType string

const (
	ResultTypeMemory   ResultType = "memory"
	ResultTypeLocation ResultType = "location"
	ResultTypeTask     ResultType = "task"
	ResultTypePerson   ResultType = "person"
)

// SearchResult is a transient per-query view of a matched record.
// It is produced fresh on every search call and never persisted.
type SearchResult struct {
	Id       ID
	Type     ResultType
	Title    string
	Subtitle string
	Date     time.Time // Zero when the source record carries no date
	Score    float64   // Relevance in [0,1]
}
