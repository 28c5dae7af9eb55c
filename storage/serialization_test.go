package storage

import (
	"testing"
	"time"

	"github.com/poiesic/keepsake/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("Grandma Rose")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestMarshalUnmarshalMemory(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	memory := &core.Memory{
		Id:          7,
		Title:       "Beach Trip",
		Description: "Our summer vacation at the coast",
		Kind:        core.MemoryKindPhoto,
		Content:     "https://example.com/photos/beach.jpg",
		Location:    "Brighton Beach",
		People:      []string{"Grandma Rose", "Uncle Theo"},
		Date:        now.AddDate(0, -6, 0),
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	decoded, err := UnmarshalMemory(MarshalMemory(memory))
	require.NoError(t, err)
	assert.Equal(t, memory, decoded)
}

func TestMarshalUnmarshalMemory_ZeroValues(t *testing.T) {
	memory := &core.Memory{
		Title: "Untitled",
		Kind:  core.MemoryKindText,
	}

	decoded, err := UnmarshalMemory(MarshalMemory(memory))
	require.NoError(t, err)
	assert.Equal(t, memory, decoded)
	assert.True(t, decoded.Date.IsZero())
	assert.Nil(t, decoded.People)
}

func TestMarshalUnmarshalLocation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	location := &core.SavedLocation{
		Id:         3,
		Name:       "Home",
		Address:    "12 Rosewood Lane",
		Notes:      "Blue front door",
		Lat:        51.509865,
		Lng:        -0.118092,
		IsHome:     true,
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalLocation(MarshalLocation(location))
	require.NoError(t, err)
	assert.Equal(t, location, decoded)
}

func TestMarshalUnmarshalTask(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	task := &core.Task{
		Id:          9,
		Title:       "Take medication",
		Description: "Every morning with breakfast",
		Done:        true,
		Due:         now.AddDate(0, 0, 1),
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	decoded, err := UnmarshalTask(MarshalTask(task))
	require.NoError(t, err)
	assert.Equal(t, task, decoded)
}

func TestMarshalUnmarshalContact(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	contact := &core.Contact{
		Id:           5,
		Name:         "Maria",
		Relationship: "daughter",
		Mobile:       "5550001234",
		Email:        "maria@example.com",
		IsEmergency:  true,
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	decoded, err := UnmarshalContact(MarshalContact(contact))
	require.NoError(t, err)
	assert.Equal(t, contact, decoded)
}

func TestUnmarshal_Truncated(t *testing.T) {
	memory := &core.Memory{Title: "Beach Trip", Kind: core.MemoryKindText}
	data := MarshalMemory(memory)

	_, err := UnmarshalMemory(data[:len(data)/2])
	assert.Error(t, err)

	_, err = UnmarshalID(nil)
	assert.Error(t, err)
}
