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


package core

import (
	"fmt"
	"time"
)

// ValidateMemory validates a Memory according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Kind must be a known MemoryKind
//   - InsertedAt must not be in the future
//
// NOT validated:
//   - Date (patients record events from any point in their past)
//   - ID (0 is valid from database sequences)
func ValidateMemory(memory *Memory) error {
	if memory == nil {
		return fmt.Errorf("%w: memory is nil", ErrInvalidMemory)
	}

	if memory.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, ErrEmptyTitle)
	}

	if err := ValidateMemoryKind(memory.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, err)
	}

	if !memory.InsertedAt.IsZero() && !IsValidTimestamp(memory.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSavedLocation validates a SavedLocation according to domain rules.
func ValidateSavedLocation(location *SavedLocation) error {
	if location == nil {
		return fmt.Errorf("%w: location is nil", ErrInvalidLocation)
	}

	if location.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLocation, ErrEmptyName)
	}

	return nil
}

// ValidateTask validates a Task according to domain rules.
func ValidateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	if task.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTitle)
	}

	return nil
}

// ValidateContact validates a Contact according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Mobile, when set, must be exactly ten digits
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}

	if contact.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}

	if contact.Mobile != "" && !IsValidMobile(contact.Mobile) {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrInvalidMobile)
	}

	return nil
}

// ValidateMemoryKind validates that a MemoryKind has a valid value.
func ValidateMemoryKind(kind MemoryKind) error {
	if kind != MemoryKindPhoto && kind != MemoryKindVoice && kind != MemoryKindText {
		return fmt.Errorf("%w: value %d", ErrInvalidMemoryKind, kind)
	}
	return nil
}

// IsValidMobile checks if a mobile number is exactly ten digits.
func IsValidMobile(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
