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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMemory indicates a Memory failed validation.
	ErrInvalidMemory = errors.New("invalid memory")

	// ErrInvalidLocation indicates a SavedLocation failed validation.
	ErrInvalidLocation = errors.New("invalid saved location")

	// ErrInvalidTask indicates a Task failed validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidMemoryKind indicates an invalid MemoryKind value.
	ErrInvalidMemoryKind = errors.New("invalid memory kind")

	// ErrInvalidMobile indicates a mobile number is not ten digits.
	ErrInvalidMobile = errors.New("mobile number must be 10 digits")
)
