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


package storage

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/keepsake/core"
)

// Records are encoded in MUS style: fields in struct order, integers as
// varints, strings length-prefixed, times as unix microseconds. The schemas
// are small and flat, so the serializers are written by hand on the mus-go
// varint primitives instead of generated.

// zeroUnixMicro is time.Time{}.UnixMicro(); used to round-trip zero times.
const zeroUnixMicro = -62135596800000000

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.SizeUint64(uint64(id)))
	varint.MarshalUint64(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.UnmarshalUint64(data)
	return core.ID(v), err
}

// MarshalMemory serializes a Memory to bytes.
func MarshalMemory(memory *core.Memory) []byte {
	size := varint.SizeUint64(uint64(memory.Id)) +
		sizeString(memory.Title) +
		sizeString(memory.Description) +
		varint.SizeInt(int(memory.Kind)) +
		sizeString(memory.Content) +
		sizeString(memory.Location) +
		sizeStringSlice(memory.People) +
		sizeTime(memory.Date) +
		sizeTime(memory.InsertedAt) +
		sizeTime(memory.UpdatedAt)

	buf := make([]byte, size)
	n := varint.MarshalUint64(uint64(memory.Id), buf)
	n += marshalString(memory.Title, buf[n:])
	n += marshalString(memory.Description, buf[n:])
	n += varint.MarshalInt(int(memory.Kind), buf[n:])
	n += marshalString(memory.Content, buf[n:])
	n += marshalString(memory.Location, buf[n:])
	n += marshalStringSlice(memory.People, buf[n:])
	n += marshalTime(memory.Date, buf[n:])
	n += marshalTime(memory.InsertedAt, buf[n:])
	marshalTime(memory.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalMemory deserializes a Memory from bytes.
func UnmarshalMemory(data []byte) (*core.Memory, error) {
	var memory core.Memory
	id, n, err := varint.UnmarshalUint64(data)
	if err != nil {
		return nil, err
	}
	memory.Id = core.ID(id)

	if memory.Title, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if memory.Description, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	kind, m, err := varint.UnmarshalInt(data[n:])
	if err != nil {
		return nil, err
	}
	memory.Kind = core.MemoryKind(kind)
	n += m

	if memory.Content, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if memory.Location, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if memory.People, n, err = unmarshalStringSlice(data, n); err != nil {
		return nil, err
	}
	if memory.Date, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if memory.InsertedAt, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if memory.UpdatedAt, _, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	return &memory, nil
}

// MarshalLocation serializes a SavedLocation to bytes.
func MarshalLocation(location *core.SavedLocation) []byte {
	size := varint.SizeUint64(uint64(location.Id)) +
		sizeString(location.Name) +
		sizeString(location.Address) +
		sizeString(location.Notes) +
		8 + 8 + 1 + // Lat, Lng, IsHome
		sizeTime(location.InsertedAt) +
		sizeTime(location.UpdatedAt)

	buf := make([]byte, size)
	n := varint.MarshalUint64(uint64(location.Id), buf)
	n += marshalString(location.Name, buf[n:])
	n += marshalString(location.Address, buf[n:])
	n += marshalString(location.Notes, buf[n:])
	n += marshalFloat64(location.Lat, buf[n:])
	n += marshalFloat64(location.Lng, buf[n:])
	n += marshalBool(location.IsHome, buf[n:])
	n += marshalTime(location.InsertedAt, buf[n:])
	marshalTime(location.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalLocation deserializes a SavedLocation from bytes.
func UnmarshalLocation(data []byte) (*core.SavedLocation, error) {
	var location core.SavedLocation
	id, n, err := varint.UnmarshalUint64(data)
	if err != nil {
		return nil, err
	}
	location.Id = core.ID(id)

	if location.Name, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if location.Address, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if location.Notes, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if location.Lat, n, err = unmarshalFloat64(data, n); err != nil {
		return nil, err
	}
	if location.Lng, n, err = unmarshalFloat64(data, n); err != nil {
		return nil, err
	}
	if location.IsHome, n, err = unmarshalBool(data, n); err != nil {
		return nil, err
	}
	if location.InsertedAt, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if location.UpdatedAt, _, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	return &location, nil
}

// MarshalTask serializes a Task to bytes.
func MarshalTask(task *core.Task) []byte {
	size := varint.SizeUint64(uint64(task.Id)) +
		sizeString(task.Title) +
		sizeString(task.Description) +
		1 + // Done
		sizeTime(task.Due) +
		sizeTime(task.InsertedAt) +
		sizeTime(task.UpdatedAt)

	buf := make([]byte, size)
	n := varint.MarshalUint64(uint64(task.Id), buf)
	n += marshalString(task.Title, buf[n:])
	n += marshalString(task.Description, buf[n:])
	n += marshalBool(task.Done, buf[n:])
	n += marshalTime(task.Due, buf[n:])
	n += marshalTime(task.InsertedAt, buf[n:])
	marshalTime(task.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalTask deserializes a Task from bytes.
func UnmarshalTask(data []byte) (*core.Task, error) {
	var task core.Task
	id, n, err := varint.UnmarshalUint64(data)
	if err != nil {
		return nil, err
	}
	task.Id = core.ID(id)

	if task.Title, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if task.Description, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if task.Done, n, err = unmarshalBool(data, n); err != nil {
		return nil, err
	}
	if task.Due, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if task.InsertedAt, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if task.UpdatedAt, _, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	return &task, nil
}

// MarshalContact serializes a Contact to bytes.
func MarshalContact(contact *core.Contact) []byte {
	size := varint.SizeUint64(uint64(contact.Id)) +
		sizeString(contact.Name) +
		sizeString(contact.Relationship) +
		sizeString(contact.Mobile) +
		sizeString(contact.Email) +
		1 + // IsEmergency
		sizeTime(contact.InsertedAt) +
		sizeTime(contact.UpdatedAt)

	buf := make([]byte, size)
	n := varint.MarshalUint64(uint64(contact.Id), buf)
	n += marshalString(contact.Name, buf[n:])
	n += marshalString(contact.Relationship, buf[n:])
	n += marshalString(contact.Mobile, buf[n:])
	n += marshalString(contact.Email, buf[n:])
	n += marshalBool(contact.IsEmergency, buf[n:])
	n += marshalTime(contact.InsertedAt, buf[n:])
	marshalTime(contact.UpdatedAt, buf[n:])
	return buf
}

// UnmarshalContact deserializes a Contact from bytes.
func UnmarshalContact(data []byte) (*core.Contact, error) {
	var contact core.Contact
	id, n, err := varint.UnmarshalUint64(data)
	if err != nil {
		return nil, err
	}
	contact.Id = core.ID(id)

	if contact.Name, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if contact.Relationship, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if contact.Mobile, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if contact.Email, n, err = unmarshalString(data, n); err != nil {
		return nil, err
	}
	if contact.IsEmergency, n, err = unmarshalBool(data, n); err != nil {
		return nil, err
	}
	if contact.InsertedAt, n, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	if contact.UpdatedAt, _, err = unmarshalTime(data, n); err != nil {
		return nil, err
	}
	return &contact, nil
}

func sizeString(v string) int {
	return varint.SizeInt(len(v)) + len(v)
}

func marshalString(v string, buf []byte) int {
	n := varint.MarshalInt(len(v), buf)
	n += copy(buf[n:], v)
	return n
}

// unmarshalString reads a length-prefixed string at offset and returns the
// value and the new offset.
func unmarshalString(data []byte, offset int) (string, int, error) {
	length, n, err := varint.UnmarshalInt(data[offset:])
	if err != nil {
		return "", offset, err
	}
	offset += n
	if length < 0 || offset+length > len(data) {
		return "", offset, ErrTruncatedData
	}
	return string(data[offset : offset+length]), offset + length, nil
}

func sizeStringSlice(v []string) int {
	size := varint.SizeInt(len(v))
	for _, s := range v {
		size += sizeString(s)
	}
	return size
}

func marshalStringSlice(v []string, buf []byte) int {
	n := varint.MarshalInt(len(v), buf)
	for _, s := range v {
		n += marshalString(s, buf[n:])
	}
	return n
}

func unmarshalStringSlice(data []byte, offset int) ([]string, int, error) {
	count, n, err := varint.UnmarshalInt(data[offset:])
	if err != nil {
		return nil, offset, err
	}
	offset += n
	if count < 0 || count > len(data) {
		return nil, offset, ErrTruncatedData
	}
	if count == 0 {
		return nil, offset, nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var s string
		s, offset, err = unmarshalString(data, offset)
		if err != nil {
			return nil, offset, err
		}
		result = append(result, s)
	}
	return result, offset, nil
}

func sizeTime(t time.Time) int {
	return varint.SizeInt64(t.UnixMicro())
}

func marshalTime(t time.Time, buf []byte) int {
	return varint.MarshalInt64(t.UnixMicro(), buf)
}

func unmarshalTime(data []byte, offset int) (time.Time, int, error) {
	usec, n, err := varint.UnmarshalInt64(data[offset:])
	if err != nil {
		return time.Time{}, offset, err
	}
	if usec == zeroUnixMicro {
		return time.Time{}, offset + n, nil
	}
	return time.UnixMicro(usec).UTC(), offset + n, nil
}

func marshalFloat64(v float64, buf []byte) int {
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return 8
}

func unmarshalFloat64(data []byte, offset int) (float64, int, error) {
	if offset+8 > len(data) {
		return 0, offset, ErrTruncatedData
	}
	bits := binary.LittleEndian.Uint64(data[offset:])
	return math.Float64frombits(bits), offset + 8, nil
}

func marshalBool(v bool, buf []byte) int {
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	return 1
}

func unmarshalBool(data []byte, offset int) (bool, int, error) {
	if offset >= len(data) {
		return false, offset, ErrTruncatedData
	}
	return data[offset] != 0, offset + 1, nil
}
