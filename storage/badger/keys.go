package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/keepsake/core"
)

// Key prefixes for different data types
const (
	memoryPrefix     = "memrec"
	memoryDatePrefix = "memrecd"
	memoryIDSeq      = "memrecseq"
	locationPrefix   = "locrec"
	locationIDSeq    = "locrecseq"
	taskPrefix       = "taskrec"
	taskIDSeq        = "taskrecseq"
	contactPrefix    = "ctcrec"
	contactIDSeq     = "ctcrecseq"
)

// makeRecordKey generates a primary key for a record by prefix and ID.
func makeRecordKey(prefix string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", prefix, id))
}

// makeMemoryDateKey generates a composite key for the memory date index.
// Format: prefix:date:id
func makeMemoryDateKey(date time.Time, id core.ID) []byte {
	prefix := memoryDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for date + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(date.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMemoryDateKey generates a partial key for date range queries.
// Format: prefix:date
func makePartialMemoryDateKey(date time.Time) []byte {
	prefix := memoryDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for date
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(date.UnixMicro()))
	return buf
}
