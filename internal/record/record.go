// Package record implements the in-memory collection pattern shared by every
// domain: an observable store of records, a filter over it, and the paged
// view derived from that filter.
package record

import (
	"strconv"

	"github.com/google/uuid"
)

// Record is one domain entity held in a Store.
type Record interface {
	RecordID() string
	RecordStatus() string
	// DisplayName is the field free-text search matches against.
	DisplayName() string
}

// Typed is implemented by records that carry a type discriminator usable by
// the type filter.
type Typed interface {
	RecordType() string
}

// Searchable is implemented by records whose free-text search spans several
// fields. When present it replaces DisplayName for matching.
type Searchable interface {
	SearchFields() []string
}

// NumericID assigns max(id)+1 over the current records, treating
// non-numeric ids as zero.
func NumericID[T Record](items []T) string {
	var max int64
	for _, it := range items {
		if n, err := strconv.ParseInt(it.RecordID(), 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

// UUID assigns a random UUID.
func UUID[T Record](_ []T) string {
	return uuid.NewString()
}
