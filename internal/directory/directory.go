// Package directory holds the in-memory customer-id lookup table.
//
// The table is an immutable snapshot swapped atomically on reload, so
// concurrent readers never block and never observe a partial load.
package directory

import (
	"sync/atomic"

	"github.com/samchinmaya/querydesk/internal/domain"
)

// Directory maps customer ids to client records.
type Directory struct {
	snapshot atomic.Pointer[map[string]domain.ClientRecord]
}

// New builds a directory from the given records. When the same customer id
// appears more than once, the first occurrence wins.
func New(records []domain.ClientRecord) *Directory {
	d := &Directory{}
	d.Replace(records)
	return d
}

// Lookup returns the record for a customer id. Absence is a normal outcome,
// reported through the boolean, never an error. Matching is exact and
// case-sensitive.
func (d *Directory) Lookup(customerID string) (domain.ClientRecord, bool) {
	snap := *d.snapshot.Load()
	rec, ok := snap[customerID]
	return rec, ok
}

// Replace swaps the full snapshot for a freshly loaded record set.
func (d *Directory) Replace(records []domain.ClientRecord) {
	snap := make(map[string]domain.ClientRecord, len(records))
	for _, rec := range records {
		if _, exists := snap[rec.CustomerID]; exists {
			continue
		}
		snap[rec.CustomerID] = rec
	}
	d.snapshot.Store(&snap)
}

// Len returns the number of distinct customer ids in the current snapshot.
func (d *Directory) Len() int {
	return len(*d.snapshot.Load())
}
