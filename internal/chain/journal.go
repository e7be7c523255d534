package chain

import (
	"sync"

	"github.com/mfulz/actionchain/protocol"
)

// Journal is a bounded, concurrency-safe record of handled actions.
type Journal struct {
	mu      sync.Mutex
	size    int
	entries []protocol.JournalEntry
}

// NewJournal creates a journal keeping at most size entries.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = 1
	}
	return &Journal{size: size}
}

// Record appends e, dropping the oldest entry when full.
func (j *Journal) Record(e protocol.JournalEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == j.size {
		copy(j.entries, j.entries[1:])
		j.entries = j.entries[:len(j.entries)-1]
	}
	j.entries = append(j.entries, e)
}

// Entries returns up to the last limit entries, oldest first. A limit of
// zero or less returns everything.
func (j *Journal) Entries(limit int) []protocol.JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	start := 0
	if limit > 0 && limit < len(j.entries) {
		start = len(j.entries) - limit
	}
	out := make([]protocol.JournalEntry, len(j.entries)-start)
	copy(out, j.entries[start:])
	return out
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
