// Package intern deduplicates the strings backing symbols and keywords
// into small integer IDs, so that two identifiers with the
// same text compare equal by comparing their IDs instead of their bytes.
package intern

import "sync"

// ID is an opaque handle to an interned string. Two IDs compare equal iff
// the strings they were interned from compare equal.
type ID int32

// Store is a bidirectional string<->ID table. The zero value is not usable;
// construct with New.
type Store struct {
	mu     sync.RWMutex
	byText map[string]ID
	byID   []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byText: make(map[string]ID),
	}
}

// Intern returns the ID for s, assigning a new one the first time s is seen.
func (s *Store) Intern(text string) ID {
	s.mu.RLock()
	if id, ok := s.byText[text]; ok {
		s.mu.RUnlock()
		return id
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock: another goroutine may have interned
	// the same text between the unlock above and this lock.
	if id, ok := s.byText[text]; ok {
		return id
	}
	id := ID(len(s.byID))
	s.byID = append(s.byID, text)
	s.byText[text] = id
	return id
}

// Lookup returns the text for id. Panics if id was never returned by Intern
// on this Store — callers only ever hold IDs that came from here.
func (s *Store) Lookup(id ID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Len returns the number of distinct strings interned so far.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
