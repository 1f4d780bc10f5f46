package contact

import (
	"fmt"

	"github.com/tartampluch/go-ppl/internal/config"
)

// Store is the ordered collection of contacts for one load cycle.
// It is built wholesale by the engine and never mutated afterwards; a
// reload produces a new Store and the caller swaps the reference it holds.
type Store struct {
	contacts []Contact
}

// NewStore builds a Store over the given contacts, preserving order.
// The slice is not copied; the caller hands over ownership.
func NewStore(contacts []Contact) *Store {
	return &Store{contacts: contacts}
}

// Len returns the number of contacts in the store.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.contacts)
}

// At returns the contact at index i.
func (s *Store) At(i int) (Contact, error) {
	if s == nil || i < 0 || i >= len(s.contacts) {
		return Contact{}, fmt.Errorf("%s: %d", config.ErrContactIndex, i)
	}
	return s.contacts[i], nil
}

// All returns the contacts in store order. Callers must not mutate the
// returned slice.
func (s *Store) All() []Contact {
	if s == nil {
		return nil
	}
	return s.contacts
}
