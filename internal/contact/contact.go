// Package contact defines the resolved contact record and the immutable
// store the lookup engine serves from.
package contact

import "time"

// Contact holds one person's attributes extracted from a vCard block.
// Map keys in Mailboxes, Phones and Addresses are normalized type tokens
// (e.g. "CELL", "WORK", "HOME"); later occurrences of the same type
// overwrite earlier ones.
type Contact struct {
	// Name is the display name. A Contact never enters a Store without one.
	Name string

	Nickname string
	Title    string
	Org      string
	Note     string

	// Description accumulates TITLE, NICKNAME and NOTE values in source
	// order. It is used as the suggestion subtitle and the card title row.
	Description string

	Mailboxes map[string]string
	Phones    map[string]string
	Addresses map[string]string

	// Birthday is the parsed BDAY value. The zero time means unset.
	Birthday time.Time
}

// New returns a Contact with initialized maps.
func New(name string) Contact {
	return Contact{
		Name:      name,
		Mailboxes: map[string]string{},
		Phones:    map[string]string{},
		Addresses: map[string]string{},
	}
}

// HasBirthday reports whether a BDAY value was parsed for this contact.
func (c Contact) HasBirthday() bool {
	return !c.Birthday.IsZero()
}
