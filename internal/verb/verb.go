// Package verb defines the action catalog and resolves verb × contact
// pairs to concrete target values.
package verb

import (
	"github.com/tartampluch/go-ppl/internal/config"
)

// ActionKind is the closed set of things a verb can do with its resolved
// value.
type ActionKind int

const (
	// ActionCall dials the resolved phone number through a protocol handler.
	ActionCall ActionKind = iota
	// ActionMail opens the resolved address through a mail handler.
	ActionMail
	// ActionShowCard renders the whole contact as a label/value table.
	ActionShowCard
	// ActionCopyRaw copies the last presented value verbatim.
	ActionCopyRaw
)

// String returns the lowercase action name used in logs.
func (k ActionKind) String() string {
	switch k {
	case ActionCall:
		return "call"
	case ActionMail:
		return "mail"
	case ActionShowCard:
		return "card"
	case ActionCopyRaw:
		return "copy"
	default:
		return "unknown"
	}
}

// MapKind selects which typed mapping of the contact a FieldRef reads.
type MapKind int

const (
	// MapPhones reads Contact.Phones.
	MapPhones MapKind = iota
	// MapMailboxes reads Contact.Mailboxes.
	MapMailboxes
)

// FieldRef is one step of a verb's fallback chain: a typed lookup into one
// of the contact's mappings.
type FieldRef struct {
	Map  MapKind
	Type string
}

// Verb is a named action bound to a field fallback chain. An empty Chain
// means the verb operates on the resolved name (Info) or the presented
// value (Copy).
type Verb struct {
	Name        string
	Description string
	Chain       []FieldRef
	Action      ActionKind
}

// Registry is the immutable, ordered verb catalog, fixed at process start.
type Registry struct {
	verbs  []Verb
	byName map[string]Verb
}

// NewRegistry builds the verb catalog. describe translates a message key
// into a human-readable description; nil keeps the raw keys, which is
// acceptable for tests.
func NewRegistry(describe func(key string) string) *Registry {
	if describe == nil {
		describe = func(key string) string { return key }
	}

	verbs := []Verb{
		{
			Name:        config.VerbCall,
			Description: describe(config.TKeyVerbCall),
			Action:      ActionCall,
			// The generic dial verb degrades gracefully across every slot.
			Chain: []FieldRef{
				{MapPhones, config.TypeWork},
				{MapPhones, config.TypeCell},
				{MapPhones, config.TypeHome},
				{MapPhones, config.TypeMain},
			},
		},
		{
			Name:        config.VerbInfo,
			Description: describe(config.TKeyVerbInfo),
			Action:      ActionShowCard,
		},
		{
			Name:        config.VerbMail,
			Description: describe(config.TKeyVerbMail),
			Action:      ActionMail,
			Chain: []FieldRef{
				{MapMailboxes, config.TypeWork},
				{MapMailboxes, config.TypeHome},
				{MapMailboxes, config.TypeOther},
			},
		},
		// Type-specific dial verbs have no fallback: they must never
		// silently substitute another number.
		{
			Name:        config.VerbCell,
			Description: describe(config.TKeyVerbCell),
			Action:      ActionCall,
			Chain:       []FieldRef{{MapPhones, config.TypeCell}},
		},
		{
			Name:        config.VerbHome,
			Description: describe(config.TKeyVerbHome),
			Action:      ActionCall,
			Chain:       []FieldRef{{MapPhones, config.TypeHome}},
		},
		{
			Name:        config.VerbWork,
			Description: describe(config.TKeyVerbWork),
			Action:      ActionCall,
			Chain:       []FieldRef{{MapPhones, config.TypeWork}},
		},
		{
			Name:        config.VerbCopy,
			Description: describe(config.TKeyVerbCopy),
			Action:      ActionCopyRaw,
		},
	}

	byName := make(map[string]Verb, len(verbs))
	for _, v := range verbs {
		byName[v.Name] = v
	}
	return &Registry{verbs: verbs, byName: byName}
}

// Verbs returns the catalog in declaration order.
func (r *Registry) Verbs() []Verb {
	return r.verbs
}

// Lookup finds a verb by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (Verb, bool) {
	v, ok := r.byName[name]
	return v, ok
}
