package verb

import (
	"strings"

	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// Resolve walks the verb's fallback chain against the contact and returns
// the first present, non-empty value. For the card and copy sentinels the
// target is the resolved name. The second return value is false when the
// verb has nothing to act on; callers treat that as "no suggestion", never
// an error.
func Resolve(v Verb, c contact.Contact) (string, bool) {
	switch v.Action {
	case ActionShowCard, ActionCopyRaw:
		if c.Name == "" {
			return "", false
		}
		return c.Name, true
	}

	for _, ref := range v.Chain {
		var m map[string]string
		switch ref.Map {
		case MapPhones:
			m = c.Phones
		case MapMailboxes:
			m = c.Mailboxes
		}
		// An empty value is as unusable as a missing key.
		if value := m[ref.Type]; value != "" {
			return value, true
		}
	}
	return "", false
}

// ResolveTarget is Resolve with the copy-verb contract applied: COPY_RAW
// returns the string last presented to the user, unmodified, falling back
// to the contact name when nothing was presented.
func ResolveTarget(v Verb, c contact.Contact, presented string) (string, bool) {
	if v.Action == ActionCopyRaw && presented != "" {
		return presented, true
	}
	return Resolve(v, c)
}

// FormatCard renders the multi-line label/value table behind the Info
// verb. Absent fields are omitted; phone rows follow the fixed slot order.
// label translates the row captions.
func FormatCard(c contact.Contact, r *Registry, label func(key string) string) string {
	if label == nil {
		label = func(key string) string { return key }
	}

	var b strings.Builder
	b.WriteString(label(config.TKeyLblName))
	b.WriteByte('\t')
	b.WriteString(c.Name)

	if mailVerb, ok := r.Lookup(config.VerbMail); ok {
		if mail, ok := Resolve(mailVerb, c); ok {
			b.WriteByte('\n')
			b.WriteString(label(config.TKeyLblMail))
			b.WriteByte('\t')
			b.WriteString(mail)
		}
	}

	for _, v := range r.verbs {
		if v.Action != ActionCall || len(v.Chain) != 1 {
			continue
		}
		if value := c.Phones[v.Chain[0].Type]; value != "" {
			b.WriteByte('\n')
			b.WriteString(v.Name)
			b.WriteString("#\t")
			b.WriteString(value)
		}
	}

	// MAIN has no dedicated verb but is still a present phone type.
	if value := c.Phones[config.TypeMain]; value != "" {
		b.WriteByte('\n')
		b.WriteString(config.LblMainPhone)
		b.WriteString("#\t")
		b.WriteString(value)
	}

	if c.Description != "" {
		b.WriteByte('\n')
		b.WriteString(label(config.TKeyLblTitle))
		b.WriteByte('\t')
		b.WriteString(c.Description)
	}

	return b.String()
}
