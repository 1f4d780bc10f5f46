// Package parser turns raw vCard text into contact records.
//
// Two strategies are provided. Parse decodes through a full vCard grammar
// and understands parameter lists, structured N values and multi-valued
// properties. ParseSimple is a tolerant line scanner for exports that
// predate or ignore the grammar. Both preserve source order and drop
// blocks that yield no resolvable name.
package parser

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// Parse reads every vCard block from r using the structured decoder.
// Malformed cards are skipped with a warning; the stream keeps going so a
// single bad block never sinks the file.
func Parse(r io.Reader) ([]contact.Contact, error) {
	decoder := vcard.NewDecoder(r)
	stats := struct{ total, kept, dropped int }{}
	var contacts []contact.Contact

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompParser,
				config.LogKeyError, err,
			)
			stats.dropped++
			continue
		}

		stats.total++
		c, ok := makeContact(card)
		if !ok {
			slog.Debug(config.MsgDroppedRecord,
				config.LogKeyComponent, config.CompParser,
			)
			stats.dropped++
			continue
		}
		stats.kept++
		contacts = append(contacts, c)
	}

	logStats(stats.total, stats.kept, stats.dropped)
	return contacts, nil
}

// makeContact extracts one contact record from a decoded card. The second
// return value is false when no name could be resolved.
func makeContact(card vcard.Card) (contact.Contact, bool) {
	name := resolveName(card)
	if name == "" {
		return contact.Contact{}, false
	}

	c := contact.New(name)

	for _, f := range card[config.VCardTel] {
		c.Phones[lastTypeToken(f.Params)] = Unescape(f.Value)
	}

	for _, f := range card[config.VCardEmail] {
		c.Mailboxes[lastTypeToken(f.Params)] = Unescape(f.Value)
	}
	aliasInternetMailbox(c.Mailboxes)

	for _, f := range card[config.VCardAdr] {
		c.Addresses[lastTypeToken(f.Params)] = formatAddress(f.Value)
	}

	for _, f := range card[config.VCardTitle] {
		v := Unescape(f.Value)
		if c.Title == "" {
			c.Title = v
		}
		c.Description += v
	}
	for _, f := range card[config.VCardNickname] {
		v := Unescape(f.Value)
		if c.Nickname == "" {
			c.Nickname = v
		}
		c.Description += v
	}
	for _, f := range card[config.VCardNote] {
		v := Unescape(f.Value)
		if c.Note == "" {
			c.Note = v
		}
		c.Description += v
	}

	if f := card.Get(config.VCardOrg); f != nil {
		// ORG is compound: organization;unit;sub-unit. Only the organization
		// name feeds the record.
		c.Org = Unescape(splitStructured(f.Value, ';')[0])
	}

	if f := card.Get(config.VCardBDAY); f != nil && f.Value != "" {
		t, err := parseDate(f.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompParser,
				config.LogKeyValue, f.Value,
			)
		} else {
			c.Birthday = t
		}
	}

	return c, true
}

// resolveName implements the FN > structured N fallback. N components are
// reordered to reading order: prefix given additional family suffix.
func resolveName(card vcard.Card) string {
	if f := card.Get(config.VCardFN); f != nil {
		if name := strings.TrimSpace(Unescape(f.Value)); name != "" {
			return name
		}
	}

	f := card.Get(config.VCardN)
	if f == nil {
		return ""
	}
	// N order on the wire: family;given;additional;prefix;suffix
	parts := splitStructured(f.Value, ';')
	get := func(i int) string {
		if i < len(parts) {
			return Unescape(parts[i])
		}
		return ""
	}
	return joinNameParts(get(3), get(1), get(2), get(0), get(4))
}

// lastTypeToken picks the authoritative TYPE token for a property: the last
// one wins, uppercased. Properties without a TYPE parameter land in the
// OTHER slot.
func lastTypeToken(params vcard.Params) string {
	values := params[config.VCardParamType]
	if len(values) == 0 {
		return config.TypeOther
	}
	last := values[len(values)-1]
	// vCard 4.0 allows comma-joined lists inside a single parameter value.
	if i := strings.LastIndex(last, ","); i >= 0 {
		last = last[i+1:]
	}
	last = strings.ToUpper(strings.TrimSpace(last))
	if last == "" {
		return config.TypeOther
	}
	return last
}

// aliasInternetMailbox re-keys a lone INTERNET mailbox to HOME. Exports
// that only tag addresses as INTERNET would otherwise never satisfy the
// Mail verb's typed fallback chain.
func aliasInternetMailbox(mailboxes map[string]string) {
	v, hasInternet := mailboxes[config.TypeInternet]
	if !hasInternet {
		return
	}
	if _, hasHome := mailboxes[config.TypeHome]; hasHome {
		return
	}
	mailboxes[config.TypeHome] = v
	delete(mailboxes, config.TypeInternet)
}

// formatAddress flattens a compound ADR value into a single display string.
func formatAddress(value string) string {
	var kept []string
	for _, p := range splitStructured(value, ';') {
		p = strings.TrimSpace(Unescape(p))
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// logStats reports the per-stream extraction counters.
func logStats(total, kept, dropped int) {
	slog.Info(config.MsgLoadFinished,
		config.LogKeyComponent, config.CompParser,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyKept, kept),
			slog.Int(config.LogKeyDropped, dropped),
		),
	)
}
