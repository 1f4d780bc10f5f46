package parser

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// ParseSimple reads vCard blocks with a tolerant line scanner instead of a
// full grammar. It only understands the properties the verb set consumes,
// routes phone numbers by type suffix and concatenates TITLE, NICKNAME and
// NOTE into the description. Anything it does not recognize is skipped.
func ParseSimple(r io.Reader) ([]contact.Contact, error) {
	scanner := bufio.NewScanner(r)
	stats := struct{ total, kept, dropped int }{}
	var contacts []contact.Contact

	inCard := false
	var acc contact.Contact

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if !inCard {
			if line == config.VCardBegin {
				inCard = true
				acc = contact.New("")
			}
			continue
		}

		if strings.HasPrefix(line, config.VCardEnd) {
			inCard = false
			stats.total++
			if acc.Name == "" {
				slog.Debug(config.MsgDroppedRecord,
					config.LogKeyComponent, config.CompParser,
				)
				stats.dropped++
				continue
			}
			stats.kept++
			aliasInternetMailbox(acc.Mailboxes)
			contacts = append(contacts, acc)
			continue
		}

		if line == "" {
			continue
		}

		// Values may contain colons (URLs, times), so the value starts
		// after the last one. The property and its parameters always end at
		// the first colon.
		sep := strings.LastIndex(line, config.PropertySeparator)
		if sep < 0 {
			slog.Warn(config.MsgSkippedLine,
				config.LogKeyComponent, config.CompParser,
				config.LogKeyLine, line,
			)
			continue
		}
		property := line[:sep]
		value := Unescape(line[sep+1:])
		if cut := strings.Index(property, config.PropertySeparator); cut >= 0 {
			property = property[:cut]
		}

		switch {
		case property == config.VCardFN:
			acc.Name = value
		case strings.HasPrefix(property, config.VCardTel+config.ParamSeparator):
			if slot, ok := phoneSlotSuffix(property); ok {
				acc.Phones[slot] = value
			}
		case property == config.VCardEmail,
			strings.HasPrefix(property, config.VCardEmail+config.ParamSeparator):
			acc.Mailboxes[mailboxType(property)] = value
		case strings.HasPrefix(property, config.VCardTitle),
			strings.HasPrefix(property, config.VCardNickname),
			strings.HasPrefix(property, config.VCardNote):
			acc.Description += value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logStats(stats.total, stats.kept, stats.dropped)
	return contacts, nil
}

// phoneSlotSuffix routes a TEL property to a normalized slot by inspecting
// the end of its parameter string (e.g. "TEL;TYPE=CELL" ends with "CELL").
func phoneSlotSuffix(property string) (string, bool) {
	for _, slot := range config.PhoneSlots {
		if strings.HasSuffix(property, slot) {
			return slot, true
		}
	}
	return "", false
}

// mailboxType picks the mailbox slot for an EMAIL property: HOME or WORK
// when qualified, INTERNET otherwise. With several qualifiers the last one
// wins.
func mailboxType(property string) string {
	typ := config.TypeInternet
	for _, token := range strings.Split(property, config.ParamSeparator) {
		token = strings.ToUpper(token)
		switch {
		case strings.HasSuffix(token, config.TypeHome):
			typ = config.TypeHome
		case strings.HasSuffix(token, config.TypeWork):
			typ = config.TypeWork
		}
	}
	return typ
}
