package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// ExportBirthdays renders the store's birthdays as an iCalendar feed.
// Events are generated for the previous, current and next year so calendar
// clients can scroll without an immediate re-sync. Contacts without a
// parsed birthday are ignored.
func (l *Loader) ExportBirthdays(store *contact.Store) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Birthdays are local calendar dates; only the DTSTAMP is UTC.
	now := l.now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	count := 0
	for _, c := range store.All() {
		if !c.HasBirthday() {
			continue
		}
		count++

		uid := birthdayUID(c.Name, c.Birthday)
		for _, year := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, year, config.ICalDomain))
			event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FallbackSummary, c.Name))

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(time.Date(year, c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, now.Location()))
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A valid but empty VCALENDAR keeps clients from flagging the feed.
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, count,
	)
	return buf.Bytes(), nil
}

// birthdayUID derives a deterministic event UID base so feeds stay stable
// across reloads.
func birthdayUID(name string, birthday time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birthday.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
