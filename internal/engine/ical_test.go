package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
	"github.com/tartampluch/go-ppl/internal/engine"
)

func TestExportBirthdays_ThreeYearWindow(t *testing.T) {
	john := contact.New("John Doe")
	john.Birthday = time.Date(1975, 10, 21, 0, 0, 0, 0, time.UTC)
	sam := contact.New("Sam Selfless") // no birthday

	loader := &engine.Loader{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}
	store := contact.NewStore([]contact.Contact{john, sam})

	data, err := loader.ExportBirthdays(store)
	require.NoError(t, err)

	feed := string(data)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "Birthday: John Doe")
	assert.Equal(t, 3, strings.Count(feed, "BEGIN:VEVENT"),
		"one event per year for previous, current and next year")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20241021")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20251021")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20261021")
	assert.NotContains(t, feed, "Sam Selfless")
}

func TestExportBirthdays_EmptyStoreReturnsStub(t *testing.T) {
	loader := &engine.Loader{Clock: MockClock{CurrentTime: time.Now()}}

	data, err := loader.ExportBirthdays(contact.NewStore(nil))
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestExportBirthdays_StableUIDs(t *testing.T) {
	jane := contact.New("Jane Roe")
	jane.Birthday = time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC)

	loader := &engine.Loader{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}
	store := contact.NewStore([]contact.Contact{jane})

	first, err := loader.ExportBirthdays(store)
	require.NoError(t, err)
	second, err := loader.ExportBirthdays(store)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "the feed is deterministic across reloads")
}
