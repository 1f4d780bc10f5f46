package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/parser"
)

// fullCard mirrors the shape of a real address-book export: multi-valued
// TYPE parameters, escaped ORG, typed phones and a basic BDAY.
const fullCard = `BEGIN:VCARD
VERSION:3.0
FN:John Doe
N:Doe;John;;;
NICKNAME:Johnny
TITLE:Manager
ORG:Acme\, Inc.;North Division;Sales
NOTE:Gender: Male
BDAY:19751021
ADR;TYPE=WORK:;;13 Eckers;Tinan;;;Spain
TEL;TYPE=CELL:+952 12-126-7463
TEL;TYPE=WORK:1-700-701-011
TEL;TYPE=HOME:1-700-701-019
TEL;TYPE=MAIN:04-631-6124
EMAIL;TYPE=INTERNET;TYPE=HOME:john.doe@gmail.com
EMAIL;TYPE=INTERNET;TYPE=WORK:john.doe@acme.com
END:VCARD`

func TestParse_FullCard(t *testing.T) {
	contacts, err := parser.Parse(strings.NewReader(fullCard))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "Johnny", c.Nickname)
	assert.Equal(t, "Manager", c.Title)
	assert.Equal(t, "Gender: Male", c.Note)
	assert.Equal(t, "Acme, Inc.", c.Org, "ORG keeps only the organization name, unescaped")

	// Phones keyed by normalized type slot
	assert.Equal(t, "+952 12-126-7463", c.Phones[config.TypeCell])
	assert.Equal(t, "1-700-701-011", c.Phones[config.TypeWork])
	assert.Equal(t, "1-700-701-019", c.Phones[config.TypeHome])
	assert.Equal(t, "04-631-6124", c.Phones[config.TypeMain])

	// Multi-valued TYPE: the last token wins
	assert.Equal(t, "john.doe@gmail.com", c.Mailboxes[config.TypeHome])
	assert.Equal(t, "john.doe@acme.com", c.Mailboxes[config.TypeWork])

	assert.Equal(t, "13 Eckers, Tinan, Spain", c.Addresses[config.TypeWork])

	assert.True(t, c.HasBirthday())
	assert.Equal(t, time.Date(1975, 10, 21, 0, 0, 0, 0, time.UTC), c.Birthday)
}

func TestParse_InternetMailboxAliasedToHome(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
FN:Jane Roe
EMAIL;TYPE=INTERNET:jane@x.com
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "jane@x.com", c.Mailboxes[config.TypeHome], "lone INTERNET mailbox is re-keyed to HOME")
	assert.NotContains(t, c.Mailboxes, config.TypeInternet, "re-key, not duplicate")
}

func TestParse_InternetMailboxKeptWhenHomeExists(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
FN:Jane Roe
EMAIL;TYPE=HOME:home@x.com
EMAIL;TYPE=INTERNET:net@x.com
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "home@x.com", c.Mailboxes[config.TypeHome])
	assert.Equal(t, "net@x.com", c.Mailboxes[config.TypeInternet])
}

func TestParse_StructuredNameFallback(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
N:Doe;John;Quincy;Dr.;Jr.
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Dr. John Quincy Doe Jr.", contacts[0].Name)
}

func TestParse_NamelessBlockDropped(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
TEL;TYPE=CELL:555-0100
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Kept Contact
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1, "a block without FN or N yields no record")
	assert.Equal(t, "Kept Contact", contacts[0].Name)
}

func TestParse_PhoneWithoutTypeLandsInOther(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
FN:Plain Phone
TEL:555-0100
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "555-0100", contacts[0].Phones[config.TypeOther])
}

func TestParse_UnparseableBirthdayLeftUnset(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
FN:No Date
BDAY:sometime in spring
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.False(t, contacts[0].HasBirthday())
}

func TestParse_AdditiveDescription(t *testing.T) {
	card := `BEGIN:VCARD
VERSION:3.0
FN:Two Titles
TITLE:Manager
TITLE:Chief Sparrow
END:VCARD`

	contacts, err := parser.Parse(strings.NewReader(card))
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "Manager", c.Title, "first TITLE wins for the dedicated field")
	assert.Equal(t, "ManagerChief Sparrow", c.Description, "description accumulates every occurrence")
}

func TestParse_SourceOrderPreserved(t *testing.T) {
	var b strings.Builder
	names := []string{"Alpha One", "Beta Two", "Gamma Three"}
	for _, n := range names {
		b.WriteString("BEGIN:VCARD\nVERSION:3.0\nFN:" + n + "\nEND:VCARD\n")
	}

	contacts, err := parser.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, contacts, len(names))
	for i, n := range names {
		assert.Equal(t, n, contacts[i].Name)
	}
}
