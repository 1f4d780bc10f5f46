package verb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/verb"
)

func TestNewRegistry_CatalogOrder(t *testing.T) {
	r := verb.NewRegistry(nil)

	var names []string
	for _, v := range r.Verbs() {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{
		config.VerbCall,
		config.VerbInfo,
		config.VerbMail,
		config.VerbCell,
		config.VerbHome,
		config.VerbWork,
		config.VerbCopy,
	}, names)
}

func TestLookup_CaseSensitive(t *testing.T) {
	r := verb.NewRegistry(nil)

	v, ok := r.Lookup(config.VerbCall)
	require.True(t, ok)
	assert.Equal(t, config.VerbCall, v.Name)
	assert.Equal(t, verb.ActionCall, v.Action)

	_, ok = r.Lookup("call")
	assert.False(t, ok, "verb names match exactly, no case folding")

	_, ok = r.Lookup("Fax")
	assert.False(t, ok)
}

func TestNewRegistry_Describe(t *testing.T) {
	r := verb.NewRegistry(func(key string) string { return "<" + key + ">" })

	v, ok := r.Lookup(config.VerbMail)
	require.True(t, ok)
	assert.Equal(t, "<"+config.TKeyVerbMail+">", v.Description)
}

func TestActionKind_String(t *testing.T) {
	assert.Equal(t, "call", verb.ActionCall.String())
	assert.Equal(t, "mail", verb.ActionMail.String())
	assert.Equal(t, "card", verb.ActionShowCard.String())
	assert.Equal(t, "copy", verb.ActionCopyRaw.String())
	assert.Equal(t, "unknown", verb.ActionKind(99).String())
}
