package verb

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// Suggestion is one match result: a contact index valid for the lifetime
// of the store, the label presented to the user, and the resolved target.
type Suggestion struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Target   string `json:"target"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Match finds contacts whose name contains query (case-insensitive) and
// for which the verb resolves to a value. Store order is preserved and the
// result is capped at MaxSuggestions; there is no relevance ranking.
func (r *Registry) Match(store *contact.Store, verbName, query string) ([]Suggestion, error) {
	v, ok := r.Lookup(verbName)
	if !ok {
		return nil, fmt.Errorf("%s: %q", config.ErrVerbUnknown, verbName)
	}

	needle := strings.ToLower(query)
	var suggestions []Suggestion

	for idx, c := range store.All() {
		if len(suggestions) >= config.MaxSuggestions {
			break
		}
		if c.Name == "" || !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		target, ok := Resolve(v, c)
		if !ok {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Index:    idx,
			Label:    suggestionLabel(v, c.Name, target),
			Target:   target,
			Subtitle: c.Description,
		})
	}

	slog.Debug(config.MsgVerbResolved,
		config.LogKeyComponent, config.CompVerb,
		config.LogKeyVerb, verbName,
		config.LogKeyQuery, query,
		config.LogKeyCount, len(suggestions),
	)
	return suggestions, nil
}

// suggestionLabel formats the line presented for a match. Dial verbs keep
// the historical "Call {name} ({verb}) - {number}" shape so the user sees
// which slot answered the fallback chain.
func suggestionLabel(v Verb, name, target string) string {
	if v.Action == ActionCall {
		return fmt.Sprintf("%s %s (%s) - %s", config.VerbCall, name, v.Name, target)
	}
	return fmt.Sprintf("%s %s - %s", v.Name, name, target)
}
