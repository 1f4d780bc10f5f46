package engine

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-ppl/internal/action"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
	"github.com/tartampluch/go-ppl/internal/verb"
)

// Executor turns a resolved verb × contact pair into an external effect:
// a protocol-handler launch or a clipboard write.
type Executor struct {
	Registry   *verb.Registry
	Settings   *config.Settings
	Dispatcher action.Dispatcher

	// Label translates card row captions. Nil keeps raw message keys.
	Label func(key string) string
}

// Execute resolves the verb against the contact at index and dispatches
// its action. It returns the target string handed to the dispatcher. A
// verb with no applicable value is a no-op: ok is false and err is nil.
// presented carries the value last shown to the user, which the Copy verb
// returns unmodified.
func (e *Executor) Execute(store *contact.Store, verbName string, index int, presented string) (target string, ok bool, err error) {
	v, found := e.Registry.Lookup(verbName)
	if !found {
		return "", false, fmt.Errorf("%s: %q", config.ErrVerbUnknown, verbName)
	}

	c, err := store.At(index)
	if err != nil {
		return "", false, err
	}

	target, ok = verb.ResolveTarget(v, c, presented)
	if !ok {
		return "", false, nil
	}

	slog.Debug(config.MsgDispatching,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyVerb, v.Name,
		config.LogKeyIndex, index,
		config.LogKeyTarget, target,
	)

	switch v.Action {
	case verb.ActionCall, verb.ActionMail:
		url := action.BuildURL(e.Settings.ProtocolFor(v.Name), target)
		if err := e.Dispatcher.Launch(url); err != nil {
			return target, true, fmt.Errorf("%s: %w", config.ErrLaunch, err)
		}
		return target, true, nil

	case verb.ActionShowCard:
		card := verb.FormatCard(c, e.Registry, e.Label)
		if err := e.Dispatcher.SetClipboard(card); err != nil {
			return card, true, fmt.Errorf("%s: %w", config.ErrClipboard, err)
		}
		return card, true, nil

	default: // verb.ActionCopyRaw
		if err := e.Dispatcher.SetClipboard(target); err != nil {
			return target, true, fmt.Errorf("%s: %w", config.ErrClipboard, err)
		}
		return target, true, nil
	}
}
