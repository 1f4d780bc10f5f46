// Package action holds the outward-facing sinks verbs dispatch into:
// clipboard writes and protocol-handler launches. Both are opaque
// single-string operations from the engine's point of view.
package action

import (
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/tartampluch/go-ppl/internal/config"
)

// Dispatcher is the contract for executing a resolved action target.
// Implementations are expected to be cheap to call and safe to mock.
type Dispatcher interface {
	// Launch hands a URL (tel:, mailto:, ...) to the platform handler.
	Launch(url string) error
	// SetClipboard replaces the system clipboard contents.
	SetClipboard(text string) error
}

// SystemDispatcher implements Dispatcher against the real desktop.
type SystemDispatcher struct{}

// SetClipboard copies text to the system clipboard.
func (SystemDispatcher) SetClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	slog.Debug(config.MsgClipboardSet,
		config.LogKeyComponent, config.CompAction,
		config.LogKeySizeBytes, len(text),
	)
	return nil
}

// Launch opens url with the platform's default protocol handler.
func (SystemDispatcher) Launch(url string) error {
	slog.Debug(config.MsgDispatching,
		config.LogKeyComponent, config.CompAction,
		config.LogKeyURL, url,
	)
	return launch(url)
}

// BuildURL substitutes the dial/mail target into a protocol template.
// Spaces are stripped from the target; dialers reject them.
func BuildURL(template, target string) string {
	return strings.Replace(template, config.ProtocolPlaceholder, strings.ReplaceAll(target, " ", ""), 1)
}
