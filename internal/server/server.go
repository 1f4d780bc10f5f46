// Package server exposes the loaded directory on localhost: the birthday
// calendar feed for calendar clients and a JSON contact listing for host
// integrations.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/contact"
)

// cacheItem stores one rendered payload and its HTTP caching metadata.
type cacheItem struct {
	data         []byte
	mime         string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the generated feed and contact listing. Content is
// swapped wholesale on reload via atomic pointers, so concurrent readers
// always see a complete payload.
type FeedServer struct {
	feed     atomic.Pointer[cacheItem]
	contacts atomic.Pointer[cacheItem]
	Port     string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf("%s", config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeed)
	mux.HandleFunc(config.RouteContacts, s.handleContacts)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateFeed atomically replaces the served calendar feed.
func (s *FeedServer) UpdateFeed(data []byte) {
	s.feed.Store(newCacheItem(data, config.MimeTextCalendar))
}

// UpdateContacts atomically replaces the JSON contact listing built from
// the freshly published store.
func (s *FeedServer) UpdateContacts(store *contact.Store) error {
	type entry struct {
		Index     int               `json:"index"`
		Name      string            `json:"name"`
		Phones    map[string]string `json:"phones,omitempty"`
		Mailboxes map[string]string `json:"mailboxes,omitempty"`
		Title     string            `json:"title,omitempty"`
		Org       string            `json:"org,omitempty"`
	}

	entries := make([]entry, 0, store.Len())
	for i, c := range store.All() {
		entries = append(entries, entry{
			Index:     i,
			Name:      c.Name,
			Phones:    c.Phones,
			Mailboxes: c.Mailboxes,
			Title:     c.Description,
			Org:       c.Org,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	s.contacts.Store(newCacheItem(data, config.MimeJSON))
	return nil
}

// newCacheItem hashes the payload for conditional requests.
func newCacheItem(data []byte, mime string) *cacheItem {
	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		mime:         mime,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
	return item
}

func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteFeed {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	s.serve(w, r, s.feed.Load())
}

func (s *FeedServer) handleContacts(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.contacts.Load())
}

// serve writes a cached payload with conditional-request support.
func (s *FeedServer) serve(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, item.mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
