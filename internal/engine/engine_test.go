package engine_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.SourceFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

const testVCard = `BEGIN:VCARD
VERSION:3.0
FN:John Doe
TEL;TYPE=CELL:555-0100
END:VCARD`

func writeVCF(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestLoader(dir string) *engine.Loader {
	return &engine.Loader{
		Clock:   MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		BaseDir: dir,
	}
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestLoad_SingleLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeVCF(t, dir, "contacts.vcf", testVCard)

	loader := newTestLoader(dir)
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files:      []config.VCardFile{{File: "contacts.vcf"}},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	require.Equal(t, 1, store.Len())

	c, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "555-0100", c.Phones[config.TypeCell])
}

func TestLoad_MultipleFilesKeepConfigOrder(t *testing.T) {
	dir := t.TempDir()
	writeVCF(t, dir, "a.vcf", "BEGIN:VCARD\nVERSION:3.0\nFN:From A\nEND:VCARD")
	writeVCF(t, dir, "b.vcf", "BEGIN:VCARD\nVERSION:3.0\nFN:From B\nEND:VCARD")

	loader := newTestLoader(dir)
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files: []config.VCardFile{
			{File: "b.vcf"},
			{File: "a.vcf"},
		},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	require.Equal(t, 2, store.Len())

	first, _ := store.At(0)
	second, _ := store.At(1)
	assert.Equal(t, "From B", first.Name)
	assert.Equal(t, "From A", second.Name)
}

func TestLoad_MissingFileReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeVCF(t, dir, "good.vcf", testVCard)

	loader := newTestLoader(dir)
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files: []config.VCardFile{
			{File: "missing.vcf"},
			{File: "good.vcf"},
		},
	}

	store, issues := loader.Load(context.Background(), settings)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].File, "missing.vcf")
	assert.Error(t, issues[0].Err)
	assert.Equal(t, 1, store.Len(), "the good file still serves")
}

func TestLoad_NoFilesInstallsSample(t *testing.T) {
	dir := t.TempDir()

	loader := newTestLoader(dir)
	settings := &config.Settings{ParserMode: config.ParserModeStructured}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	assert.Greater(t, store.Len(), 0, "sample contacts are served")

	samplePath := filepath.Join(dir, config.SampleVCFName)
	_, err := os.Stat(samplePath)
	assert.NoError(t, err, "sample file installed on disk")

	// A second load must not fail or duplicate the install.
	store2, issues2 := loader.Load(context.Background(), settings)
	assert.Empty(t, issues2)
	assert.Equal(t, store.Len(), store2.Len())
}

func TestLoad_SimpleModeSelected(t *testing.T) {
	dir := t.TempDir()
	// An untyped TEL is kept by the structured parser but not in simple mode.
	writeVCF(t, dir, "contacts.vcf",
		"BEGIN:VCARD\nVERSION:3.0\nFN:Plain\nTEL:555-0100\nEND:VCARD")

	loader := newTestLoader(dir)
	settings := &config.Settings{
		ParserMode: config.ParserModeSimple,
		Files:      []config.VCardFile{{File: "contacts.vcf"}},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	require.Equal(t, 1, store.Len())

	c, _ := store.At(0)
	assert.Empty(t, c.Phones)
}

func TestLoad_MirrorFromLocalSource(t *testing.T) {
	dir := t.TempDir()
	srcDir := t.TempDir()
	source := writeVCF(t, srcDir, "export.vcf", testVCard)

	loader := newTestLoader(dir)
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files:      []config.VCardFile{{File: "cache.vcf", Source: source}},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	assert.Equal(t, 1, store.Len())

	mirrored, err := os.ReadFile(filepath.Join(dir, "cache.vcf"))
	require.NoError(t, err)
	assert.Equal(t, testVCard, string(mirrored))
}

func TestLoad_MirrorSkippedWhileFresh(t *testing.T) {
	dir := t.TempDir()
	cache := writeVCF(t, dir, "cache.vcf", testVCard)

	now := time.Now()
	require.NoError(t, os.Chtimes(cache, now, now))

	fetcher := new(MockFetcher) // no expectations: Fetch must not be called

	loader := &engine.Loader{
		Clock:   MockClock{CurrentTime: now.Add(1 * time.Hour)},
		Fetcher: fetcher,
		BaseDir: dir,
	}
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files: []config.VCardFile{{
			File:             "cache.vcf",
			Source:           "https://example.com/export.vcf",
			ReloadDeltaHours: 24,
		}},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	assert.Equal(t, 1, store.Len())
	fetcher.AssertExpectations(t)
}

func TestLoad_MirrorRemoteWithCredentials(t *testing.T) {
	dir := t.TempDir()
	sourceURL := "https://example.com/export.vcf"

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, sourceURL, "jane", "s3cret").
		Return(io.NopCloser(strings.NewReader(testVCard)), nil)

	loader := &engine.Loader{
		Clock:   MockClock{CurrentTime: time.Now()},
		Fetcher: fetcher,
		Secret: func(user string) (string, error) {
			assert.Equal(t, "jane", user)
			return "s3cret", nil
		},
		BaseDir: dir,
	}
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files: []config.VCardFile{{
			File:     "cache.vcf",
			Source:   sourceURL,
			Username: "jane",
		}},
	}

	store, issues := loader.Load(context.Background(), settings)
	assert.Empty(t, issues)
	require.Equal(t, 1, store.Len())
	fetcher.AssertExpectations(t)
}

func TestLoad_FailedMirrorKeepsStaleCache(t *testing.T) {
	dir := t.TempDir()
	writeVCF(t, dir, "cache.vcf", testVCard)

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	loader := &engine.Loader{
		Clock:   MockClock{CurrentTime: time.Now()},
		Fetcher: fetcher,
		BaseDir: dir,
	}
	settings := &config.Settings{
		ParserMode: config.ParserModeStructured,
		Files: []config.VCardFile{{
			File:   "cache.vcf",
			Source: "https://example.com/export.vcf",
		}},
	}

	store, issues := loader.Load(context.Background(), settings)
	require.Len(t, issues, 1, "the failed download is reported")
	assert.Equal(t, 1, store.Len(), "the stale cache still parses")
}
