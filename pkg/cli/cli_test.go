package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/fakeapi"
	"github.com/rentdesk/rentdesk/pkg/cliconfig"
	"github.com/rentdesk/rentdesk/pkg/entity"
)

// ─── Test infrastructure ────────────────────────────────────────────────────

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func newSampleBackend(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	backend := fakeapi.New()
	backend.SeedSample()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return backend, srv.URL
}

// runCLI executes the command tree against apiURL without ever prompting.
func runCLI(t *testing.T, apiURL string, args ...string) cliResult {
	t.Helper()
	return runArgs(t, append([]string{"--api-url", apiURL}, args...)...)
}

// runArgs executes the command tree with args as given.
func runArgs(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&app{interactive: func() bool { return false }})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := run(context.Background(), cmd, args, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

// ─── Listing and lookup ─────────────────────────────────────────────────────

func TestBookList_Table(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "list")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Regexp(t, `ID\s+TITLE\s+ISBN`, res.stdout)
	assert.Regexp(t, `1\s+Dune\s+978-0441172719`, res.stdout)
	assert.Contains(t, res.stdout, "Showing 2 of 2 books (page 0)")
}

func TestBookList_JSON(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "book", "list")

	require.Equal(t, 0, res.code, res.stderr)
	books := decodeJSON[[]entity.Book](t, res.stdout)
	require.Len(t, books, 2)
	assert.Equal(t, "Solaris", books[1].Title)
}

func TestBookList_PagingAndSort(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "book", "list", "--size", "1", "--sort", "id,desc")

	require.Equal(t, 0, res.code, res.stderr)
	books := decodeJSON[[]entity.Book](t, res.stdout)
	require.Len(t, books, 1)
	assert.Equal(t, "Solaris", books[0].Title)
}

func TestList_Where(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "rental", "list", "--where", "returnDate == nil && patron.id == 86367")

	require.Equal(t, 0, res.code, res.stderr)
	rentals := decodeJSON[[]entity.Rental](t, res.stdout)
	require.Len(t, rentals, 1)
	assert.Equal(t, int64(10), *rentals[0].Inventory.ID)
}

func TestList_InvalidWhere(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "list", "--where", "title ==")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid --where expression")
}

func TestList_JSONPath(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "list", "--jsonpath", "$[*].title")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, []string{"Dune", "Solaris"}, decodeJSON[[]string](t, res.stdout))
}

func TestList_Empty(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)
	backend.Reset()

	res := runCLI(t, url, "patron", "list")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No patrons found\n", res.stdout)
}

func TestCount_Filter(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "inventory", "count", "--filter", "bookId=1")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2\n", res.stdout)
}

func TestGet_Detail(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "patron", "get", "86367")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Regexp(t, `Name:\s+Ada Lovelace`, res.stdout)
	assert.Regexp(t, `Date Of Birth:\s+1990-12-10`, res.stdout)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "get", "99")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: book not found: 99")
	assert.Contains(t, res.stderr, "rentdesk book list")
}

func TestGet_InvalidID(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "get", "abc")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `invalid id "abc"`)
}

// ─── Create, update, patch ──────────────────────────────────────────────────

func TestBookCreate(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "create", "--title", "Neuromancer", "--isbn", "978-0441569595")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Created book")
	assert.Regexp(t, `Id:\s+3`, res.stdout)
	stored := backend.Books().Get(3)
	require.NotNil(t, stored)
	assert.Equal(t, "Neuromancer", stored.Title)
}

func TestBookCreate_ValidatesBeforeSending(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "create", "--title", "Neuromancer")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: invalid book")
	assert.Equal(t, 2, backend.Books().Count())
}

func TestBookCreate_NoFlagsWithoutTerminal(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "create")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: invalid book")
	assert.Equal(t, 2, backend.Books().Count())
}

func TestBookUpdate_KeepsUnchangedFields(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "update", "1", "--title", "Dune Messiah")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Updated book")
	stored := backend.Books().Get(1)
	assert.Equal(t, "Dune Messiah", stored.Title)
	assert.Equal(t, "978-0441172719", stored.ISBN)
}

func TestBookUpdate_NoChanges(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "update", "1")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, ErrNoChanges.Error())
}

func TestBookUpdate_NotFound(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "update", "42", "--title", "x")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "book not found: 42")
}

func TestPatronPatch(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "patron", "patch", "86368", "--phone", "555-0199")

	require.Equal(t, 0, res.code, res.stderr)
	got := decodeJSON[entity.Patron](t, res.stdout)
	assert.Equal(t, "555-0199", got.PhoneNumber)
	stored := backend.Patrons().Get(86368)
	assert.Equal(t, "Alan Turing", stored.Name)
	assert.Equal(t, "555-0199", stored.PhoneNumber)
}

func TestPatronPatch_InvalidDate(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "patron", "patch", "86368", "--date-of-birth", "23/06/1992")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `invalid date "23/06/1992"`)
}

func TestInventoryCreate_ResolvesBook(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "inventory", "create", "--book-id", "2")

	require.Equal(t, 0, res.code, res.stderr)
	got := decodeJSON[entity.Inventory](t, res.stdout)
	require.NotNil(t, got.ID)
	assert.Equal(t, int64(13), *got.ID)
	assert.Equal(t, "Solaris", got.Book.Title)
	assert.Equal(t, 4, backend.Inventories().Count())
}

func TestInventoryCreate_UnknownBook(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "inventory", "create", "--book-id", "99")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "book not found: 99")
	assert.Equal(t, 3, backend.Inventories().Count())
}

func TestRentalCreate_DefaultsRentalDate(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "rental", "create", "--patron-id", "86367", "--inventory-id", "11")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Created rental")
	stored := backend.Rentals().Get(2)
	require.NotNil(t, stored)
	require.NotNil(t, stored.RentalDate)
	assert.Equal(t, entity.Today(), *stored.RentalDate)
	assert.Equal(t, "Ada Lovelace", stored.Patron.Name)
	assert.Equal(t, int64(11), *stored.Inventory.ID)
}

func TestRentalCreate_RentedCopyRejected(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "rental", "create", "--patron-id", "86368", "--inventory-id", "10")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "the backend rejected the rental")
	assert.Contains(t, res.stderr, "inventory: is already rented")
	assert.Equal(t, 1, backend.Rentals().Count())
}

func TestRentalReturn(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "rental", "return", "1", "--date", "2026-10-19")

	require.Equal(t, 0, res.code, res.stderr)
	stored := backend.Rentals().Get(1)
	require.NotNil(t, stored.ReturnDate)
	assert.Equal(t, "2026-10-19", stored.ReturnDate.String())

	again := runCLI(t, url, "rental", "return", "1")
	assert.Equal(t, 1, again.code)
	assert.Contains(t, again.stderr, "already returned on 2026-10-19")
}

func TestRentalAvailable(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "rental", "available")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, map[string]int64{"available": 2}, decodeJSON[map[string]int64](t, res.stdout))
}

func TestAvailability(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "availability", "--book-id", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1 copies of book 1 available\n", res.stdout)

	missing := runCLI(t, url, "availability", "--book-id", "99")
	assert.Equal(t, 1, missing.code)
	assert.Contains(t, missing.stderr, "book not found: 99")

	noFlag := runCLI(t, url, "availability")
	assert.Equal(t, 1, noFlag.code)
	assert.Contains(t, noFlag.stderr, "--book-id is required")
}

// ─── Delete ─────────────────────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "rental", "delete", "1")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Deleted rental: 1\n", res.stdout)
	assert.False(t, backend.Rentals().Exists(1))
}

func TestDelete_Referenced(t *testing.T) {
	t.Parallel()
	backend, url := newSampleBackend(t)

	res := runCLI(t, url, "book", "delete", "1")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "book 1 is still in use")
	assert.True(t, backend.Books().Exists(1))
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "patron", "delete", "5")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "patron not found: 5")
}

func TestRentalPatch_ClearsReturnDate(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "rental", "return", "1", "--date", "2026-10-05")
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, url, "--json", "rental", "patch", "1", "--return-date", "")

	require.Equal(t, 0, res.code, res.stderr)
	rental := decodeJSON[entity.Rental](t, res.stdout)
	assert.Nil(t, rental.ReturnDate)
	assert.Equal(t, "2026-10-01", rental.RentalDate.String())
	assert.Equal(t, int64(10), *rental.Inventory.ID)
}

func TestPatronBooks(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "patron", "books", "86367")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Patron 86367 has rented 1 books\n", res.stdout)

	res = runCLI(t, url, "--json", "patron", "books", "86368")
	require.Equal(t, 0, res.code, res.stderr)
	out := decodeJSON[map[string]int64](t, res.stdout)
	assert.Equal(t, int64(0), out["rentals"])

	res = runCLI(t, url, "patron", "books", "x")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid id")
}

// ─── Contexts ───────────────────────────────────────────────────────────────

// isolateContexts points the config dir at an empty temp dir. Tests using it
// must not run in parallel.
func isolateContexts(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(cliconfig.EnvContext, "")
	t.Setenv(cliconfig.EnvAPIURL, "")
	t.Setenv(cliconfig.EnvConfig, "")
}

func TestContextAdd_KeepsItsOwnAPIURL(t *testing.T) {
	isolateContexts(t)
	_, url := newSampleBackend(t)

	res := runArgs(t, "context", "add", "lib", "--api-url", url, "--description", "sample", "--use")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `Added context "lib"`)

	res = runArgs(t, "--json", "context", "list")
	require.Equal(t, 0, res.code, res.stderr)
	entries := decodeJSON[[]contextEntry](t, res.stdout)
	require.Len(t, entries, 1)
	assert.Equal(t, url, entries[0].APIURL)
	assert.True(t, entries[0].Current)

	// The current context now supplies the backend.
	res = runArgs(t, "book", "count")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2\n", res.stdout)
}

func TestContextAdd_GlobalAPIURLBeforeSubcommand(t *testing.T) {
	isolateContexts(t)
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "context", "add", "offline", "--api-url", "http://127.0.0.1:1/")
	require.Equal(t, 0, res.code, res.stderr)

	res = runArgs(t, "--json", "context", "list")
	require.Equal(t, 0, res.code, res.stderr)
	entries := decodeJSON[[]contextEntry](t, res.stdout)
	require.Len(t, entries, 1)
	assert.Equal(t, "http://127.0.0.1:1/", entries[0].APIURL)
	assert.False(t, entries[0].Current)
}

func TestContextAdd_RejectsInvalidURL(t *testing.T) {
	isolateContexts(t)

	res := runArgs(t, "context", "add", "bad", "--api-url", "ftp://nowhere")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "must be an absolute http(s) URL")
}

// ─── Ambient ────────────────────────────────────────────────────────────────

func TestConnectionError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(fakeapi.New())
	url := srv.URL
	srv.Close()

	res := runCLI(t, url, "book", "list")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Check that the backend is running")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Parallel()

	res := runCLI(t, "ftp://example.com", "book", "list")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid configuration")
}

func TestConfig_JSONReportsSources(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "config")

	require.Equal(t, 0, res.code, res.stderr)
	out := decodeJSON[map[string]any](t, res.stdout)
	assert.Equal(t, url, out["apiUrl"])
	sources, ok := out["sources"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "flag", sources["apiUrl"])
	assert.Equal(t, "flag", sources["json"])
}

func TestConfig_Human(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "config")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Effective Configuration:")
	assert.Regexp(t, `apiUrl:\s+`+url+`\s+\(flag\)`, res.stdout)
}

func TestVersion_JSON(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "--json", "version")

	require.Equal(t, 0, res.code, res.stderr)
	out := decodeJSON[VersionOutput](t, res.stdout)
	assert.NotEmpty(t, out.Version)
	assert.NotEmpty(t, out.Go)
}

func TestGuide(t *testing.T) {
	t.Parallel()
	_, url := newSampleBackend(t)

	res := runCLI(t, url, "guide")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "filters")

	topic := runCLI(t, url, "guide", "dates")
	require.Equal(t, 0, topic.code, topic.stderr)
	assert.Contains(t, topic.stdout, "YYYY-MM-DD")

	alias := runCLI(t, url, "guide", "where")
	require.Equal(t, 0, alias.code, alias.stderr)
	assert.Contains(t, alias.stdout, "--where")

	unknown := runCLI(t, url, "guide", "templating")
	assert.Equal(t, 1, unknown.code)
	assert.Contains(t, unknown.stderr, "Available topics")
}
