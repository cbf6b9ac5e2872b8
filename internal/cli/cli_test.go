package cli_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelmaster/internal/cli"
	"github.com/pkordes/travelmaster/internal/domain"
	"github.com/pkordes/travelmaster/testutil"
)

func newApp(t *testing.T) *cli.App {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	return cli.NewApp(testutil.NewSQLiteStore(t), log, nil)
}

// run executes one command line and returns what it wrote to stdout.
func run(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, app *cli.App, args ...string) string {
	t.Helper()
	out, err := run(t, app, args...)
	require.NoError(t, err, "travelmaster %s", strings.Join(args, " "))
	return out
}

func addTrip(t *testing.T, app *cli.App, name, start string) string {
	t.Helper()
	out := mustRun(t, app, "trips", "add",
		"--name", name, "--destination", "Lisbon",
		"--start", start, "--end", start)
	return strings.TrimSpace(out)
}

func TestTrips_AddListShowDelete(t *testing.T) {
	app := newApp(t)

	older := addTrip(t, app, "Spring", "2025-04-01")
	newer := addTrip(t, app, "Autumn", "2025-10-01")

	list := mustRun(t, app, "trips", "list")
	assert.Less(t, strings.Index(list, newer), strings.Index(list, older), "latest start date first")

	mustRun(t, app, "activities", "add", newer, "--name", "Tram 28", "--date", "2025-10-02", "--time", "09:30")
	mustRun(t, app, "expenses", "add", "--amount", "12.50", "--category", "Transport", "--trip", newer)

	show := mustRun(t, app, "trips", "show", newer)
	assert.Contains(t, show, "Autumn: Lisbon (2025-10-01 to 2025-10-01)")
	assert.Contains(t, show, "Activities (1)")
	assert.Contains(t, show, "09:30")
	assert.Contains(t, show, "Tram 28")
	assert.Contains(t, show, "Expenses (1)")
	assert.Contains(t, show, "12.50")

	mustRun(t, app, "trips", "delete", newer)

	_, err := run(t, app, "trips", "show", newer)
	require.Error(t, err)
	assert.Equal(t, "not found", cli.Message(err))
}

func TestTrips_AddRequiresName(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "trips", "add", "--destination", "Lisbon", "--start", "2025-04-01", "--end", "2025-04-02")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "invalid input: name is required", cli.Message(err))
}

func TestTrips_BadIDAndDate(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "trips", "show", "nope")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, app, "trips", "add", "--name", "x", "--destination", "y", "--start", "01/04/2025", "--end", "2025-04-02")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, cli.Message(err), "--start")
}

func TestActivities_UnknownTrip(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "activities", "add", "00000000-0000-0000-0000-000000000001", "--name", "Museum")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpenses_AddListSummary(t *testing.T) {
	app := newApp(t)
	trip := addTrip(t, app, "Porto", "2025-05-01")

	mustRun(t, app, "expenses", "add", "--amount", "10.10", "--category", "Food", "--trip", trip, "--date", "2025-05-02")
	mustRun(t, app, "expenses", "add", "--amount", "0.20", "--category", "Food", "--date", "2025-05-03")
	mustRun(t, app, "expenses", "add", "--amount", "5", "--date", "2025-05-04")

	list := mustRun(t, app, "expenses", "list")
	assert.Less(t, strings.Index(list, "2025-05-04"), strings.Index(list, "2025-05-02"), "newest first")

	tripOnly := mustRun(t, app, "expenses", "list", "--trip", trip)
	assert.Contains(t, tripOnly, "10.10")
	assert.NotContains(t, tripOnly, "0.20")

	summary := mustRun(t, app, "expenses", "summary")
	assert.Contains(t, summary, "10.30 USD")
	assert.Contains(t, summary, "5.00 USD")
	assert.Contains(t, summary, "TOTAL (3)")
	assert.Contains(t, summary, "15.30 USD")
}

func TestExpenses_RejectsBadInput(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "expenses", "add", "--amount", "ten")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, app, "expenses", "add", "--amount", "10", "--category", "Gifts")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, `invalid input: unknown category "Gifts"`, cli.Message(err))
}

func TestJournal_AddWithPhoto(t *testing.T) {
	app := newApp(t)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "beach.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	id := strings.TrimSpace(mustRun(t, app, "journal", "add",
		"--title", "Beach", "--content", "Sunny", "--location", "Cascais", "--photo", path))

	list := mustRun(t, app, "journal", "list")
	assert.Contains(t, list, id)
	assert.Contains(t, list, "Cascais")
	assert.Contains(t, list, "bytes")

	mustRun(t, app, "journal", "delete", id)
	assert.NotContains(t, mustRun(t, app, "journal", "list"), id)
}

func TestJournal_MissingPhotoFile(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "journal", "add", "--title", "a", "--content", "b",
		"--photo", filepath.Join(t.TempDir(), "missing.jpg"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read photo")
}

func TestItinerary_AddToggleList(t *testing.T) {
	app := newApp(t)
	trip := addTrip(t, app, "Madeira", "2025-06-01")

	id := strings.TrimSpace(mustRun(t, app, "itinerary", "add", "--trip", trip,
		"--title", "Levada walk", "--location", "Funchal", "--date", "2025-06-02", "--time", "after lunch"))

	list := mustRun(t, app, "itinerary", "list", "--trip", trip)
	assert.Contains(t, list, "Levada walk")
	assert.Contains(t, list, "after lunch")
	assert.Contains(t, list, domain.ItineraryOther)

	assert.Equal(t, id+" completed=true\n", mustRun(t, app, "itinerary", "toggle", id))
	assert.Equal(t, id+" completed=false\n", mustRun(t, app, "itinerary", "toggle", id))

	mustRun(t, app, "trips", "delete", trip)
	assert.Contains(t, mustRun(t, app, "itinerary", "list"), id, "items outlive their trip")
}

func TestItinerary_LegacyRoundTrip(t *testing.T) {
	app := newApp(t)
	trip := addTrip(t, app, "Azores", "2025-07-01")
	mustRun(t, app, "itinerary", "add", "--trip", trip, "--title", "Whales", "--location", "Ponta Delgada")

	assert.Equal(t, "exported 1 itinerary items\n", mustRun(t, app, "itinerary", "export-legacy"))
	mustRun(t, app, "wipe", "--yes")
	assert.Equal(t, "imported 0 itinerary items\n", mustRun(t, app, "itinerary", "import-legacy"))
}

func TestSettings_SetAndShow(t *testing.T) {
	app := newApp(t)

	mustRun(t, app, "settings", "set", "currency", "EUR")
	mustRun(t, app, "settings", "set", "name", "Ana")
	mustRun(t, app, "settings", "set", "onboarded", "true")

	show := mustRun(t, app, "settings", "show")
	assert.Contains(t, show, "EUR")
	assert.Contains(t, show, "Ana")
	assert.Contains(t, show, "true")

	_, err := run(t, app, "settings", "set", "theme", "dark")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, app, "settings", "set", "onboarded", "maybe")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestExport_CSV(t *testing.T) {
	app := newApp(t)
	trip := addTrip(t, app, "Sintra", "2025-08-01")
	mustRun(t, app, "activities", "add", trip, "--name", "Pena Palace", "--date", "2025-08-01")
	mustRun(t, app, "activities", "add", trip, "--name", "Quinta", "--date", "2025-08-02")
	mustRun(t, app, "expenses", "add", "--amount", "20", "--trip", trip)

	out := mustRun(t, app, "export", "--format", "csv")

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per activity")
	assert.Equal(t, "trip_id", records[0][0])
	for _, r := range records[1:] {
		assert.Equal(t, trip, r[0])
		assert.Equal(t, "20.00", r[len(r)-1])
	}
}

func TestExport_JSON(t *testing.T) {
	app := newApp(t)
	trip := addTrip(t, app, "Evora", "2025-09-01")

	out := mustRun(t, app, "export")

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, trip, rows[0]["trip_id"])
	assert.Equal(t, "0.00", rows[0]["trip_expense_total"])
	assert.NotContains(t, rows[0], "activity_name")
}

func TestExport_UnknownFormat(t *testing.T) {
	app := newApp(t)

	_, err := run(t, app, "export", "--format", "xml")

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestWipe(t *testing.T) {
	app := newApp(t)
	addTrip(t, app, "Braga", "2025-03-01")
	mustRun(t, app, "settings", "set", "currency", "GBP")

	_, err := run(t, app, "wipe")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, mustRun(t, app, "trips", "list"), "Braga")

	assert.Equal(t, "all data deleted\n", mustRun(t, app, "wipe", "--yes"))
	assert.NotContains(t, mustRun(t, app, "trips", "list"), "Braga")
	assert.Contains(t, mustRun(t, app, "settings", "show"), "GBP", "preferences survive a wipe")
}

func TestMigrate(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, fmt.Sprintf("schema up to date (%s, version 2, 0 pending)\n", app.Store.Dialect()), mustRun(t, app, "migrate"))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", fmt.Errorf("service.TripService.Create: %w: name is required", domain.ErrValidation), "invalid input: name is required"},
		{"not found", fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound), "not found"},
		{"other", fmt.Errorf("store.Open: disk full"), "store.Open: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.Message(tt.err))
		})
	}
}
