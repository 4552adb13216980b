package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv holds the paths one test invocation shares across commands.
type cliEnv struct {
	db     string
	config string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		db:     filepath.Join(dir, "daybook.db"),
		config: filepath.Join(dir, "config.yaml"), // never written: zero config
	}
}

// run executes one command against the test database and returns what it
// wrote. A fresh root command is built per call, the way main does it.
func (e cliEnv) run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.db, "--config", e.config}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// addedID runs add in JSON mode and returns the new record's id.
func (e cliEnv) addedID(t *testing.T, date, timeOfDay, title string) int64 {
	t.Helper()

	stdout, _, err := e.run(t, "", "add", date, timeOfDay, title, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Record struct {
				ID int64 `json:"id"`
			} `json:"record"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NotZero(t, resp.Data.Record.ID)
	return resp.Data.Record.ID
}

func TestCLI_AddAndList(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "add", "2024-03-15", "09:30", "Dentist")
	require.NoError(t, err)
	_, _, err = env.run(t, "", "add", "2024-03-15", "18:00", "Team", "dinner", "--desc", "Table for six")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2024-03-15 (week 11)")
	assert.Contains(t, stdout, "Dentist")
	assert.Contains(t, stdout, "Team dinner")
	assert.Contains(t, stdout, "Table for six")
	// Both events are long past, so both carry the marker.
	assert.Equal(t, 2, strings.Count(stdout, "[past]"))
	// Ordered by time of day.
	assert.Less(t, strings.Index(stdout, "Dentist"), strings.Index(stdout, "Team dinner"))
}

func TestCLI_ListJSON(t *testing.T) {
	env := newCLIEnv(t)
	env.addedID(t, "2024-03-15", "09:30", "Dentist")

	stdout, _, err := env.run(t, "", "list", "2024-03-15", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ListResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2024-03-15", resp.Data.Date)
	assert.Equal(t, 11, resp.Data.Week)
	require.Len(t, resp.Data.Events, 1)
	assert.Equal(t, "Dentist", resp.Data.Events[0].Title)
	assert.True(t, resp.Data.Events[0].Expired)
}

func TestCLI_ListEmptyDate(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no events")
}

func TestCLI_AddRejectsBadInput(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"malformed date", []string{"add", "15/03/2024", "09:30", "Dentist"}},
		{"malformed time", []string{"add", "2024-03-15", "9am", "Dentist"}},
		{"blank title", []string{"add", "2024-03-15", "09:30", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := env.run(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, "Error:")
		})
	}

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no events")
}

func TestCLI_Edit(t *testing.T) {
	env := newCLIEnv(t)
	id := env.addedID(t, "2024-03-15", "09:30", "Dentist")

	_, _, err := env.run(t, "", "edit", "2024-03-15", formatID(id), "--time", "10:00")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "10:00")
	assert.NotContains(t, stdout, "09:30")
	assert.Contains(t, stdout, "Dentist")
}

func TestCLI_EditMissingID(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "edit", "2024-03-15", "12345", "--title", "Nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCLI_Remove(t *testing.T) {
	env := newCLIEnv(t)
	id := env.addedID(t, "2024-03-15", "09:30", "Dentist")

	_, _, err := env.run(t, "", "rm", "2024-03-15", formatID(id))
	require.NoError(t, err)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no events")

	// Removing again is fine.
	_, _, err = env.run(t, "", "rm", "2024-03-15", formatID(id))
	require.NoError(t, err)
}

func TestCLI_ExportImportRoundTrip(t *testing.T) {
	env := newCLIEnv(t)
	env.addedID(t, "2024-03-15", "09:30", "Dentist")
	env.addedID(t, "2024-03-16", "08:00", "Laundry")

	exportPath := filepath.Join(t.TempDir(), "book.json")
	_, _, err := env.run(t, "", "export", "-o", exportPath)
	require.NoError(t, err)

	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "Dentist")

	// Import into a fresh database and compare exports.
	other := newCLIEnv(t)
	_, _, err = other.run(t, "", "import", exportPath, "--yes")
	require.NoError(t, err)

	stdout, _, err := other.run(t, "", "export")
	require.NoError(t, err)
	assert.JSONEq(t, string(exported), stdout)
}

func TestCLI_ImportFromStdin(t *testing.T) {
	env := newCLIEnv(t)

	doc := `{"2024-03-15": [{"id": 7, "title": "Dentist", "time": "09:30"}]}`
	_, _, err := env.run(t, doc, "import", "-", "--yes")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dentist")
}

func TestCLI_ImportConfirmed(t *testing.T) {
	env := newCLIEnv(t)
	env.addedID(t, "2024-03-15", "09:30", "Old event")

	doc := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(doc,
		[]byte(`{"2024-04-01": [{"id": 9, "title": "New event", "time": "12:00"}]}`), 0o644))

	stdout, _, err := env.run(t, "y\n", "import", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Continue?")
	assert.Contains(t, stdout, "import complete")

	stdout, _, err = env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no events")
}

func TestCLI_ImportDeclined(t *testing.T) {
	env := newCLIEnv(t)
	env.addedID(t, "2024-03-15", "09:30", "Dentist")

	doc := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{}`), 0o644))

	stdout, _, err := env.run(t, "n\n", "import", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "aborted")

	stdout, _, err = env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dentist")
}

func TestCLI_ImportRejectsMalformedDocument(t *testing.T) {
	env := newCLIEnv(t)

	doc := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"not a date": []}`), 0o644))

	_, _, err := env.run(t, "", "import", doc, "--yes")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCLI_Subscribe(t *testing.T) {
	env := newCLIEnv(t)
	env.addedID(t, "2024-03-15", "09:30", "Dentist")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"2024-03-15": [{"id": 7, "title": "Standup", "time": "10:00"}],
			"2024-04-01": [{"id": 8, "title": "Offsite", "time": "09:00"}]
		}`))
	}))
	defer srv.Close()

	stdout, _, err := env.run(t, "", "subscribe", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 added")

	stdout, _, err = env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dentist")
	assert.Contains(t, stdout, "Standup")

	stdout, _, err = env.run(t, "", "list", "2024-04-01")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Offsite")
}

func TestCLI_SubscribeWithoutURL(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "subscribe")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCLI_SubscribeURLFromConfig(t *testing.T) {
	env := newCLIEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"2024-03-15": [{"id": 5, "title": "Sync", "time": "11:00"}]}`))
	}))
	defer srv.Close()

	require.NoError(t, os.WriteFile(env.config,
		[]byte("subscribe_url: "+srv.URL+"\n"), 0o644))

	_, _, err := env.run(t, "", "subscribe")
	require.NoError(t, err)

	stdout, _, err := env.run(t, "", "list", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sync")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
