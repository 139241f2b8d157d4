package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

// profile is a test profile directory with instant logins.
func profile(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DAYCRAFT_AUTH_LOGIN_DELAY", "0s")
	t.Setenv("DAYCRAFT_AUTH_PROVIDER_DELAY", "0s")
	return t.TempDir()
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "daycraft %v", args)
	return out
}

func login(t *testing.T, dir string) {
	t.Helper()
	out := mustRun(t, dir, "login", "-e", "ada@example.com", "-p", "secret")
	require.Contains(t, out, "Welcome, ada!")
}

func TestCLI_ProtectedCommandsRequireLogin(t *testing.T) {
	dir := profile(t)
	for _, args := range [][]string{
		{"tasks", "list"},
		{"notes", "list"},
		{"whoami"},
		{"export"},
	} {
		_, err := run(t, dir, args...)
		assert.ErrorIs(t, err, errNotLoggedIn, "%v", args)
	}
}

func TestCLI_LoginLogout(t *testing.T) {
	dir := profile(t)

	_, err := run(t, dir, "login", "-e", "", "-p", "x")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)

	login(t, dir)
	assert.Contains(t, mustRun(t, dir, "login", "-e", "bob@example.com", "-p", "x"), "Already logged in as ada@example.com")
	assert.Contains(t, mustRun(t, dir, "whoami"), "ada <ada@example.com>")

	mustRun(t, dir, "logout")
	_, err = run(t, dir, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	out := mustRun(t, dir, "login-google")
	assert.Contains(t, out, "Welcome, user!")
	assert.Contains(t, mustRun(t, dir, "whoami"), "via google")

	mustRun(t, dir, "logout")
	_, err = run(t, dir, "signup", "-e", "c@example.com", "-p", "x")
	assert.ErrorIs(t, err, session.ErrMissingField)
	assert.Contains(t, mustRun(t, dir, "signup", "-n", "Cleo", "-e", "c@example.com", "-p", "x"), "Welcome, Cleo!")
}

func TestCLI_Tasks(t *testing.T) {
	dir := profile(t)
	login(t, dir)

	assert.Contains(t, mustRun(t, dir, "tasks", "add", "--date", "2024-01-01", "Buy", "milk"), "Added #1 to 2024-01-01: Buy milk")
	mustRun(t, dir, "tasks", "add", "--date", "2024-01-01", "Walk the dog")
	mustRun(t, dir, "tasks", "done", "--date", "2024-01-01", "1")

	out := mustRun(t, dir, "tasks", "list", "--date", "2024-01-01")
	assert.Contains(t, out, "[x] 1. Buy milk")
	assert.Contains(t, out, "[ ] 2. Walk the dog")
	assert.Contains(t, out, "1/2 done (50%)")

	mustRun(t, dir, "tasks", "edit", "--date", "2024-01-01", "2", "Walk", "the", "cat")
	mustRun(t, dir, "tasks", "rm", "--date", "2024-01-01", "1")

	out = mustRun(t, dir, "tasks", "list", "--date", "2024-01-01", "--json")
	var tasks []struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Walk the cat", tasks[0].Text)

	assert.Contains(t, mustRun(t, dir, "tasks", "list", "--all"), "2024-01-01  0/1 (0%)")
	assert.Contains(t, mustRun(t, dir, "tasks", "add", "--date", "2024-01-01", " "), "Nothing to do")

	_, err := run(t, dir, "tasks", "list", "--date", "tomorrow")
	assert.ErrorContains(t, err, "invalid date")
	_, err = run(t, dir, "tasks", "done", "--date", "2024-01-01", "9")
	assert.ErrorContains(t, err, "no entry #9")
}

func TestCLI_JournalNotesChecklistsGoals(t *testing.T) {
	dir := profile(t)
	login(t, dir)

	mustRun(t, dir, "journal", "save", "--date", "2024-01-01", "-t", "Monday", "-c", "Good start", "-m", "happy")
	assert.Contains(t, mustRun(t, dir, "journal", "save", "--date", "2024-01-01", "-t", "Monday"), "entry unchanged")
	out := mustRun(t, dir, "journal", "show", "--date", "2024-01-01")
	assert.Contains(t, out, "# Monday")
	assert.Contains(t, out, "😊")
	assert.Contains(t, mustRun(t, dir, "journal", "list"), "2024-01-01")

	mustRun(t, dir, "notes", "add", "-t", "Shopping", "-c", "milk")
	mustRun(t, dir, "notes", "add", "-t", "Ideas")
	mustRun(t, dir, "notes", "pin", "2") // Shopping
	out = mustRun(t, dir, "notes", "list")
	assert.Regexp(t, `(?s)\* 1\. Shopping \| milk.*  2\. Ideas`, out)
	assert.NotContains(t, mustRun(t, dir, "notes", "list", "shop"), "Ideas")

	mustRun(t, dir, "checklists", "new", "Packing")
	mustRun(t, dir, "checklists", "add-item", "1", "socks")
	mustRun(t, dir, "checklists", "add-item", "1", "passport")
	mustRun(t, dir, "checklists", "check", "1", "2")
	out = mustRun(t, dir, "checklists", "list")
	assert.Contains(t, out, "1. Packing (1/2, 50%)")
	assert.Contains(t, out, "[x] 2. passport")

	mustRun(t, dir, "goals", "add", "-c", "personal", "Run a marathon")
	mustRun(t, dir, "goals", "add", "-c", "Personal", "Learn to cook")
	mustRun(t, dir, "goals", "add", "-c", "travel", "Visit Japan")
	mustRun(t, dir, "goals", "done", "3") // Run a marathon
	out = mustRun(t, dir, "goals", "list")
	assert.Contains(t, out, "Personal (1/2)")
	assert.Contains(t, out, "Overall: 33%")

	_, err := run(t, dir, "goals", "add", "-c", "space", "Go to Mars")
	assert.ErrorContains(t, err, "unknown category")
}

func TestCLI_ThemeExportStatusVersion(t *testing.T) {
	dir := profile(t)

	assert.Equal(t, "light\n", mustRun(t, dir, "theme"))
	assert.Equal(t, "dark\n", mustRun(t, dir, "theme", "toggle"))
	assert.Equal(t, "light\n", mustRun(t, dir, "theme", "light"))
	_, err := run(t, dir, "theme", "neon")
	assert.Error(t, err)

	login(t, dir)
	mustRun(t, dir, "tasks", "add", "--date", "2024-01-01", "Buy milk")

	out := mustRun(t, dir, "export", "--format", "yaml")
	assert.Contains(t, out, "daily_tasks:")
	assert.Contains(t, out, "text: Buy milk")
	assert.Contains(t, out, "email: ada@example.com")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "export")), &doc))
	assert.Contains(t, doc, "bucket_list")

	var status struct {
		Adapter    string         `json:"adapter"`
		Components map[string]any `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "status")), &status))
	assert.Equal(t, "fs", status.Adapter)
	assert.Contains(t, status.Components, "store")
	assert.Contains(t, status.Components, "session")
	assert.Contains(t, status.Components, "fs")

	assert.Regexp(t, `^daycraft version \d+\.\d+\.\d+`, mustRun(t, dir, "version"))
}

func TestCLI_WatchStopsAfterDuration(t *testing.T) {
	dir := profile(t)
	out := mustRun(t, dir, "watch", "journal_*", "--for", "50ms")
	assert.Contains(t, out, `Watching "journal_*"`)
}

func TestResolveRef(t *testing.T) {
	ids := []core.ID{"0190a1-aaaa", "0190a1-bbbb", "zzz"}

	id, err := resolveRef(ids, "2")
	require.NoError(t, err)
	assert.Equal(t, core.ID("0190a1-bbbb"), id)

	id, err = resolveRef(ids, "zzz")
	require.NoError(t, err)
	assert.Equal(t, core.ID("zzz"), id)

	id, err = resolveRef(ids, "0190a1-a")
	require.NoError(t, err)
	assert.Equal(t, core.ID("0190a1-aaaa"), id)

	_, err = resolveRef(ids, "0190a1")
	assert.ErrorContains(t, err, "ambiguous")
	_, err = resolveRef(ids, "0")
	assert.Error(t, err)
	_, err = resolveRef(ids, "nope")
	assert.Error(t, err)
}

func TestCLI_ConfigShowAppliesFlags(t *testing.T) {
	dir := profile(t)
	out := mustRun(t, dir, "config", "show", "--adapter", "memory")
	assert.Contains(t, out, "data_dir: "+dir)
	assert.Contains(t, out, "adapter: memory")
	assert.Contains(t, out, "login_delay: 0s")
}
