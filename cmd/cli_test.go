package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/holameeto/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(_ context.Context, url string) error {
	f.opened = append(f.opened, url)
	return nil
}

func stubDesktop(t *testing.T) (*fakeClipboard, *fakeOpener) {
	t.Helper()

	board := &fakeClipboard{}
	opener := &fakeOpener{}

	prevClipboard, prevOpener := newClipboard, newOpener
	newClipboard = func() ports.Clipboard { return board }
	newOpener = func() ports.BrowserOpener { return opener }
	t.Cleanup(func() {
		newClipboard, newOpener = prevClipboard, prevOpener
	})

	return board, opener
}

func TestNewPrintsLinkAndStoresHistory(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	stdout, stderr, err := executeCLI(t, home, "new", "--label", "Team Sync!")
	require.NoError(t, err)
	assert.Regexp(t, `^https://meet\.jit\.si/HolaMeeto-Team_Sync-[0-9a-z]{7}\n$`, stdout)
	assert.Contains(t, stderr, "Meeting Link Generated!")

	raw, err := os.ReadFile(filepath.Join(home, ".holameeto", "slots", "holaMeetoHistory.json"))
	require.NoError(t, err)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, strings.TrimSpace(stdout), stored[0]["link"])
	assert.Equal(t, "Team Sync!", stored[0]["nickname"])
	assert.NotEmpty(t, stored[0]["id"])
	assert.NotZero(t, stored[0]["timestamp"])
}

func TestNewAcceptsPositionalLabelAndJSON(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	stdout, _, err := executeCLI(t, home, "new", "Design", "review", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	var out recordOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "Design review", out.Label)
	assert.Regexp(t, `^https://meet\.jit\.si/HolaMeeto-Design_review-[0-9a-z]{7}$`, out.Link)
}

func TestNewWithCopyAndOpen(t *testing.T) {
	home := t.TempDir()
	board, opener := stubDesktop(t)

	stdout, stderr, err := executeCLI(t, home, "new", "--copy", "--open")
	require.NoError(t, err)

	link := strings.TrimSpace(stdout)
	assert.Equal(t, []string{link}, board.copied)
	assert.Equal(t, []string{link}, opener.opened)
	assert.Contains(t, stderr, "Copied to Clipboard!")
}

func TestListRendersHistory(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	_, _, err := executeCLI(t, home, "new", "--label", "Retro")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "new")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Recent Meetings")
	assert.Contains(t, stdout, "2. Retro - HolaMeeto-Retro-")
	assert.Contains(t, stdout, "Showing 2 of your last 7 meetings.")
}

func TestListEmptyHistory(t *testing.T) {
	stubDesktop(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No recent meetings found.")
}

func TestListKeepsSevenMostRecent(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	var links []string
	for i := 0; i < 8; i++ {
		stdout, _, err := executeCLI(t, home, "new", "-q")
		require.NoError(t, err)
		links = append(links, strings.TrimSpace(stdout))
	}

	stdout, _, err := executeCLI(t, home, "list", "--json")
	require.NoError(t, err)

	var out []recordOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 7)
	assert.Equal(t, links[7], out[0].Link)
	assert.Equal(t, links[1], out[6].Link)
}

func TestCurrentCopyShareOpen(t *testing.T) {
	home := t.TempDir()
	board, opener := stubDesktop(t)

	first, _, err := executeCLI(t, home, "new")
	require.NoError(t, err)
	second, _, err := executeCLI(t, home, "new")
	require.NoError(t, err)
	firstLink := strings.TrimSpace(first)
	secondLink := strings.TrimSpace(second)

	stdout, _, err := executeCLI(t, home, "current")
	require.NoError(t, err)
	assert.Equal(t, secondLink+"\n", stdout)

	_, _, err = executeCLI(t, home, "copy", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{firstLink}, board.copied)

	stdout, stderr, err := executeCLI(t, home, "share")
	require.NoError(t, err)
	assert.Equal(t, "Let's meet! Join here: "+secondLink+"\n", stdout)
	assert.Contains(t, stderr, "Sharing Not Supported")
	assert.Equal(t, []string{firstLink, secondLink}, board.copied)

	_, _, err = executeCLI(t, home, "open", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{secondLink}, opener.opened)
}

func TestCopyFailureExitsWithError(t *testing.T) {
	home := t.TempDir()
	board, _ := stubDesktop(t)
	board.err = errors.New("no clipboard utility")

	_, _, err := executeCLI(t, home, "new")
	require.NoError(t, err)

	_, stderr, err := executeCLI(t, home, "copy")
	require.Error(t, err)
	assert.Contains(t, stderr, "Copy Failed")
}

func TestRemoveAndClear(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	_, _, err := executeCLI(t, home, "new", "--label", "keep")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "new", "--label", "drop")
	require.NoError(t, err)

	stdout, stderr, err := executeCLI(t, home, "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed ")
	assert.Contains(t, stderr, "Meeting Removed")

	stdout, _, err = executeCLI(t, home, "list", "--json")
	require.NoError(t, err)
	var out []recordOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].Label)

	_, _, err = executeCLI(t, home, "remove", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meeting record not found")

	_, stderr, err = executeCLI(t, home, "clear")
	require.NoError(t, err)
	assert.Contains(t, stderr, "History Cleared")

	raw, err := os.ReadFile(filepath.Join(home, ".holameeto", "slots", "holaMeetoHistory.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCurrentOnEmptyHistory(t *testing.T) {
	stubDesktop(t)

	_, _, err := executeCLI(t, t.TempDir(), "current")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meeting history is empty")
}

func TestCorruptHistoryIsReportedAndReplaced(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)

	slotsDir := filepath.Join(home, ".holameeto", "slots")
	require.NoError(t, os.MkdirAll(slotsDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(slotsDir, "holaMeetoHistory.json"), []byte("{not json"), 0o600))

	stdout, stderr, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No recent meetings found.")
	assert.Contains(t, stderr, "Error Loading History")

	raw, err := os.ReadFile(filepath.Join(slotsDir, "holaMeetoHistory.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))

	_, _, err = executeCLI(t, home, "new")
	require.NoError(t, err)

	raw, err = os.ReadFile(filepath.Join(slotsDir, "holaMeetoHistory.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestBackendsFromConfig(t *testing.T) {
	for _, backend := range []string{"toml", "sqlite", "chain"} {
		t.Run(backend, func(t *testing.T) {
			home := t.TempDir()
			stubDesktop(t)
			require.NoError(t, writeConfigFixture(home, "[storage]\nbackend = \""+backend+"\"\n"))

			first, _, err := executeCLI(t, home, "new", "-q")
			require.NoError(t, err)

			stdout, _, err := executeCLI(t, home, "current")
			require.NoError(t, err)
			assert.Equal(t, first, stdout)
		})
	}
}

func TestUnknownBackendFailsWiring(t *testing.T) {
	home := t.TempDir()
	stubDesktop(t)
	require.NoError(t, writeConfigFixture(home, "[storage]\nbackend = \"cloud\"\n"))

	_, _, err := executeCLI(t, home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestQuietSuppressesSuccessNotifications(t *testing.T) {
	stubDesktop(t)

	_, stderr, err := executeCLI(t, t.TempDir(), "new", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "hm "))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(home, content string) error {
	configDir := filepath.Join(home, ".holameeto")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o600)
}
