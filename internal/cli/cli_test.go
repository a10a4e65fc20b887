package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDay("")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.UTC, d.Location())

	_, err = parseDay("09/03/2025")
	assert.Error(t, err)
}

func TestInputText(t *testing.T) {
	got, err := inputText([]string{"bench", "3x5", "100kg"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "bench 3x5 100kg", got)

	got, err = inputText(nil, strings.NewReader("  squats 5x5\n"))
	require.NoError(t, err)
	assert.Equal(t, "squats 5x5", got)

	_, err = inputText(nil, strings.NewReader(" \n"))
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	for answer, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false} {
		var out bytes.Buffer
		assert.Equal(t, want, confirm(strings.NewReader(answer), &out, "Save?"), "answer %q", answer)
		assert.Equal(t, "Save? [y/N] ", out.String())
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "bench 3x5", oneLine("bench\n  3x5", 20))
	assert.Equal(t, "abcd…", oneLine("abcdefgh", 5))
	assert.Equal(t, "-", orDash(0))
	assert.Equal(t, "8", orDash(8))
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"log", "diet", "history", "report", "resolve", "catalog", "backfill", "merge-exercise", "redate", "mcp", "import-alpha"}
	for _, name := range want {
		cmd, _, err := RootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
