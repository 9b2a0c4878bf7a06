package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-moderation/internal/screening"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func TestSeedThenScreen(t *testing.T) {
	t.Setenv("MODERATION_LOG_LEVEL", "error")
	dbPath := filepath.Join(t.TempDir(), "moderation.db")

	assert.Equal(t, "inserted 10 keyword rules\n", runCLI(t, "seed", "--db", dbPath))
	assert.Equal(t, "inserted 0 keyword rules\n", runCLI(t, "seed", "--db", dbPath))

	var result screening.Result
	out := runCLI(t, "screen", "--db", dbPath, "join", "my", "crypto", "giveaway")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.IsFlagged)
	assert.Equal(t, []string{"crypto giveaway"}, result.MatchedKeywords)
	assert.Equal(t, 4, result.Severity)
}

func TestScreenRequiresText(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"screen"})
	assert.Error(t, root.Execute())
}
