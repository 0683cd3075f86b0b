// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, false)).With("pkg", "staking")

	l.Info("emitted", "checkpoint", 3, "reward", uint256.NewInt(290070))

	out := buf.String()
	assert.Contains(t, out, "INFO ")
	assert.Contains(t, out, "emitted")
	assert.Contains(t, out, "pkg=staking")
	assert.Contains(t, out, "checkpoint=3")
	assert.Contains(t, out, "reward=290070")
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, &lvl, false))

	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown", "msg", "with spaces")
	assert.Contains(t, buf.String(), `msg="with spaces"`)
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(JSONHandler(&buf))

	l.Debug("compound", "stakers", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["lvl"])
	assert.Equal(t, "compound", rec["msg"])
	assert.Equal(t, float64(2), rec["stakers"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(LogfmtHandler(&buf)))
	defer SetDefault(prev)

	logger.Info("hello", "n", 1)
	assert.Contains(t, buf.String(), "pkg=test")
	assert.Contains(t, buf.String(), "n=1")
	assert.Contains(t, buf.String(), "lvl=INFO")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
