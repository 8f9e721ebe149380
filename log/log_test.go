// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(JSONHandler(buf))
	l.Info("staked", "amount", big.NewInt(100), "reward", uint256.NewInt(7), "nilint", (*big.Int)(nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "staked", rec["msg"])
	assert.Equal(t, "100", rec["amount"])
	assert.Equal(t, "7", rec["reward"])
	assert.Equal(t, "<nil>", rec["nilint"])
	assert.Contains(t, rec, "t")
}

func TestLogfmtHandlerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LogfmtHandlerWithLevel(buf, LevelWarn))
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "k", 1)
	assert.Contains(t, buf.String(), "lvl=warn")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=1")
}

func TestTerminalHandlerNoColor(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(TerminalHandler(buf, LevelDebug))
	l.Debug("hello", "amount", big.NewInt(42))
	l.Trace("quiet")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "amount=42")
	assert.NotContains(t, out, "quiet")
	assert.NotContains(t, out, "\x1b[")
}

func TestWithContextFollowsDefault(t *testing.T) {
	old := Root()
	defer SetDefault(old)

	pkgLogger := WithContext("pkg", "test")

	buf := &bytes.Buffer{}
	SetDefault(NewLogger(JSONHandler(buf)))
	pkgLogger.Info("msg")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "test", rec["pkg"])
}

func TestOddArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	NewLogger(LogfmtHandler(buf)).Info("odd", "key")
	assert.Contains(t, buf.String(), "LOG_ERROR")
}

func TestLevels(t *testing.T) {
	assert.Equal(t, LevelCrit, FromVerbosity(0))
	assert.Equal(t, LevelInfo, FromVerbosity(3))
	assert.Equal(t, LevelTrace, FromVerbosity(9))

	for _, l := range []slog.Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCrit} {
		parsed, ok := ParseLevel(LevelString(l))
		assert.True(t, ok)
		assert.Equal(t, l, parsed)
	}
	_, ok := ParseLevel("nope")
	assert.False(t, ok)
}
