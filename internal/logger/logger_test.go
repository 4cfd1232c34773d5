package logger

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesKeepLevelMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.WithFields(logrus.Fields{"key": "checkered-texture.png", "bytes": 42}).Info("texture fetched")
	l.Warn("fallback texture")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "[info] texture fetched bytes=42 key=checkered-texture.png", lines[0])
	assert.Equal(t, "[warning] fallback texture", lines[1])
	assert.Contains(t, buf.String(), "msg=\"texture fetched\"")
}

func TestHistoryIsBounded(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	for i := 0; i < maxLines+25; i++ {
		l.Infof("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.Equal(t, "[info] line 25", lines[0])
	assert.Equal(t, fmt.Sprintf("[info] line %d", maxLines+24), lines[len(lines)-1])

	tail := l.Tail(3)
	assert.Equal(t, lines[len(lines)-3:], tail)
	assert.Len(t, l.Tail(maxLines*2), maxLines)
}
