package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"silent":  SilentLevel,
	}
	for text, want := range cases {
		got, err := ParseLevel(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := SetLogger(NewLogger(WarnLevel, WithOutput(&buf)))
	defer SetLogger(prev)

	Infof("[TEST] hidden %d", 1)
	Warnf("[TEST] shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[TEST] shown 2")
	assert.False(t, IsDebugEnabled())
}

func TestSilentLevelDiscards(t *testing.T) {
	var buf bytes.Buffer
	prev := SetLogger(NewLogger(SilentLevel, WithOutput(&buf)))
	defer SetLogger(prev)

	Errorf("[TEST] nothing")
	assert.Empty(t, buf.String())
}
