package framework

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerRecordsLevels(t *testing.T) {
	var l CapturingLogger
	log := l.Logger()
	log.Debug().Msg("one")
	log.Info().Msg("two")
	log.Error().Str("reason", "x").Msg("three")

	out := l.Output()
	require.Len(t, out, 3)
	assert.Equal(t, zerolog.DebugLevel, out[0].Level)
	assert.Equal(t, zerolog.InfoLevel, out[1].Level)
	assert.Equal(t, zerolog.ErrorLevel, out[2].Level)

	errs := out.AtLeast(zerolog.InfoLevel)
	require.Len(t, errs, 2)
	assert.Contains(t, string(errs[1].Data), `"reason":"x"`)
}

func TestOutputIsASnapshot(t *testing.T) {
	var l CapturingLogger
	l.Printf("a")
	snapshot := l.Output()
	l.Printf("b")

	assert.Len(t, snapshot, 1)
	assert.Len(t, l.Output(), 2)
}

func TestDumpPrefixesEveryLine(t *testing.T) {
	var l CapturingLogger
	log := l.Logger()
	log.Info().Str("scenario", "s1").Msg("passed")
	log.Warn().Msg("slow")

	var buf bytes.Buffer
	l.Output().Dump(&buf, "    DEBUG ")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "    DEBUG "), line)
	}
	assert.Contains(t, lines[0], "INF")
	assert.Contains(t, lines[0], "passed")
	assert.Contains(t, lines[0], "scenario=s1")
	assert.Contains(t, lines[1], "WRN")
}
