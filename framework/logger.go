package framework

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// CapturedMessage is one structured log event; Data is the event as a JSON object.
type CapturedMessage struct {
	Time  time.Time
	Level zerolog.Level
	Data  []byte
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates log events in memory so they can be shown later, typically only
// if the test fails. The zero value is ready to use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

// Write implements io.Writer so the logger can be the output of a zerolog.Logger.
func (l *CapturingLogger) Write(p []byte) (int, error) {
	return l.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter.
func (l *CapturingLogger) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	data := append([]byte(nil), p...)
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Level: level, Data: data})
	l.lock.Unlock()
	return len(p), nil
}

// Logger returns a zerolog.Logger whose events are captured by l.
func (l *CapturingLogger) Logger() zerolog.Logger {
	return zerolog.New(l).Level(zerolog.TraceLevel).With().Timestamp().Logger()
}

// Printf records an unstructured debug message.
func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	logger := l.Logger()
	logger.Debug().Msg(fmt.Sprintf(message, args...))
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// AtLeast returns only the messages at or above the given level.
func (output CapturedOutput) AtLeast(level zerolog.Level) CapturedOutput {
	var ret CapturedOutput
	for _, m := range output {
		if m.Level >= level {
			ret = append(ret, m)
		}
	}
	return ret
}

// Dump writes the messages in human-readable form, one per line, each starting with prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	console := zerolog.ConsoleWriter{
		Out:        &prefixWriter{dest: dest, prefix: prefix},
		NoColor:    true,
		TimeFormat: timestampFormat,
	}
	for _, m := range output {
		if _, err := console.Write(m.Data); err != nil {
			fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), string(m.Data))
		}
	}
}

type prefixWriter struct {
	dest   io.Writer
	prefix string
}

func (w *prefixWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(w.dest, w.prefix); err != nil {
		return 0, err
	}
	return w.dest.Write(p)
}
