package report

import (
	"fmt"
	"io"
	"os"
	"time"
)

const logTimestampLayout = "2006-01-02 15:04:05"

// LogSink appends timestamped human-readable lines to the scan log and
// mirrors them to a console writer. Like the CSV sink it is append-only:
// a crashed run leaves a valid prefix.
type LogSink struct {
	path    string
	file    *os.File
	console io.Writer
	now     func() time.Time
}

// OpenLog creates the log file at path. Lines are duplicated to console
// (pass nil to suppress mirroring, as tests do).
func OpenLog(path string, console io.Writer) (*LogSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log sink %q: %w", path, err)
	}
	return &LogSink{path: path, file: f, console: console, now: time.Now}, nil
}

// Printf appends one timestamped line.
func (s *LogSink) Printf(format string, args ...any) error {
	line := fmt.Sprintf("[%s] %s\n", s.now().Format(logTimestampLayout), fmt.Sprintf(format, args...))
	if s.console != nil {
		fmt.Fprint(s.console, line)
	}
	if _, err := s.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to log sink %q: %w", s.path, err)
	}
	return nil
}

// Warnf appends one timestamped line with a WARN: prefix.
func (s *LogSink) Warnf(format string, args ...any) error {
	return s.Printf("WARN: "+format, args...)
}

// Path returns the file path of the sink.
func (s *LogSink) Path() string {
	return s.path
}

// Close closes the underlying file.
func (s *LogSink) Close() error {
	return s.file.Close()
}
