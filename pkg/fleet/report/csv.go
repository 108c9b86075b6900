package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Header is the CSV column header row.
const Header = "cluster,context,namespace,pod,node,hostNetwork,ownerKind,ownerName"

// CSVSink appends pod records to a CSV file. Every write goes straight
// to the file descriptor, so a crashed run leaves a valid prefix of the
// final artifact: the header plus any rows written so far.
type CSVSink struct {
	path string
	file *os.File
}

// OpenCSV creates the CSV file at path, truncating any existing file.
func OpenCSV(path string) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv sink %q: %w", path, err)
	}
	return &CSVSink{path: path, file: f}, nil
}

// WriteHeader emits the column header row. Called exactly once, before
// any cluster is processed.
func (s *CSVSink) WriteHeader() error {
	return s.writeLine(Header)
}

// WriteRecord appends one row. Each field is sanitized against embedded
// separators before joining.
func (s *CSVSink) WriteRecord(r PodRecord) error {
	fields := []string{
		sanitize(r.Cluster),
		sanitize(r.Context),
		sanitize(r.Namespace),
		sanitize(r.Pod),
		sanitize(r.Node),
		strconv.FormatBool(r.HostNetwork),
		sanitize(r.OwnerKind),
		sanitize(r.OwnerName),
	}
	return s.writeLine(strings.Join(fields, ","))
}

// Path returns the file path of the sink.
func (s *CSVSink) Path() string {
	return s.path
}

// Close closes the underlying file.
func (s *CSVSink) Close() error {
	return s.file.Close()
}

func (s *CSVSink) writeLine(line string) error {
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to csv sink %q: %w", s.path, err)
	}
	return nil
}
