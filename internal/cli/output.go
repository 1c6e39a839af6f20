package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// WriteRecords serializes records as indented JSON. With printOnly set or no
// path configured the records go to stdout; otherwise they are written to
// path and a one-line summary goes to stderr. limit > 0 truncates the slice
// before writing.
func WriteRecords(records []event.Record, path string, limit int, printOnly bool) error {
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	if printOnly || path == "" {
		return writeJSON(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeJSON(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d events)\n", path, len(records))
	return nil
}

// writeJSON outputs records as 2-space indented JSON
func writeJSON(w io.Writer, records []event.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
