// Package ingest reads the combined export CSV into header-keyed rows.
// The header names are fixed contract strings owned by the extraction that
// produces the file; this package only enforces that a header row exists.
package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/govcongiants/encore/pkg/errors"
)

// ReadFile reads the export at path. A missing file is the pipeline's one
// fatal input error: it aborts the run before any processing.
func ReadFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError("open", path, errors.ErrNotFound)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return rows, nil
}

// Read parses CSV rows into maps keyed by the header row. Short rows are
// tolerated (missing cells read as empty); extra columns beyond the header
// are ignored.
func Read(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
