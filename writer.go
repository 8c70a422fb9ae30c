package encore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/govcongiants/encore/pkg/errors"
	"github.com/govcongiants/encore/pkg/report"
)

// jsPrefix wraps the dataset for direct inclusion by the report pages.
const jsPrefix = "window.REPORT_DATA = "

// MarshalJS renders the dataset as the report-data.js document. Map keys
// serialize sorted and HTML escaping is off, so identical datasets always
// produce identical bytes.
func MarshalJS(ds *report.Dataset) ([]byte, error) {
	body, err := marshal(ds, false)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(jsPrefix) + len(body) + 2)
	buf.WriteString(jsPrefix)
	buf.Write(body)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// MarshalJSON renders the dataset as a bare indented JSON document.
func MarshalJSON(ds *report.Dataset) ([]byte, error) {
	return marshal(ds, true)
}

func marshal(ds *report.Dataset, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ds); err != nil {
		return nil, err
	}
	// Encode appends a newline; the js wrapper supplies its own.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write renders the dataset in the configured format and writes it to the
// configured output path in one shot. The document is marshaled fully
// before the file is touched, so a fatal error never leaves partial output.
func (p *Pipeline) Write(ds *report.Dataset) error {
	var (
		data []byte
		err  error
	)
	switch p.config.Format {
	case "json":
		data, err = MarshalJSON(ds)
	default:
		data, err = MarshalJS(ds)
	}
	if err != nil {
		return errors.WrapIO("encode", p.config.Output, err)
	}
	if p.config.Format == "json" {
		data = append(data, '\n')
	}

	if dir := filepath.Dir(p.config.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	return errors.WrapIO("write", p.config.Output, os.WriteFile(p.config.Output, data, 0o644))
}
