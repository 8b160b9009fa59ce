package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// ReadRaw reads the raw transaction feed. The feed is schemaless at
// this layer: every cell stays a string keyed by its raw header, and
// the engine decides which columns matter and how to coerce them.
func ReadRaw(r io.Reader) (*engine.RawInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read raw feed: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read raw feed header: %w", err)
	}

	in := &engine.RawInput{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read raw feed row %d: %w", len(in.Rows)+1, err)
		}
		row := make(engine.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		in.Rows = append(in.Rows, row)
	}
	return in, nil
}

// ReadRawFile reads the raw feed from a local CSV file.
func ReadRawFile(path string) (*engine.RawInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw feed: %w", err)
	}
	defer f.Close()
	return ReadRaw(f)
}
