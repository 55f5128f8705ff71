package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"altscore/internal/features"
)

// LoadCSV reads a reference population from a feature CSV. The header names
// the columns; canonical feature columns are picked up by name and anything
// else (business ids, labels) is ignored. Missing canonical columns default
// to zero, matching how the assembler fills absent ad-spend data.
func LoadCSV(path string) (*Population, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference csv: %w", err)
	}
	defer f.Close()

	p, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read reference csv %s: %w", path, err)
	}
	return p, nil
}

// ReadCSV parses the population from an open reader.
func ReadCSV(r io.Reader) (*Population, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var vectors []features.Vector
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		m := make(map[string]float64, len(features.Columns()))
		for _, col := range features.Columns() {
			i, ok := index[col]
			if !ok {
				continue
			}
			val, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, col, err)
			}
			m[col] = val
		}
		vectors = append(vectors, features.FromMap(m))
	}

	return NewPopulation(vectors), nil
}
