// Package ingest reads timestamped samples from CSV files and drives them
// into the source nodes (pwp.PWLSource / pwp.PWCSource) that turn them into
// intervals.
//
// CSV, not a third-party parsing library, is the deliberate choice here:
// every domain dependency surfaced by the retrieved example pack is a
// transport/storage/serialization concern (DB drivers, wire codecs, cloud
// SDKs) with no CSV-specific entry, and encoding/csv already handles this
// format's only real wrinkle (quoted fields, variable column counts)
// correctly — reaching for a library here would just be an indirection
// around a single stdlib package built for exactly this.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Sample is one parsed (time, value) row. A second value column (for a
// two-signal file) is optional.
type Sample struct {
	Time   float64
	Value  float64
	Value2 float64
	HasTwo bool
}

// Receiver is the subset of pwp.PWLSource/pwp.PWCSource's API a CSV feed
// drives.
type Receiver interface {
	Receive(time, value float64) error
}

// ReadCSV parses path as a two- or three-column (time,value[,value2]) CSV
// file, optionally preceded by a header row. Malformed rows are skipped with
// a warning rather than aborting the whole file, so one bad line in a long
// trace doesn't discard everything after it.
func ReadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var samples []Sample
	row := 0
	for {
		row++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
		}
		if row == 1 && isHeaderRow(record) {
			continue
		}
		if len(record) < 2 {
			logrus.Warnf("%s: row %d: expected at least 2 columns, got %d, skipping", path, row, len(record))
			continue
		}
		sample, err := parseRow(record)
		if err != nil {
			logrus.Warnf("%s: row %d: %v, skipping", path, row, err)
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// isHeaderRow reports whether record looks like a column-name header
// ("time,value" or "time,v1,v2") rather than data: its first column fails to
// parse as a float. Only checked on row 1, so malformed rows after it still
// fall through to ReadCSV's normal skip-with-warning path; a row 1 whose
// first column does not parse is skipped as a header, without a warning.
func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(record[0], 64)
	return err != nil
}

func parseRow(record []string) (Sample, error) {
	t, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid time %q: %w", record[0], err)
	}
	v, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid value %q: %w", record[1], err)
	}
	sample := Sample{Time: t, Value: v}
	if len(record) >= 3 && record[2] != "" {
		v2, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return Sample{}, fmt.Errorf("invalid value2 %q: %w", record[2], err)
		}
		sample.Value2 = v2
		sample.HasTwo = true
	}
	return sample, nil
}

// Drive feeds samples into receiver in order, stopping at the first error.
func Drive(receiver Receiver, samples []Sample) error {
	for _, s := range samples {
		if err := receiver.Receive(s.Time, s.Value); err != nil {
			return fmt.Errorf("at t=%g: %w", s.Time, err)
		}
	}
	return nil
}
