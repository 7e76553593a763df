package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Trace collects per-customer records during a simulation run.
// Records arrive in completion order, followed by any customers left in the
// system when the end sentinel fired.
type Trace struct {
	Records []CustomerRecord
}

// New creates a Trace ready for recording.
func New() *Trace {
	return &Trace{Records: make([]CustomerRecord, 0)}
}

// Record appends one customer record.
func (t *Trace) Record(rec CustomerRecord) {
	t.Records = append(t.Records, rec)
}

// csvHeader is the column order used by WriteCSV and ReadCSV.
var csvHeader = []string{
	"customer_id",
	"arrival_time",
	"service_burst",
	"service_start",
	"completion_time",
	"response_time",
	"queue_len_at_arrival",
	"completed",
}

// WriteCSV writes the trace to path, one row per record, with a header.
func (t *Trace) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}
	for _, rec := range t.Records {
		row := []string{
			strconv.FormatInt(rec.CustomerID, 10),
			strconv.FormatInt(rec.ArrivalTime, 10),
			strconv.FormatInt(rec.ServiceBurst, 10),
			strconv.FormatInt(rec.ServiceStart, 10),
			strconv.FormatInt(rec.CompletionTime, 10),
			strconv.FormatInt(rec.ResponseTime, 10),
			strconv.Itoa(rec.QueueSeen),
			strconv.FormatBool(rec.Completed),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing trace row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing trace file: %w", err)
	}
	return nil
}

// ReadCSV loads a trace previously written by WriteCSV.
func ReadCSV(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trace file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace file %s is empty", path)
	}
	if len(rows[0]) != len(csvHeader) {
		return nil, fmt.Errorf("trace file %s has %d columns, want %d", path, len(rows[0]), len(csvHeader))
	}

	t := New()
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		t.Record(rec)
	}
	return t, nil
}

func parseRow(row []string) (CustomerRecord, error) {
	var rec CustomerRecord
	ints := []*int64{
		&rec.CustomerID,
		&rec.ArrivalTime,
		&rec.ServiceBurst,
		&rec.ServiceStart,
		&rec.CompletionTime,
		&rec.ResponseTime,
	}
	for i, dst := range ints {
		v, err := strconv.ParseInt(row[i], 10, 64)
		if err != nil {
			return rec, fmt.Errorf("column %s: %w", csvHeader[i], err)
		}
		*dst = v
	}
	queueSeen, err := strconv.Atoi(row[6])
	if err != nil {
		return rec, fmt.Errorf("column %s: %w", csvHeader[6], err)
	}
	rec.QueueSeen = queueSeen
	completed, err := strconv.ParseBool(row[7])
	if err != nil {
		return rec, fmt.Errorf("column %s: %w", csvHeader[7], err)
	}
	rec.Completed = completed
	return rec, nil
}
