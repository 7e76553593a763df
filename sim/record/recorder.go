// Package record persists simulation runs to a SQLite database for later
// analysis. Each run gets a unique ID; the runs table holds one row of
// configuration plus results per run, and the customers table holds the
// per-customer rows keyed by run ID.
package record

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/rs/xid"

	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"
)

// RunRow is one row of the runs table: the configuration and results of a
// single simulation run. Field names become column names.
type RunRow struct {
	RunID            string
	StartedAt        string
	MeanInterarrival float64
	MeanService      float64
	RunLength        int64
	Seed             int64
	ScaleFactor      float64
	Discipline       string
	MeanResponseTime float64
	Completed        int64
	Generated        int64
	Throughput       float64
	Utilization      float64
	MeanQueueLength  float64
	FinalClock       int64
}

// CustomerRow is one row of the customers table. Times are in ticks.
type CustomerRow struct {
	RunID          string
	CustomerID     int64
	ArrivalTime    int64
	ServiceBurst   int64
	ServiceStart   int64
	CompletionTime int64
	ResponseTime   int64
	QueueSeen      int64
	Completed      bool
}

// Recorder buffers run and customer rows in memory and writes them to the
// database in a single transaction at Flush. Not safe for concurrent use.
type Recorder struct {
	db        *sql.DB
	runID     string
	runs      []RunRow
	customers []CustomerRow
}

// Open opens (creating if needed) the SQLite database at path and ensures
// both tables exist.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}
	r := &Recorder{db: db, runID: xid.New().String()}
	if err := r.createTable("runs", RunRow{}); err != nil {
		db.Close()
		return nil, err
	}
	if err := r.createTable("customers", CustomerRow{}); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// RunID returns the identifier this recorder stamps on every row.
func (r *Recorder) RunID() string {
	return r.runID
}

// createTable issues CREATE TABLE IF NOT EXISTS with one column per struct
// field, named after the field.
func (r *Recorder) createTable(name string, sample any) error {
	cols := structs.Names(sample)
	stmt := "CREATE TABLE IF NOT EXISTS " + name + " (\n\t" + strings.Join(cols, ",\n\t") + "\n);"
	if _, err := r.db.Exec(stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", name, err)
	}
	return nil
}

// RecordRun buffers the run summary row. The recorder stamps the run ID and
// the wall-clock start timestamp.
func (r *Recorder) RecordRun(row RunRow) {
	row.RunID = r.runID
	row.StartedAt = time.Now().UTC().Format(time.RFC3339)
	r.runs = append(r.runs, row)
}

// RecordCustomer buffers one per-customer row keyed to this run.
func (r *Recorder) RecordCustomer(row CustomerRow) {
	row.RunID = r.runID
	r.customers = append(r.customers, row)
}

// Flush writes all buffered rows in one transaction and clears the buffers.
func (r *Recorder) Flush() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := insertRows(tx, "runs", r.runs); err != nil {
		tx.Rollback()
		return err
	}
	if err := insertRows(tx, "customers", r.customers); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rows: %w", err)
	}
	r.runs = r.runs[:0]
	r.customers = r.customers[:0]
	return nil
}

// Close flushes any buffered rows and closes the database.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		r.db.Close()
		return err
	}
	return r.db.Close()
}

// insertRows prepares one INSERT statement per table and executes it for
// every buffered row. Column order follows struct field order.
func insertRows[T any](tx *sql.Tx, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, len(structs.Names(rows[0])))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare("INSERT INTO " + table + " VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.Exec(structs.Values(row)...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}
