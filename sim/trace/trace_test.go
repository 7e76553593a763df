package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() *Trace {
	tr := New()
	tr.Record(CustomerRecord{
		CustomerID:     0,
		ArrivalTime:    0,
		ServiceBurst:   10,
		ServiceStart:   0,
		CompletionTime: 10,
		ResponseTime:   10,
		QueueSeen:      0,
		Completed:      true,
	})
	tr.Record(CustomerRecord{
		CustomerID:     1,
		ArrivalTime:    1,
		ServiceBurst:   2,
		ServiceStart:   10,
		CompletionTime: 12,
		ResponseTime:   11,
		QueueSeen:      0,
		Completed:      true,
	})
	tr.Record(CustomerRecord{
		CustomerID:   2,
		ArrivalTime:  2,
		ServiceBurst: 5,
		QueueSeen:    1,
	})
	return tr
}

func TestTrace_WriteReadCSV_Roundtrip(t *testing.T) {
	// GIVEN a trace with completed and incomplete rows
	tr := sampleTrace()
	path := filepath.Join(t.TempDir(), "trace.csv")

	// WHEN written and read back
	require.NoError(t, tr.WriteCSV(path))
	got, err := ReadCSV(path)
	require.NoError(t, err)

	// THEN the records survive unchanged
	assert.Equal(t, tr.Records, got.Records)
}

func TestTrace_WriteCSV_HeaderRow(t *testing.T) {
	tr := New()
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, tr.WriteCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"customer_id,arrival_time,service_burst,service_start,completion_time,response_time,queue_len_at_arrival,completed\n",
		string(data))
}

func TestReadCSV_MissingFile_ReturnsError(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestReadCSV_EmptyFile_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadCSV_WrongColumnCount_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestReadCSV_MalformedCell_ReturnsError(t *testing.T) {
	// GIVEN a file with the right shape but a non-numeric arrival time
	path := filepath.Join(t.TempDir(), "bad.csv")
	row := "0,notanumber,10,0,10,10,0,true\n"
	content := "customer_id,arrival_time,service_burst,service_start,completion_time,response_time,queue_len_at_arrival,completed\n" + row
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arrival_time")
}
