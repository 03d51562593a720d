// Package messages implements the DAP wire data model: identifiers, time
// and protocol-version scalars, reports and their metadata, and the
// query/selector/batch-bucket tagged unions. Encoding follows
// internal/wire's big-endian, length-prefixed conventions.
package messages

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/marmos91/dapcore/internal/wire"
)

// TaskIDLen and BatchIDLen are the byte lengths of task and batch
// identifiers; ReportIDLen and AggregationJobIDLen are the shorter
// per-report/per-job identifiers.
const (
	TaskIDLen           = 32
	BatchIDLen          = 32
	ReportIDLen         = 16
	AggregationJobIDLen = 16
)

// TaskID uniquely names a DAP task.
type TaskID [TaskIDLen]byte

// BatchID names a FixedSize query mode batch.
type BatchID [BatchIDLen]byte

// ReportID uniquely names one client report within a task.
type ReportID [ReportIDLen]byte

// AggregationJobID uniquely names one aggregation job.
type AggregationJobID [AggregationJobIDLen]byte

func (id TaskID) String() string           { return hex.EncodeToString(id[:]) }
func (id BatchID) String() string          { return hex.EncodeToString(id[:]) }
func (id ReportID) String() string         { return hex.EncodeToString(id[:]) }
func (id AggregationJobID) String() string { return hex.EncodeToString(id[:]) }

// Equal reports byte-wise equality.
func (id TaskID) Equal(other TaskID) bool                     { return id == other }
func (id BatchID) Equal(other BatchID) bool                   { return id == other }
func (id ReportID) Equal(other ReportID) bool                 { return id == other }
func (id AggregationJobID) Equal(other AggregationJobID) bool { return id == other }

// Encode writes id verbatim with no length prefix.
func (id TaskID) Encode(buf *bytes.Buffer) error  { return wire.WriteFixed(buf, id[:]) }
func (id BatchID) Encode(buf *bytes.Buffer) error { return wire.WriteFixed(buf, id[:]) }
func (id ReportID) Encode(buf *bytes.Buffer) error { return wire.WriteFixed(buf, id[:]) }
func (id AggregationJobID) Encode(buf *bytes.Buffer) error {
	return wire.WriteFixed(buf, id[:])
}

// DecodeTaskID reads a TaskID from r.
func DecodeTaskID(r io.Reader) (TaskID, error) {
	var id TaskID
	if err := wire.DecodeFixed(r, id[:]); err != nil {
		return id, fmt.Errorf("decode task id: %w", err)
	}
	return id, nil
}

// DecodeBatchID reads a BatchID from r.
func DecodeBatchID(r io.Reader) (BatchID, error) {
	var id BatchID
	if err := wire.DecodeFixed(r, id[:]); err != nil {
		return id, fmt.Errorf("decode batch id: %w", err)
	}
	return id, nil
}

// DecodeReportID reads a ReportID from r.
func DecodeReportID(r io.Reader) (ReportID, error) {
	var id ReportID
	if err := wire.DecodeFixed(r, id[:]); err != nil {
		return id, fmt.Errorf("decode report id: %w", err)
	}
	return id, nil
}

// DecodeAggregationJobID reads an AggregationJobID from r.
func DecodeAggregationJobID(r io.Reader) (AggregationJobID, error) {
	var id AggregationJobID
	if err := wire.DecodeFixed(r, id[:]); err != nil {
		return id, fmt.Errorf("decode aggregation job id: %w", err)
	}
	return id, nil
}
