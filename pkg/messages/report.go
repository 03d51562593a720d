package messages

import (
	"bytes"
	"fmt"
	"io"

	xdr "github.com/rasky/go-xdr/xdr2"

	"github.com/marmos91/dapcore/internal/wire"
)

// Extension is an optional, type-tagged opaque blob attached to a report's
// metadata. The extension list's variable-length shape is what earns this
// package its one reflection-based codec: go-xdr marshals the []Extension
// slice (and its nested opaque Data) without any hand-written loop.
type Extension struct {
	Type uint16
	Data []byte
}

// ReportMetadata identifies a report and carries its timestamp and
// extensions.
type ReportMetadata struct {
	ID         ReportID
	Time       Time
	Extensions []Extension
}

// Report is one client contribution: two HPKE-sealed input shares plus the
// metadata and public share needed to prepare them. TaskID is present only
// for Draft02; later drafts carry task identity at a higher protocol layer,
// so TaskIDPresent distinguishes "absent" from "zero-value".
type Report struct {
	TaskID               TaskID
	TaskIDPresent        bool
	Metadata             ReportMetadata
	PublicShare          []byte
	EncryptedInputShares [2][]byte
}

// Encode writes r's metadata (ID, time, extensions) to buf using the
// reflection-based XDR codec for the extension list.
func (m ReportMetadata) Encode(buf *bytes.Buffer) error {
	if err := m.ID.Encode(buf); err != nil {
		return fmt.Errorf("encode report metadata id: %w", err)
	}
	if err := m.Time.Encode(buf); err != nil {
		return fmt.Errorf("encode report metadata time: %w", err)
	}
	if _, err := xdr.Marshal(buf, m.Extensions); err != nil {
		return fmt.Errorf("encode report metadata extensions: %w", err)
	}
	return nil
}

// DecodeReportMetadata reads a ReportMetadata from r.
func DecodeReportMetadata(r io.Reader) (ReportMetadata, error) {
	var m ReportMetadata
	var err error
	if m.ID, err = DecodeReportID(r); err != nil {
		return m, err
	}
	if m.Time, err = DecodeTime(r); err != nil {
		return m, err
	}
	if _, err := xdr.Unmarshal(r, &m.Extensions); err != nil {
		return m, fmt.Errorf("decode report metadata extensions: %w", err)
	}
	return m, nil
}

// Encode writes the full report, including TaskID only when TaskIDPresent.
func (r Report) Encode(buf *bytes.Buffer) error {
	if err := wire.WriteBool(buf, r.TaskIDPresent); err != nil {
		return fmt.Errorf("encode report task id presence: %w", err)
	}
	if r.TaskIDPresent {
		if err := r.TaskID.Encode(buf); err != nil {
			return fmt.Errorf("encode report task id: %w", err)
		}
	}
	if err := r.Metadata.Encode(buf); err != nil {
		return err
	}
	if err := wire.WriteOpaque(buf, r.PublicShare); err != nil {
		return fmt.Errorf("encode report public share: %w", err)
	}
	for i, share := range r.EncryptedInputShares {
		if err := wire.WriteOpaque(buf, share); err != nil {
			return fmt.Errorf("encode report input share %d: %w", i, err)
		}
	}
	return nil
}

// DecodeReport reads a Report from r.
func DecodeReport(r io.Reader) (Report, error) {
	var rep Report
	present, err := wire.DecodeBool(r)
	if err != nil {
		return rep, fmt.Errorf("decode report task id presence: %w", err)
	}
	rep.TaskIDPresent = present
	if present {
		if rep.TaskID, err = DecodeTaskID(r); err != nil {
			return rep, err
		}
	}
	if rep.Metadata, err = DecodeReportMetadata(r); err != nil {
		return rep, err
	}
	if rep.PublicShare, err = wire.DecodeOpaque(r); err != nil {
		return rep, fmt.Errorf("decode report public share: %w", err)
	}
	for i := range rep.EncryptedInputShares {
		share, err := wire.DecodeOpaque(r)
		if err != nil {
			return rep, fmt.Errorf("decode report input share %d: %w", i, err)
		}
		rep.EncryptedInputShares[i] = share
	}
	return rep, nil
}
