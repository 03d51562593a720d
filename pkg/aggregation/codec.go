package aggregation

import (
	"bytes"
	"fmt"

	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
)

// Encode serializes a HelperState so it can be offloaded to the Leader
// between rounds and later resumed with DecodeHelperState. cfg must be the
// same VDAF configuration the state was produced under; each entry carries
// a fingerprint of cfg (see vdaf.EncodePrepareState), so DecodeHelperState
// under a different cfg fails rather than silently misinterpreting bytes.
func (s *HelperState) Encode(cfg vdaf.Config) ([]byte, error) {
	var buf bytes.Buffer

	if err := messages.EncodePartialBatchSelector(&buf, s.PartBatchSel); err != nil {
		return nil, fmt.Errorf("aggregation: encode helper state: %w", err)
	}

	for i, entry := range s.Entries {
		if err := vdaf.EncodePrepareState(&buf, cfg, entry.VdafState); err != nil {
			return nil, fmt.Errorf("aggregation: encode helper state entry %d: %w", i, err)
		}
		if err := entry.Time.Encode(&buf); err != nil {
			return nil, fmt.Errorf("aggregation: encode helper state entry %d time: %w", i, err)
		}
		if err := entry.ReportID.Encode(&buf); err != nil {
			return nil, fmt.Errorf("aggregation: encode helper state entry %d report id: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// DecodeHelperState reads a HelperState written by Encode under the same
// cfg. A cfg mismatched with the one Encode used is rejected per-entry by
// vdaf.DecodePrepareState's fingerprint check. Trailing bytes after the
// last entry are a decode error.
func DecodeHelperState(cfg vdaf.Config, data []byte) (*HelperState, error) {
	r := bytes.NewReader(data)

	partBatchSel, err := messages.DecodePartialBatchSelector(r)
	if err != nil {
		return nil, fmt.Errorf("aggregation: decode helper state: %w", err)
	}

	var entries []HelperStateEntry
	for r.Len() > 0 {
		vdafState, err := vdaf.DecodePrepareState(r, cfg)
		if err != nil {
			return nil, fmt.Errorf("aggregation: decode helper state entry %d: %w", len(entries), err)
		}
		t, err := messages.DecodeTime(r)
		if err != nil {
			return nil, fmt.Errorf("aggregation: decode helper state entry %d time: %w", len(entries), err)
		}
		reportID, err := messages.DecodeReportID(r)
		if err != nil {
			return nil, fmt.Errorf("aggregation: decode helper state entry %d report id: %w", len(entries), err)
		}
		entries = append(entries, HelperStateEntry{VdafState: vdafState, Time: t, ReportID: reportID})
	}

	return &HelperState{PartBatchSel: partBatchSel, Entries: entries}, nil
}
