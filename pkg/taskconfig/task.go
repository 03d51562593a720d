package taskconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
)

// TaskConfig is one task's immutable, validated parameters.
type TaskConfig struct {
	Version             messages.ProtocolVersion
	LeaderURL           string `validate:"required,url"`
	HelperURL           string `validate:"required,url"`
	TimePrecision       messages.Duration `validate:"required"`
	Expiration          messages.Time
	MinBatchSize        uint64 `validate:"required"`
	Query               messages.QueryConfig
	Vdaf                vdaf.Config
	VdafVerifyKey       vdaf.VerifyKey
	CollectorHpkeConfig []byte
}

// Validate checks struct-tag invariants plus the invariants the tags can't
// express: a non-zero time precision, a verify-key length matching the
// selected VDAF, and a recognized query mode. It does not check that the
// time precision divides any time boundary; batch.SpanForSelector rejects
// a collect interval whose start or duration the time precision does not
// divide.
func (t *TaskConfig) Validate() error {
	if err := validate.Struct(t); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			return fmt.Errorf("taskconfig: invalid task config: %w", err)
		}
	}
	if t.TimePrecision == 0 {
		return fmt.Errorf("taskconfig: time_precision must be > 0")
	}
	if err := vdaf.ValidateVerifyKey(t.Vdaf, t.VdafVerifyKey); err != nil {
		return fmt.Errorf("taskconfig: %w", err)
	}
	switch t.Query.(type) {
	case messages.TimeIntervalQueryConfig, messages.FixedSizeQueryConfig:
	default:
		return fmt.Errorf("taskconfig: unrecognized query config %T", t.Query)
	}
	return nil
}

// TruncateTime returns the start of the TimeInterval bucket containing t:
// t - (t mod time_precision).
func (t *TaskConfig) TruncateTime(ts messages.Time) messages.Time {
	return ts - messages.Time(uint64(ts)%uint64(t.TimePrecision))
}

// IsExpired reports whether now is past the task's expiration; expired
// tasks reject all new reports.
func (t *TaskConfig) IsExpired(now messages.Time) bool {
	return now > t.Expiration
}

// IsReportTimely reports whether a report timestamped at reportTime is
// neither too old nor too far in the future, given the global config's
// epoch duration and future-skew bound.
func (t *TaskConfig) IsReportTimely(g *GlobalConfig, now, reportTime messages.Time) bool {
	if reportTime.Add(g.ReportStorageEpochDuration) < now {
		return false // too late: report is older than the storage epoch
	}
	if reportTime > now.Add(g.ReportStorageMaxFutureTimeSkew) {
		return false // too far in the future
	}
	return true
}
