// Package taskconfig implements the validated, immutable task and global
// configuration types every other component reads: query mode, time
// precision, batch bounds, VDAF selection, and the process-wide limits
// that bound accepted report age and collect-interval shape.
package taskconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/marmos91/dapcore/pkg/messages"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// HpkeKemID names a supported HPKE KEM algorithm, by its IANA registry
// code point.
type HpkeKemID uint16

// GlobalConfig is process-wide and immutable after load.
type GlobalConfig struct {
	ReportStorageEpochDuration     messages.Duration        `mapstructure:"report_storage_epoch_duration" yaml:"report_storage_epoch_duration" validate:"required"`
	ReportStorageMaxFutureTimeSkew messages.Duration        `mapstructure:"report_storage_max_future_time_skew" yaml:"report_storage_max_future_time_skew"`
	MaxBatchDuration               messages.Duration        `mapstructure:"max_batch_duration" yaml:"max_batch_duration" validate:"required"`
	MinBatchIntervalStart          messages.Duration        `mapstructure:"min_batch_interval_start" yaml:"min_batch_interval_start"`
	MaxBatchIntervalEnd            messages.Duration        `mapstructure:"max_batch_interval_end" yaml:"max_batch_interval_end"`
	SupportedHpkeKems              []HpkeKemID              `mapstructure:"supported_hpke_kems" yaml:"supported_hpke_kems" validate:"max=256"`
	AllowTaskprov                  bool                     `mapstructure:"allow_taskprov" yaml:"allow_taskprov"`
	TaskprovVersion                messages.ProtocolVersion `mapstructure:"taskprov_version" yaml:"taskprov_version"`
}

// Validate checks GlobalConfig's struct-tag invariants, then repeats the
// at-most-256 supported HPKE KEMs check explicitly (validator's max tag
// already covers slice length; kept as belt-and-suspenders since
// HpkeReceiverConfigList relies on it).
func (g *GlobalConfig) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("taskconfig: invalid global config: %w", err)
	}
	if len(g.SupportedHpkeKems) > 256 {
		return fmt.Errorf("taskconfig: supported_hpke_kems has %d entries, max 256", len(g.SupportedHpkeKems))
	}
	return nil
}

// HpkeReceiverConfigList returns the KEM IDs offered when generating HPKE
// receiver configs, paired with sequential config IDs starting at
// firstConfigID.
func (g *GlobalConfig) HpkeReceiverConfigList(firstConfigID uint8) map[uint8]HpkeKemID {
	if len(g.SupportedHpkeKems) > 256 {
		panic("taskconfig: supported_hpke_kems exceeds 256 entries")
	}
	out := make(map[uint8]HpkeKemID, len(g.SupportedHpkeKems))
	id := firstConfigID
	for _, kem := range g.SupportedHpkeKems {
		out[id] = kem
		id++
	}
	return out
}
