package taskconfig

import (
	"testing"

	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGlobal() *GlobalConfig {
	return &GlobalConfig{
		ReportStorageEpochDuration: messages.Duration(3600),
		MaxBatchDuration:           messages.Duration(86400),
	}
}

func TestGlobalConfigValidateAccepts(t *testing.T) {
	require.NoError(t, validGlobal().Validate())
}

func TestGlobalConfigValidateRejectsMissingRequiredFields(t *testing.T) {
	g := validGlobal()
	g.MaxBatchDuration = 0
	assert.Error(t, g.Validate())
}

func TestGlobalConfigValidateRejectsTooManyHpkeKems(t *testing.T) {
	g := validGlobal()
	g.SupportedHpkeKems = make([]HpkeKemID, 257)
	assert.Error(t, g.Validate())
}

func TestHpkeReceiverConfigListAssignsSequentialIDs(t *testing.T) {
	g := validGlobal()
	g.SupportedHpkeKems = []HpkeKemID{32, 33}

	list := g.HpkeReceiverConfigList(5)
	require.Len(t, list, 2)
	assert.Equal(t, HpkeKemID(32), list[5])
	assert.Equal(t, HpkeKemID(33), list[6])
}
