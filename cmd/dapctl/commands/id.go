package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var idCount int

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Generate random identifiers sized for report and aggregation job IDs",
	Long: `id prints random version-4 UUIDs. A UUID's 16 bytes are exactly
ReportIDLen and AggregationJobIDLen, so the same value can seed either one
in a test fixture or load-generation script.

Examples:
  dapctl id
  dapctl id --count 5`,
	RunE: runID,
}

func runID(cmd *cobra.Command, args []string) error {
	if idCount < 1 {
		return fmt.Errorf("--count must be >= 1")
	}
	for i := 0; i < idCount; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id.String())
	}
	return nil
}

func init() {
	idCmd.Flags().IntVar(&idCount, "count", 1, "number of ids to print")
}
