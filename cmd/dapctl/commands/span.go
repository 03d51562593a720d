package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/messages"
)

var (
	spanQuery         string
	spanTimePrecision uint64
	spanStart         uint64
	spanDuration      uint64
	spanBatchID       string
)

var spanCmd = &cobra.Command{
	Use:   "span",
	Short: "Enumerate the buckets a collect request's batch selector covers",
	Long: `span computes the same bucket set batch.SpanForSelector would hand an
aggregate-share query: one window per time_precision-sized slice of a
TimeInterval collect request, or the single named batch for FixedSize.

Examples:
  dapctl span --query time-interval --time-precision 60 --start 0 --duration 300
  dapctl span --query fixed-size --batch-id <hex>`,
	RunE: runSpan,
}

func runSpan(cmd *cobra.Command, args []string) error {
	var sel messages.BatchSelector
	switch spanQuery {
	case "time-interval":
		sel = messages.TimeIntervalBatchSelector{
			Interval: messages.Interval{
				Start:    messages.Time(spanStart),
				Duration: messages.Duration(spanDuration),
			},
		}
	case "fixed-size":
		batchID, err := parseBatchIDHex(spanBatchID)
		if err != nil {
			return err
		}
		sel = messages.FixedSizeBatchSelector{BatchID: batchID}
	default:
		return fmt.Errorf("unrecognized --query %q, want time-interval|fixed-size", spanQuery)
	}

	buckets, fault := batch.SpanForSelector(sel, messages.Duration(spanTimePrecision))
	if fault != nil {
		return fmt.Errorf("%s", fault.Error())
	}

	names := make([]string, 0, len(buckets))
	for b := range buckets {
		names = append(names, bucketName(b))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d bucket(s)\n", len(names))
	return nil
}

func bucketName(b batch.Bucket) string {
	switch v := b.(type) {
	case batch.TimeIntervalBucket:
		return fmt.Sprintf("window/%d", uint64(v.BatchWindow))
	case batch.FixedSizeBucket:
		return fmt.Sprintf("batch/%s", v.BatchID.String())
	default:
		return fmt.Sprintf("unknown/%T", b)
	}
}

func init() {
	spanCmd.Flags().StringVar(&spanQuery, "query", "time-interval", "time-interval|fixed-size")
	spanCmd.Flags().Uint64Var(&spanTimePrecision, "time-precision", 60, "time precision, seconds")
	spanCmd.Flags().Uint64Var(&spanStart, "start", 0, "interval start, unix seconds (query=time-interval)")
	spanCmd.Flags().Uint64Var(&spanDuration, "duration", 0, "interval duration, seconds (query=time-interval)")
	spanCmd.Flags().StringVar(&spanBatchID, "batch-id", "", "batch id, hex-encoded (query=fixed-size)")
}
