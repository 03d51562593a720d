package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/durable"
	"github.com/marmos91/dapcore/pkg/messages"
)

var (
	durableKind    string
	durableVersion string
	durableTaskID  string
	durableShard   uint64
	durableTime    uint64
	durableBucket  string
	durableWindow  uint64
	durableBatchID string
)

var durableNameCmd = &cobra.Command{
	Use:   "durable-name",
	Short: "Compute the durable storage name for a queue shard, report shard, or aggregate bucket",
	Long: `durable-name prints the name a store implementation should use as a key
for one of the three durable object kinds the core addresses: a work-queue
shard, a per-task report-replay shard, or a per-bucket aggregate share.

Examples:
  dapctl durable-name --kind queue --shard 3
  dapctl durable-name --kind report-store --version v03 --task-id <hex> --time 1700000000 --shard 1
  dapctl durable-name --kind agg-store --version v03 --task-id <hex> --bucket time --window 1699999800
  dapctl durable-name --kind agg-store --version v03 --task-id <hex> --bucket fixed --batch-id <hex>`,
	RunE: runDurableName,
}

func runDurableName(cmd *cobra.Command, args []string) error {
	switch durableKind {
	case "queue":
		fmt.Fprintln(cmd.OutOrStdout(), durable.QueueName(durableShard))
		return nil
	case "report-store":
		taskID, err := parseTaskIDHex(durableTaskID)
		if err != nil {
			return err
		}
		version := messages.ParseProtocolVersion(durableVersion)
		if version == messages.VersionUnknown {
			return fmt.Errorf("unrecognized --version %q", durableVersion)
		}
		name := durable.ReportStoreName(version, taskID.String(), messages.Time(durableTime), durableShard)
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	case "agg-store":
		taskID, err := parseTaskIDHex(durableTaskID)
		if err != nil {
			return err
		}
		version := messages.ParseProtocolVersion(durableVersion)
		if version == messages.VersionUnknown {
			return fmt.Errorf("unrecognized --version %q", durableVersion)
		}
		bucket, err := parseBucket(durableBucket, durableWindow, durableBatchID)
		if err != nil {
			return err
		}
		name := durable.AggregateStoreName(version, taskID.String(), bucket)
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	default:
		return fmt.Errorf("unrecognized --kind %q, want one of queue|report-store|agg-store", durableKind)
	}
}

func parseTaskIDHex(s string) (messages.TaskID, error) {
	var taskID messages.TaskID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return taskID, fmt.Errorf("--task-id: %w", err)
	}
	if len(raw) != messages.TaskIDLen {
		return taskID, fmt.Errorf("--task-id: want %d bytes, got %d", messages.TaskIDLen, len(raw))
	}
	copy(taskID[:], raw)
	return taskID, nil
}

func parseBatchIDHex(s string) (messages.BatchID, error) {
	var batchID messages.BatchID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return batchID, fmt.Errorf("--batch-id: %w", err)
	}
	if len(raw) != messages.BatchIDLen {
		return batchID, fmt.Errorf("--batch-id: want %d bytes, got %d", messages.BatchIDLen, len(raw))
	}
	copy(batchID[:], raw)
	return batchID, nil
}

func parseBucket(kind string, window uint64, batchIDHex string) (batch.Bucket, error) {
	switch kind {
	case "time":
		return batch.TimeIntervalBucket{BatchWindow: messages.Time(window)}, nil
	case "fixed":
		batchID, err := parseBatchIDHex(batchIDHex)
		if err != nil {
			return nil, err
		}
		return batch.FixedSizeBucket{BatchID: batchID}, nil
	default:
		return nil, fmt.Errorf("unrecognized --bucket %q, want time|fixed", kind)
	}
}

func init() {
	durableNameCmd.Flags().StringVar(&durableKind, "kind", "", "queue|report-store|agg-store (required)")
	durableNameCmd.Flags().StringVar(&durableVersion, "version", "v03", "wire protocol version (v02|v03)")
	durableNameCmd.Flags().StringVar(&durableTaskID, "task-id", "", "task id, hex-encoded")
	durableNameCmd.Flags().Uint64Var(&durableShard, "shard", 0, "shard number")
	durableNameCmd.Flags().Uint64Var(&durableTime, "time", 0, "report timestamp, unix seconds")
	durableNameCmd.Flags().StringVar(&durableBucket, "bucket", "time", "bucket kind: time|fixed")
	durableNameCmd.Flags().Uint64Var(&durableWindow, "window", 0, "batch window start, unix seconds (bucket=time)")
	durableNameCmd.Flags().StringVar(&durableBatchID, "batch-id", "", "batch id, hex-encoded (bucket=fixed)")
	durableNameCmd.MarkFlagRequired("kind")
}
