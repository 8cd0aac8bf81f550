package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire/internal/metrics"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print process counters in Prometheus text format",
		Run: func(cmd *cobra.Command, _ []string) {
			metrics.WritePrometheus(cmd.OutOrStdout())
		},
	}
}
