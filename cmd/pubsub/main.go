package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pubsub/config"
	"github.com/shashiranjanraj/pubsub/pkg/logger"
	"github.com/shashiranjanraj/pubsub/pkg/metrics"
	"github.com/shashiranjanraj/pubsub/pkg/pubsub"
	"github.com/shashiranjanraj/pubsub/pkg/workerpool"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubsub",
	Short: "pubsub — in-process event bus toolbox",
	Long:  "Run the event bus demo or benchmark dispatch throughput with metrics exposed for Prometheus.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)
}

// newBus builds a bus from config. The returned func releases the worker
// pool, if any, and must be called once publishing is done.
func newBus() (*pubsub.EventBus, func()) {
	var opts []pubsub.Option
	// Bus lifecycle records are debug-only; they stay off stdout otherwise.
	if config.LogLevel() == "debug" {
		opts = append(opts, pubsub.WithLogger(logger.L))
	}
	if config.MetricsEnabled() {
		opts = append(opts, pubsub.WithMetrics(metrics.Default))
	}

	release := func() {}
	if n := config.Workers(); n > 0 {
		pool := workerpool.New(n)
		opts = append(opts, pubsub.WithWorkerPool(pool))
		release = pool.Shutdown
	}

	return pubsub.New(opts...), release
}
