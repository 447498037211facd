package main

import (
	"errors"
	"fmt"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pubsub/config"
	"github.com/shashiranjanraj/pubsub/internal/server"
)

var (
	benchEventsFlag      int
	benchSubscribersFlag int
	benchAsyncFlag       bool
	benchServeFlag       bool
)

// pubsub bench
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Publish events to many subscribers and report throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchEventsFlag < 1 || benchSubscribersFlag < 1 {
			return errors.New("bench: --events and --subscribers must be positive")
		}

		bus, release := newBus()
		defer release()

		var delivered atomic.Int64
		for i := 0; i < benchSubscribersFlag; i++ {
			if _, err := bus.Subscribe("bench", func(...any) error {
				delivered.Add(1)
				return nil
			}); err != nil {
				return err
			}
		}

		start := time.Now()
		for i := 0; i < benchEventsFlag; i++ {
			var err error
			if benchAsyncFlag {
				err = bus.Publish("bench", i).Wait()
			} else {
				err = bus.PublishSync("bench", i)
			}
			if err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		mode := "sync"
		if benchAsyncFlag {
			mode = "async"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d events × %d subscribers (%s): %d deliveries in %s (%.0f events/s)\n",
			benchEventsFlag, benchSubscribersFlag, mode, delivered.Load(), elapsed,
			float64(benchEventsFlag)/elapsed.Seconds())

		if !benchServeFlag {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "Serving metrics on %s. Press Ctrl+C to stop.\n", config.MetricsAddr())
		return server.Serve(ctx, config.MetricsAddr(), server.Routes())
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchEventsFlag, "events", "n", 10000, "Number of events to publish")
	benchCmd.Flags().IntVarP(&benchSubscribersFlag, "subscribers", "s", 10, "Number of subscribers")
	benchCmd.Flags().BoolVar(&benchAsyncFlag, "async", false, "Use asynchronous publish")
	benchCmd.Flags().BoolVar(&benchServeFlag, "serve", false, "Keep serving /metrics after the run")
}
