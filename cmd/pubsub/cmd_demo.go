package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

var demoAsyncFlag bool

// pubsub demo
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Subscribe three handlers, drop the second, publish a greeting",
	RunE: func(cmd *cobra.Command, args []string) error {
		bus, release := newBus()
		defer release()

		out := cmd.OutOrStdout()
		var mu sync.Mutex
		for i := 1; i <= 3; i++ {
			name := fmt.Sprintf("Subscriber%d", i)
			sub, err := bus.Subscribe("test", func(args ...any) error {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(out, "%s: %v\n", name, args[0])
				return nil
			})
			if err != nil {
				return err
			}
			if i == 2 {
				sub.Unsubscribe()
			}
		}

		if demoAsyncFlag {
			return bus.Publish("test", "Hello, World!").Wait()
		}
		return bus.PublishSync("test", "Hello, World!")
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoAsyncFlag, "async", false, "Publish asynchronously and wait for every subscriber")
}
