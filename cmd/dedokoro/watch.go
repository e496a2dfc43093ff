package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yacchi/dedokoro"
	"github.com/yacchi/dedokoro/source/fs"
	"github.com/yacchi/dedokoro/watcher"
)

func newWatchCommand() *cobra.Command {
	var format string
	var origins bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reload a configuration file on change and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			load, err := loadFuncFor(path, format)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := dedokoro.NewReloader(fs.New(path), load,
				func(docs []*dedokoro.Properties, err error) {
					if err != nil {
						cmd.PrintErrf("reload: %v\n", err)
						return
					}
					printDocs(cmd, docs, origins)
				},
				dedokoro.WithPollInterval(interval),
			)
			if err := r.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = r.Stop(context.Background()) }()

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "file format (yaml or properties)")
	cmd.Flags().BoolVar(&origins, "origins", false, "print the origin of each value")
	cmd.Flags().DurationVar(&interval, "interval", watcher.DefaultPollInterval,
		"poll interval for sources without change notification")
	return cmd
}
