package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacchi/dedokoro/source/fs"
)

func newCheckCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate configuration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := checkFile(cmd, path, format); err != nil {
					cmd.PrintErrf("%s: %v\n", path, err)
					failed++
					continue
				}
				cmd.Printf("%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "file format (yaml or properties)")
	return cmd
}

func checkFile(cmd *cobra.Command, path, format string) error {
	load, err := loadFuncFor(path, format)
	if err != nil {
		return err
	}
	_, err = load(cmd.Context(), fs.New(path))
	return err
}
