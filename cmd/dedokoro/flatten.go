package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacchi/dedokoro"
	"github.com/yacchi/dedokoro/format/properties"
	"github.com/yacchi/dedokoro/format/yaml"
	"github.com/yacchi/dedokoro/source/fs"
)

// loadFuncFor picks the loader for a file, from the format flag when
// given and from the file extension otherwise.
func loadFuncFor(path, format string) (dedokoro.LoadFunc, error) {
	switch format {
	case "yaml":
		return yaml.Load, nil
	case "properties":
		return properties.Load, nil
	case "":
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Load, nil
	case ".properties":
		return properties.Load, nil
	}
	return nil, fmt.Errorf("cannot determine format of %s; use --format", path)
}

func newFlattenCommand() *cobra.Command {
	var format string
	var origins bool
	cmd := &cobra.Command{
		Use:   "flatten <file>...",
		Short: "Print the flattened keys and values of configuration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				load, err := loadFuncFor(path, format)
				if err != nil {
					return err
				}
				docs, err := load(cmd.Context(), fs.New(path))
				if err != nil {
					return err
				}
				printDocs(cmd, docs, origins)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "file format (yaml or properties)")
	cmd.Flags().BoolVar(&origins, "origins", false, "print the origin of each value")
	return cmd
}

func printDocs(cmd *cobra.Command, docs []*dedokoro.Properties, origins bool) {
	for i, doc := range docs {
		if i > 0 {
			cmd.Println("---")
		}
		doc.Walk(func(key string, value dedokoro.TrackedValue) bool {
			if origins {
				cmd.Printf("%s=%v\t# %s\n", key, value.Value, value.Origin)
			} else {
				cmd.Printf("%s=%v\n", key, value.Value)
			}
			return true
		})
	}
}
