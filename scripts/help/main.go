// Command help prints the annotated targets of the repository
// Makefile. A target is listed when the line directly above it starts
// with "## ". The Makefile path can be given as the first argument
// and defaults to ./Makefile.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/tabwriter"
)

var targetLine = regexp.MustCompile(`^([a-zA-Z0-9_-]+):`)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type target struct {
	name string
	desc string
}

func run() error {
	path := "Makefile"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	targets, err := annotatedTargets(file)
	if err != nil {
		return err
	}

	fmt.Println("\nUsage:")
	fmt.Println("  make \033[36m<target>\033[0m")
	fmt.Println("\nTargets:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range targets {
		fmt.Fprintf(w, "  \033[36m%s\033[0m\t%s\n", t.name, t.desc)
	}
	return w.Flush()
}

func annotatedTargets(r io.Reader) ([]target, error) {
	var targets []target
	var prev string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := targetLine.FindStringSubmatch(line); len(m) > 1 && strings.HasPrefix(prev, "## ") {
			targets = append(targets, target{
				name: m[1],
				desc: strings.TrimSpace(strings.TrimPrefix(prev, "## ")),
			})
		}
		prev = line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Makefile: %w", err)
	}
	return targets, nil
}
