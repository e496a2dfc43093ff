// Command extract-readme turns the runnable Go code blocks of
// README.md into buildable example programs.
//
// A block qualifies when it is fenced as ```go and declares both
// "package main" and "func main()". Each qualifying block is written
// to examples/.readme/block_NNN/main.go, where NNN is the line the
// block starts on, so building the examples module also exercises the
// README.
//
// Usage:
//
//	cd scripts && go run ./extract-readme
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	packageMain = regexp.MustCompile(`(?m)^package\s+main\s*$`)
	funcMain    = regexp.MustCompile(`(?m)^func\s+main\s*\(\s*\)`)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	source, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		return fmt.Errorf("failed to read README.md: %w", err)
	}

	blocks := runnableBlocks(source)
	if len(blocks) == 0 {
		fmt.Println("no runnable README examples found")
		return nil
	}

	outDir := filepath.Join(root, "examples", ".readme")
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to clean %s: %w", outDir, err)
	}
	for _, block := range blocks {
		dir := filepath.Join(outDir, fmt.Sprintf("block_%03d", block.line))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "main.go"), block.code, 0o644); err != nil {
			return err
		}
		fmt.Printf("  extracted block_%03d (README.md line %d)\n", block.line, block.line)
	}
	fmt.Printf("%d runnable README example(s)\n", len(blocks))
	return nil
}

type codeBlock struct {
	line int
	code []byte
}

// runnableBlocks collects the go-fenced blocks of source that form a
// complete main program, with the one-based line each starts on.
func runnableBlocks(source []byte) []codeBlock {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []codeBlock
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok || string(fenced.Language(source)) != "go" {
			return ast.WalkContinue, nil
		}
		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		if !packageMain.Match(buf.Bytes()) || !funcMain.Match(buf.Bytes()) {
			return ast.WalkContinue, nil
		}
		line := bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
		blocks = append(blocks, codeBlock{line: line, code: buf.Bytes()})
		return ast.WalkContinue, nil
	})
	return blocks
}

// projectRoot walks up from the working directory to the go.mod of
// the main module.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil && strings.Contains(string(data), "module github.com/yacchi/dedokoro\n") {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod for github.com/yacchi/dedokoro not found above the working directory")
		}
		dir = parent
	}
}
