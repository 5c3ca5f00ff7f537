package main

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cowwoc/styler-parser/java/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("javalyzer")

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "javalyzer",
		Short: "Java source parser and scanner",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Initialize(verbosity, "")
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	var version string
	var jsonOutput bool
	parseCmd := &cobra.Command{
		Use:   "parse <file.java>",
		Short: "Parse a single Java source file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			jv, err := resolveVersion(version)
			if err != nil {
				return err
			}

			result, err := parser.Parse(data, jv, parser.WithFile(filename))
			if err != nil {
				return fmt.Errorf("parse %s: %w", filename, err)
			}
			if !result.OK() {
				return fmt.Errorf("%s: %w", filename, result.Failure)
			}

			if jsonOutput {
				return encodeTreeJSON(os.Stdout, result.Arena)
			}
			dumpTree(os.Stdout, result.Arena, result.Arena.Root(), 0)
			return nil
		},
	}
	parseCmd.Flags().StringVar(&version, "version", "latest", "Java language version to parse against (8 or later, or \"latest\")")
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the syntax tree as JSON instead of an indented dump")

	tokensCmd := &cobra.Command{
		Use:   "tokens <file.java>",
		Short: "Lex a Java source file and dump its token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			lx := parser.NewLexer(data, args[0])
			for {
				tok := lx.NextToken()
				fmt.Printf("%-14s %-20q [%d,%d)\n", tok.Kind, tok.Literal, tok.Span.Start, tok.Span.End)
				if tok.Kind == parser.TokenEOF {
					break
				}
			}
			return nil
		},
	}

	var timeout time.Duration
	scanCmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory, jar, or zip file for Java sources and report parse failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jv, err := resolveVersion(version)
			if err != nil {
				return err
			}
			return runScan(args[0], jv, timeout)
		},
	}
	scanCmd.Flags().StringVar(&version, "version", "latest", "Java language version to parse against (8 or later, or \"latest\")")
	scanCmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	rootCmd.AddCommand(parseCmd, tokensCmd, scanCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func resolveVersion(s string) (parser.JavaVersion, error) {
	if s == "latest" || s == "" {
		return parser.JavaLatest, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 8 {
		return 0, fmt.Errorf("unrecognized Java version %q", s)
	}
	return parser.JavaVersion(n), nil
}

func dumpTree(w io.Writer, arena *parser.Arena, node parser.NodeIndex, depth int) {
	rec := arena.Get(node)
	fmt.Fprintf(w, "%*s%s %q [%d,%d)\n", depth*2, "", rec.Kind, arena.Text(node), rec.Start, rec.End)
	for _, child := range arena.Children(node) {
		dumpTree(w, arena, child, depth+1)
	}
}

type treeNode struct {
	Kind     string     `json:"kind"`
	Start    int        `json:"start"`
	End      int        `json:"end"`
	Children []treeNode `json:"children,omitempty"`
}

func buildTreeNode(arena *parser.Arena, node parser.NodeIndex) treeNode {
	rec := arena.Get(node)
	children := arena.Children(node)
	out := treeNode{Kind: rec.Kind.String(), Start: int(rec.Start), End: int(rec.End)}
	for _, c := range children {
		out.Children = append(out.Children, buildTreeNode(arena, c))
	}
	return out
}

func encodeTreeJSON(w io.Writer, arena *parser.Arena) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildTreeNode(arena, arena.Root()))
}

// runScan walks a directory, jar, or zip and parses every .java source it
// finds, each under its own timeout so one pathological file cannot hang
// the whole scan.
func runScan(path string, jv parser.JavaVersion, timeout time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var okCount, failCount int

	record := func(name string, failures []string) {
		if len(failures) == 0 {
			okCount++
		} else {
			failCount++
			for _, f := range failures {
				log.Error(f)
			}
		}
	}

	if info.IsDir() {
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				log.Error(fmt.Sprintf("walk %s: %v", p, err))
				return nil
			}
			if info.IsDir() || filepath.Ext(p) != ".java" {
				return nil
			}
			data, readErr := os.ReadFile(p)
			if readErr != nil {
				record(p, []string{fmt.Sprintf("read %s: %v", p, readErr)})
				return nil
			}
			record(p, parseWithTimeout(p, data, jv, timeout))
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
	} else {
		switch filepath.Ext(path) {
		case ".jar", ".zip":
			if err := scanArchive(path, jv, timeout, record); err != nil {
				return err
			}
		case ".java":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			record(path, parseWithTimeout(path, data, jv, timeout))
		default:
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
		}
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("OK: %d  Failed: %d\n", okCount, failCount)
	if failCount > 0 {
		return fmt.Errorf("%d file(s) failed to parse", failCount)
	}
	return nil
}

func scanArchive(path string, jv parser.JavaVersion, timeout time.Duration, record func(name string, failures []string)) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".java" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			record(f.Name, []string{fmt.Sprintf("open %s: %v", f.Name, err)})
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			record(f.Name, []string{fmt.Sprintf("read %s: %v", f.Name, err)})
			continue
		}
		record(f.Name, parseWithTimeout(f.Name, data, jv, timeout))
	}
	return nil
}

// parseWithTimeout runs Parse on its own goroutine so a pathological input
// that the depth guard doesn't catch can still be bounded by wall-clock time.
func parseWithTimeout(name string, data []byte, jv parser.JavaVersion, timeout time.Duration) []string {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan []string, 1)
	go func() {
		result, err := parser.Parse(data, jv, parser.WithFile(name))
		if err != nil {
			done <- []string{fmt.Sprintf("%s: %v", name, err)}
			return
		}
		if !result.OK() {
			done <- []string{fmt.Sprintf("%s: %v", name, result.Failure)}
			return
		}
		done <- nil
	}()

	select {
	case failures := <-done:
		return failures
	case <-ctx.Done():
		return []string{fmt.Sprintf("timeout parsing %s", name)}
	}
}
