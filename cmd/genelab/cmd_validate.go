package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"genelab/internal/dna"
	"genelab/internal/genome"
	"genelab/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var watch bool

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Decode every genome in one or more files",
		Long: `Reads files with one genome per line (blank lines and lines starting with
# are skipped), decodes them in parallel and reports every invalid line.
Exits non-zero when any genome is invalid.

With --watch the files are re-validated whenever they change, until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate when the files change")
	return cmd
}

// genomeLine is one genome read from a file.
type genomeLine struct {
	line   int
	genome string
}

// invalidLine is one failed decode.
type invalidLine struct {
	file   string
	line   int
	reason string
}

// runValidate checks genome files
func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if !watch {
		return validateFiles(ctx, out, args)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := validateFiles(ctx, out, args); err != nil {
		fmt.Fprintln(out, err)
	}
	return watchFiles(ctx, args, 200*time.Millisecond, func() {
		if err := validateFiles(ctx, out, args); err != nil {
			fmt.Fprintln(out, err)
		}
	})
}

// validateFiles decodes every genome line of paths and reports failures to out.
func validateFiles(ctx context.Context, out io.Writer, paths []string) error {
	var (
		mu       sync.Mutex
		failures []invalidLine
		total    int
	)

	// Read everything up front so a bad path fails before any decode starts.
	files := make([][]genomeLine, len(paths))
	for i, path := range paths {
		lines, err := readGenomeLines(path)
		if err != nil {
			return err
		}
		files[i] = lines
		total += len(lines)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		for _, gl := range files[i] {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				_, err := genome.Parse(gl.genome)
				collector.ObserveDecode(err)
				if err != nil {
					mu.Lock()
					failures = append(failures, invalidLine{file: path, line: gl.line, reason: reasonOf(err)})
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	sort.Slice(failures, func(i, j int) bool {
		if failures[i].file != failures[j].file {
			return failures[i].file < failures[j].file
		}
		return failures[i].line < failures[j].line
	})

	for _, f := range failures {
		fmt.Fprintf(out, "%s:%d: %s\n", f.file, f.line, f.reason)
	}
	fmt.Fprintf(out, "%d genomes, %d invalid\n", total, len(failures))
	logger.Info("Validated genomes", zap.Int("total", total), zap.Int("invalid", len(failures)))
	logging.Codec("validated %d files: total=%d invalid=%d", len(paths), total, len(failures))

	if len(failures) > 0 {
		return fmt.Errorf("%d invalid genomes", len(failures))
	}
	return nil
}

// readGenomeLines returns the non-blank, non-comment lines of path.
func readGenomeLines(path string) ([]genomeLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []genomeLine
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, genomeLine{line: n, genome: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

func reasonOf(err error) string {
	if r := dna.Reason(err); r != "" {
		return r
	}
	return err.Error()
}
