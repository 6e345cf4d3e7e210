package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"genelab/internal/dna"
	"genelab/internal/genetics"
	"genelab/internal/genome"
	"genelab/internal/pool"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seed uint64
	save bool
)

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Create a random genome",
		Long: `Grows a random genome from the configured genetic rates and prints it.

Example:
  genelab random --seed 42 --save`,
		Args: cobra.NoArgs,
		RunE: runRandom,
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: time based)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the genome in the gene pool")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [genome]",
		Short: "Decode a genome and show its genes",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [genome] [symbol=value...]",
		Short: "Run a genome against an input context",
		Long: `Evaluates every gene in order against the given inputs and prints the
resulting context. Unset variables read as zero.

Example:
  genelab eval 15a1TVb b=2.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}
}

func newBreedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breed [primary] [secondary]",
		Short: "Recombine two genomes into a child",
		Long: `Produces a child by crossover, mutation and splicing. Parents may be given
as genome strings or as gene pool ids.

Example:
  genelab breed 15a1TC0 15b1TC1 --seed 7`,
		Args: cobra.ExactArgs(2),
		RunE: runBreed,
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: time based)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the child (and any new parents) in the gene pool")
	return cmd
}

func newSelector(cmd *cobra.Command) genetics.Selector {
	s := seed
	if !cmd.Flags().Changed("seed") {
		s = uint64(time.Now().UnixNano())
	}
	logger.Debug("Random selector", zap.Uint64("seed", s))
	return genetics.NewRandomSelector(s)
}

// runRandom creates and prints a random genome
func runRandom(cmd *cobra.Command, args []string) error {
	g := genome.CreateRandom(newEngine(), newSelector(cmd))
	out := cmd.OutOrStdout()

	if save {
		p, err := openPool()
		if err != nil {
			return err
		}
		defer p.Close()

		e, err := p.Put(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", e.ID, g)
		return nil
	}

	fmt.Fprintln(out, g)
	return nil
}

// parseGenome decodes s and records the outcome.
func parseGenome(s string) (*genome.Genome, error) {
	g, err := genome.Parse(s)
	collector.ObserveDecode(err)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, err)
	}
	return g, nil
}

// runInspect renders each gene of a genome
func runInspect(cmd *cobra.Command, args []string) error {
	g, err := parseGenome(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderGenome(g))
	return nil
}

// runEval evaluates a genome against symbol=value inputs
func runEval(cmd *cobra.Command, args []string) error {
	g, err := parseGenome(args[0])
	if err != nil {
		return err
	}
	input, err := parseContext(args[1:])
	if err != nil {
		return err
	}

	result := g.Process(input)
	logger.Debug("Evaluated genome", zap.Int("genes", g.Len()), zap.Int("outputs", len(result)))

	out := cmd.OutOrStdout()
	for _, sym := range sortedSymbols(result) {
		fmt.Fprintf(out, "%s = %s\n", sym, strconv.FormatFloat(result[sym], 'g', -1, 64))
	}
	return nil
}

func parseContext(assignments []string) (dna.Context, error) {
	ctx := dna.Context{}
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok || len(name) != 1 || !dna.IsVariable(dna.Symbol(name[0])) {
			return nil, fmt.Errorf("invalid input %q: want symbol=value with symbol in %s", a, dna.Variables)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input %q: %w", a, err)
		}
		ctx[dna.Symbol(name[0])] = v
	}
	return ctx, nil
}

func sortedSymbols(ctx dna.Context) []dna.Symbol {
	syms := make([]dna.Symbol, 0, len(ctx))
	for s := range ctx {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// parent is a breeding input, optionally already stored in the pool.
type parent struct {
	genome *genome.Genome
	id     string
}

// resolveParent reads arg as a genome string, falling back to a pool id.
func resolveParent(arg string, getPool func() (*pool.Pool, error)) (parent, error) {
	g, parseErr := genome.Parse(arg)
	if parseErr == nil {
		collector.ObserveDecode(nil)
		return parent{genome: g}, nil
	}
	p, err := getPool()
	if err != nil {
		return parent{}, err
	}
	e, err := p.Get(arg)
	if err != nil {
		collector.ObserveDecode(parseErr)
		return parent{}, fmt.Errorf("%q is neither a valid genome (%v) nor a pool id: %w", arg, parseErr, err)
	}
	return parent{genome: e.Genome, id: e.ID}, nil
}

// runBreed recombines two genomes
func runBreed(cmd *cobra.Command, args []string) error {
	var p *pool.Pool
	getPool := func() (*pool.Pool, error) {
		if p == nil {
			var err error
			if p, err = openPool(); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	defer func() {
		if p != nil {
			p.Close()
		}
	}()

	parents := make([]parent, len(args))
	for i, arg := range args {
		var err error
		if parents[i], err = resolveParent(arg, getPool); err != nil {
			return err
		}
	}

	child := parents[0].genome.Recombine(parents[1].genome, newEngine(), newSelector(cmd))
	out := cmd.OutOrStdout()

	if !save {
		fmt.Fprintln(out, child)
		return nil
	}

	store, err := getPool()
	if err != nil {
		return err
	}
	ids := make([]string, len(parents))
	for i, par := range parents {
		ids[i] = par.id
		if ids[i] == "" {
			e, err := store.Put(par.genome)
			if err != nil {
				return err
			}
			ids[i] = e.ID
		}
	}
	e, err := store.Put(child, ids...)
	if err != nil {
		return err
	}
	logger.Info("Stored offspring", zap.String("id", e.ID), zap.Int("generation", e.Generation))
	fmt.Fprintf(out, "%s %s\n", e.ID, child)
	return nil
}
