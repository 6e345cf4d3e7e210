package main

import (
	"fmt"
	"io"

	"genelab/internal/pool"

	"github.com/spf13/cobra"
)

var listLimit int

func newPoolCmd() *cobra.Command {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Gene pool commands (stored genomes and lineage)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored genomes, newest first",
		Args:  cobra.NoArgs,
		RunE:  poolList,
	}
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum entries to show (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one stored genome",
		Args:  cobra.ExactArgs(1),
		RunE:  poolShow,
	}

	lineageCmd := &cobra.Command{
		Use:   "lineage [id]",
		Short: "List every ancestor of a stored genome",
		Args:  cobra.ExactArgs(1),
		RunE:  poolLineage,
	}

	poolCmd.AddCommand(listCmd)
	poolCmd.AddCommand(showCmd)
	poolCmd.AddCommand(lineageCmd)
	return poolCmd
}

func writeEntry(w io.Writer, e *pool.Entry) {
	fmt.Fprintf(w, "%s  gen=%d  %s\n", e.ID, e.Generation, e.Genome)
}

// poolList lists stored genomes
func poolList(cmd *cobra.Command, args []string) error {
	p, err := openPool()
	if err != nil {
		return err
	}
	defer p.Close()

	entries, err := p.List(listLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "Gene pool is empty (%s)\n", p.Path())
		return nil
	}
	for _, e := range entries {
		writeEntry(out, e)
	}
	fmt.Fprintf(out, "%d shown from %s\n", len(entries), p.Path())
	return nil
}

// poolShow renders one stored genome with its parents
func poolShow(cmd *cobra.Command, args []string) error {
	p, err := openPool()
	if err != nil {
		return err
	}
	defer p.Close()

	e, err := p.Get(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:         %s\n", e.ID)
	fmt.Fprintf(out, "generation: %d\n", e.Generation)
	fmt.Fprintf(out, "created:    %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, parent := range e.Parents() {
		fmt.Fprintf(out, "parent:     %s\n", parent)
	}
	fmt.Fprintln(out, renderGenome(e.Genome))
	return nil
}

// poolLineage prints the ancestors of a stored genome
func poolLineage(cmd *cobra.Command, args []string) error {
	p, err := openPool()
	if err != nil {
		return err
	}
	defer p.Close()

	ancestors, err := p.Lineage(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(ancestors) == 0 {
		fmt.Fprintln(out, "No ancestors")
		return nil
	}
	for _, e := range ancestors {
		writeEntry(out, e)
	}
	return nil
}
