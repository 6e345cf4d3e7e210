// Package genome holds the genome aggregate: a version header followed by
// an ordered list of genes, serialized as one alphabet string.
package genome

import (
	"strings"

	"genelab/internal/dna"
	"genelab/internal/genetics"
	"genelab/internal/logging"
)

// Version is the only header this package reads or writes.
const Version byte = '1'

// Genome is an immutable header and gene list. Accessors hand out copies.
type Genome struct {
	version byte
	genes   []*dna.Gene
}

// New wraps copies of genes under the current version header.
func New(genes []*dna.Gene) *Genome {
	own := make([]*dna.Gene, len(genes))
	for i, g := range genes {
		own[i] = g.Clone()
	}
	return &Genome{version: Version, genes: own}
}

// Parse decodes a serialized genome.
//
// Checks run in order: alphabet, header present, header version, at least
// one gene, then each gene's framing and body. The first failure is
// returned as a *dna.InvalidGenomeError.
func Parse(s string) (*Genome, error) {
	if err := dna.Validate(s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, invalid(dna.ReasonMissingHeader)
	}
	if s[0] != Version {
		return nil, invalid(dna.ReasonUnexpectedVersion)
	}

	rest := s[1:]
	if rest == "" {
		return nil, invalid(dna.ReasonMissingGenes)
	}

	var genes []*dna.Gene
	for len(rest) > 0 {
		n, consumed, err := dna.DecodeLength(rest)
		if err != nil {
			return nil, err
		}
		end := consumed + n
		if end > len(rest) {
			return nil, invalid(dna.ReasonGeneRunt)
		}
		g, err := dna.DecodeGene(rest[:end])
		if err != nil {
			return nil, err
		}
		genes = append(genes, g)
		rest = rest[end:]
	}

	logging.CodecDebug("parsed genome: genes=%d bytes=%d", len(genes), len(s))
	return &Genome{version: s[0], genes: genes}, nil
}

func invalid(reason string) error {
	return &dna.InvalidGenomeError{Reason: reason}
}

// String re-encodes the genome from its trees, so equivalent genomes
// always serialize identically.
func (g *Genome) String() string {
	var sb strings.Builder
	sb.WriteByte(g.version)
	for _, gene := range g.genes {
		sb.WriteString(gene.Encode())
	}
	return sb.String()
}

// Header returns the version header.
func (g *Genome) Header() byte { return g.version }

// Len returns the number of genes.
func (g *Genome) Len() int { return len(g.genes) }

// Genes returns deep copies of the genes in order.
func (g *Genome) Genes() []*dna.Gene {
	out := make([]*dna.Gene, len(g.genes))
	for i, gene := range g.genes {
		out[i] = gene.Clone()
	}
	return out
}

// Process runs every gene in order against a copy of input and returns the
// resulting context.
func (g *Genome) Process(input dna.Context) dna.Context {
	return dna.EvaluateGenes(g.genes, input)
}

// Recombine breeds g (primary) with other (secondary). Neither parent is
// modified; the child always carries the current version header.
func (g *Genome) Recombine(other *Genome, engine *genetics.Engine, sel genetics.Selector) *Genome {
	genes := engine.Recombine(g.genes, other.genes, sel)
	return &Genome{version: Version, genes: genes}
}

// CreateRandom grows a fresh genome from the engine's rates.
func CreateRandom(engine *genetics.Engine, sel genetics.Selector) *Genome {
	return &Genome{version: Version, genes: engine.RandomGenes(sel)}
}
