package genetics

import (
	"genelab/internal/dna"
	"genelab/internal/logging"
	"genelab/internal/metrics"
)

// Engine applies the genetic operators under a fixed set of Rates.
// It holds no per-call state and never modifies its inputs.
type Engine struct {
	rates   *Rates
	metrics *metrics.Collector
}

// NewEngine creates an engine. A nil rates uses DefaultRates.
func NewEngine(rates *Rates) *Engine {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Engine{rates: rates}
}

// WithMetrics attaches a collector and returns the engine.
func (e *Engine) WithMetrics(c *metrics.Collector) *Engine {
	e.metrics = c
	return e
}

// Rates returns the engine's configuration.
func (e *Engine) Rates() *Rates { return e.rates }

// RandomTree grows a tree of the given class rooted at depth.
//
// Draw order: Terminate (skipped at MaxDepth), operator choice, then either
// the leaf payload or each child subtree left to right.
func (e *Engine) RandomTree(class dna.Class, depth int, sel Selector) *dna.Node {
	terminate := depth >= e.rates.MaxDepth || sel.Terminate(depth, e.rates.TerminateProbability)

	var ops []dna.Operator
	switch {
	case terminate && class == dna.ClassBoolean:
		ops = dna.BooleanLeaves
	case terminate:
		ops = dna.ArithmeticLeaves
	case class == dna.ClassBoolean:
		ops = dna.BooleanBranches
	default:
		ops = dna.ArithmeticBranches
	}
	n := &dna.Node{Op: ops[choose(sel, len(ops))], Depth: depth}

	switch n.Op.Arity() {
	case 0:
		e.randomPayload(n, sel)
	case 1:
		n.Left = e.RandomTree(n.Op.OperandClass(), depth+1, sel)
	case 2:
		n.Left = e.RandomTree(n.Op.OperandClass(), depth+1, sel)
		n.Right = e.RandomTree(n.Op.OperandClass(), depth+1, sel)
	}
	return n
}

// randomPayload redraws a leaf's constant index or variable symbol. The true
// literal has no payload.
func (e *Engine) randomPayload(n *dna.Node, sel Selector) {
	switch n.Op {
	case dna.OpConstant:
		n.Constant = choose(sel, dna.ConstantCount)
	case dna.OpVariable:
		n.Symbol = e.randomSymbol(sel)
	}
}

func (e *Engine) randomSymbol(sel Selector) dna.Symbol {
	syms := e.rates.symbols()
	return dna.Symbol(syms[choose(sel, len(syms))])
}

// RandomGene draws an output symbol, then a condition, then an expression.
func (e *Engine) RandomGene(sel Selector) *dna.Gene {
	return &dna.Gene{
		Output:     e.randomSymbol(sel),
		Condition:  e.RandomTree(dna.ClassBoolean, 0, sel),
		Expression: e.RandomTree(dna.ClassArithmetic, 0, sel),
	}
}

// RandomGenes draws a gene count, then that many genes.
func (e *Engine) RandomGenes(sel Selector) []*dna.Gene {
	count := sel.Weighted(e.rates.GeneCountWeights) + 1
	genes := make([]*dna.Gene, count)
	for i := range genes {
		genes[i] = e.RandomGene(sel)
	}
	logging.GeneticsDebug("random genes: count=%d", count)
	return genes
}

// Recombine produces a child gene list: crossover, then mutation of every
// gene, then splicing.
func (e *Engine) Recombine(primary, secondary []*dna.Gene, sel Selector) []*dna.Gene {
	genes := e.RecombineGenes(primary, secondary, e.rates.PrimaryProbability, sel)
	for i, g := range genes {
		genes[i] = e.MutateGene(g, sel)
	}
	genes = e.SpliceGenes(genes, sel)
	e.metrics.ObserveOffspring()
	logging.Genetics("offspring: primary=%d secondary=%d child=%d", len(primary), len(secondary), len(genes))
	return genes
}
