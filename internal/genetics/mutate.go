package genetics

import (
	"genelab/internal/dna"
	"genelab/internal/logging"
)

type edit int

const (
	editReplaceChild edit = iota
	editSwapOperator
	editSwapChildren
)

// MutateGene returns a mutated copy of g; g itself is never touched.
//
// A mutation count is drawn first. Each event then flattens the copy into
// [output, condition nodes in postorder..., expression nodes in postorder...],
// draws an index into it, and edits that slot. Index 0 redraws the output
// symbol; any other index applies one edit to the node.
func (e *Engine) MutateGene(g *dna.Gene, sel Selector) *dna.Gene {
	child := g.Clone()
	events := sel.Weighted(e.rates.MutationCountWeights)

	for i := 0; i < events; i++ {
		targets := flatten(child)
		idx := choose(sel, len(targets))
		if idx == 0 {
			child.Output = e.randomSymbol(sel)
			continue
		}
		e.mutateNode(targets[idx], sel)
	}

	if events > 0 {
		e.metrics.ObserveMutations(events)
		if logging.DebugEnabled(logging.CategoryGenetics) {
			logging.GeneticsDebug("mutate: events=%d %s -> %s", events, g.Encode(), child.Encode())
		}
	}
	return child
}

// flatten lists the mutation targets of g. Slot 0 stands for the output.
func flatten(g *dna.Gene) []*dna.Node {
	targets := make([]*dna.Node, 1, 1+g.Condition.Size()+g.Expression.Size())
	targets = g.Condition.Postorder(targets)
	return g.Expression.Postorder(targets)
}

// mutateNode applies one randomly chosen legal edit to n in place. Swapping
// children is only offered for binary nodes.
func (e *Engine) mutateNode(n *dna.Node, sel Selector) {
	edits := []edit{editReplaceChild, editSwapOperator}
	if n.Op.Arity() == 2 {
		edits = append(edits, editSwapChildren)
	}

	switch edits[choose(sel, len(edits))] {
	case editReplaceChild:
		e.replaceChild(n, sel)
	case editSwapOperator:
		if alts := n.Op.Alternatives(); len(alts) > 0 {
			n.Op = alts[choose(sel, len(alts))]
		}
	case editSwapChildren:
		n.Left, n.Right = n.Right, n.Left
	}
}

// replaceChild regrows one child of n with a fresh subtree of the class the
// slot requires. Leaves get a fresh payload instead.
func (e *Engine) replaceChild(n *dna.Node, sel Selector) {
	switch n.Op.Arity() {
	case 0:
		e.randomPayload(n, sel)
	case 1:
		n.Left = e.RandomTree(n.Op.OperandClass(), n.Depth+1, sel)
	case 2:
		if choose(sel, 2) == 0 {
			n.Left = e.RandomTree(n.Op.OperandClass(), n.Depth+1, sel)
		} else {
			n.Right = e.RandomTree(n.Op.OperandClass(), n.Depth+1, sel)
		}
	}
}
