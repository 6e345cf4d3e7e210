package genetics

import (
	"slices"

	"genelab/internal/dna"
	"genelab/internal/logging"
)

// SpliceGenes applies a drawn number of whole-gene splice events to a copy
// of the gene list.
//
// Per event: the kind is drawn, except once the list holds MaxGenes, where
// it is delete and no kind draw is made. Delete draws an index and is
// skipped on a single gene; duplicate draws a source gene then an insertion
// position; insert draws a position then a fresh random gene.
func (e *Engine) SpliceGenes(genes []*dna.Gene, sel Selector) []*dna.Gene {
	out := slices.Clone(genes)
	events := sel.Weighted(e.rates.SpliceCountWeights)

	for i := 0; i < events; i++ {
		kind := SpliceDelete
		if len(out) < e.rates.MaxGenes {
			kind = SpliceKind(sel.Weighted(e.rates.SpliceKindWeights))
		}

		switch kind {
		case SpliceDelete:
			if len(out) <= 1 {
				continue
			}
			idx := choose(sel, len(out))
			out = slices.Delete(out, idx, idx+1)
		case SpliceDuplicate:
			if len(out) == 0 {
				continue
			}
			src := choose(sel, len(out))
			pos := sel.Range(0, len(out))
			out = slices.Insert(out, pos, out[src].Clone())
		case SpliceInsert:
			pos := sel.Range(0, len(out))
			out = slices.Insert(out, pos, e.RandomGene(sel))
		}
		e.metrics.ObserveSplice(kind.String())
		logging.GeneticsDebug("splice: kind=%s genes=%d", kind, len(out))
	}
	return out
}
