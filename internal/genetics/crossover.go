package genetics

import "genelab/internal/dna"

// RecombineGenes takes gene i from primary with probability p, else from
// secondary. A longer parent's tail is appended only if the selector agrees;
// only the parent that actually has a tail is asked. The result holds
// copies, never the parents' genes.
func (e *Engine) RecombineGenes(primary, secondary []*dna.Gene, p float64, sel Selector) []*dna.Gene {
	shared := min(len(primary), len(secondary))
	out := make([]*dna.Gene, 0, max(len(primary), len(secondary)))

	for i := 0; i < shared; i++ {
		if sel.PickPrimary(p) {
			out = append(out, primary[i].Clone())
		} else {
			out = append(out, secondary[i].Clone())
		}
	}

	var tail []*dna.Gene
	switch {
	case len(primary) > shared:
		if sel.UseRestOfPrimary(e.rates.RestProbability) {
			tail = primary[shared:]
		}
	case len(secondary) > shared:
		if sel.UseRestOfSecondary(e.rates.RestProbability) {
			tail = secondary[shared:]
		}
	}
	for _, g := range tail {
		out = append(out, g.Clone())
	}
	return out
}
