package genetics

import (
	"strings"
	"testing"

	"genelab/internal/dna"
	"genelab/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGene(t *testing.T, enc string) *dna.Gene {
	t.Helper()
	g, err := dna.DecodeGene(enc)
	require.NoError(t, err)
	return g
}

func requireScriptDone(t *testing.T, sel *ScriptedSelector) {
	t.Helper()
	require.NoError(t, sel.Err())
	require.Zero(t, sel.Remaining(), "unconsumed scripted draws")
}

func TestRandomTree(t *testing.T) {
	tests := []struct {
		name   string
		class  dna.Class
		script []Draw
		want   string
	}{
		{
			name:  "arithmetic branch",
			class: dna.ClassArithmetic,
			script: []Draw{
				Terminate(false), Choose(0),           // add
				Terminate(true), Choose(0), Choose(5), // constant 5
				Terminate(true), Choose(1), Choose(1), // variable b
			},
			want: "C5VbP",
		},
		{
			name:   "boolean leaf needs no operator draw",
			class:  dna.ClassBoolean,
			script: []Draw{Terminate(true)},
			want:   "T",
		},
		{
			name:  "not",
			class: dna.ClassBoolean,
			script: []Draw{
				Terminate(false), Choose(2),
				Terminate(true),
			},
			want: "TN",
		},
		{
			name:  "comparison takes arithmetic operands",
			class: dna.ClassBoolean,
			script: []Draw{
				Terminate(false), Choose(3), // greater
				Terminate(true), Choose(1), Choose(0),
				Terminate(true), Choose(0), Choose(63),
			},
			want: "VaC_G",
		},
		{
			name:  "connective takes boolean operands",
			class: dna.ClassBoolean,
			script: []Draw{
				Terminate(false), Choose(1), // or
				Terminate(true),
				Terminate(true),
			},
			want: "TTO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Script(tt.script...)
			got := NewEngine(nil).RandomTree(tt.class, 0, sel)
			requireScriptDone(t, sel)
			assert.Equal(t, tt.want, got.Encode())
			assert.Equal(t, tt.class, got.Op.Class())
		})
	}
}

func TestRandomTree_AssignsDepth(t *testing.T) {
	sel := Script(
		Terminate(false), Choose(0),
		Terminate(true), Choose(0), Choose(5),
		Terminate(true), Choose(1), Choose(1),
	)
	root := NewEngine(nil).RandomTree(dna.ClassArithmetic, 2, sel)
	requireScriptDone(t, sel)

	assert.Equal(t, 2, root.Depth)
	assert.Equal(t, 3, root.Left.Depth)
	assert.Equal(t, 3, root.Right.Depth)
}

func TestRandomTree_ForcedLeafAtMaxDepth(t *testing.T) {
	rates := DefaultRates()
	rates.MaxDepth = 1

	sel := Script(
		Terminate(false), Choose(2), // multiply
		// depth 1 is forced: no Terminate draw
		Choose(0), Choose(7),
		Choose(1), Choose(3),
	)
	got := NewEngine(rates).RandomTree(dna.ClassArithmetic, 0, sel)
	requireScriptDone(t, sel)
	assert.Equal(t, "C7VdM", got.Encode())
}

func TestRandomGene(t *testing.T) {
	sel := Script(
		Choose(2),       // output c
		Terminate(true), // condition
		Terminate(true), Choose(0), Choose(0),
	)
	g := NewEngine(nil).RandomGene(sel)
	requireScriptDone(t, sel)
	assert.Equal(t, "5c1TC0", g.Encode())
}

func TestRandomGene_RestrictedSymbols(t *testing.T) {
	rates := DefaultRates()
	rates.Symbols = "xy"

	sel := Script(
		Choose(1),
		Terminate(true),
		Terminate(true), Choose(1), Choose(0),
	)
	g := NewEngine(rates).RandomGene(sel)
	requireScriptDone(t, sel)
	assert.Equal(t, "5y1TVx", g.Encode())

	rates.Symbols = "k"
	sel = Script(
		Terminate(true),
		Terminate(true), Choose(1),
	)
	g = NewEngine(rates).RandomGene(sel)
	requireScriptDone(t, sel)
	assert.Equal(t, "5k1TVk", g.Encode())
}

func TestRandomGenes(t *testing.T) {
	sel := Script(
		Weighted(1), // two genes
		Choose(0), Terminate(true), Terminate(true), Choose(0), Choose(0),
		Choose(1), Terminate(true), Terminate(true), Choose(0), Choose(63),
	)
	genes := NewEngine(nil).RandomGenes(sel)
	requireScriptDone(t, sel)

	require.Len(t, genes, 2)
	assert.Equal(t, "5a1TC0", genes[0].Encode())
	assert.Equal(t, "5b1TC_", genes[1].Encode())
}

func TestRecombine_SelfWithoutChangesIsIdentity(t *testing.T) {
	parent := []*dna.Gene{
		mustGene(t, "5a1TC0"),
		mustGene(t, "Cb5VaCWGVbCeP"),
	}
	sel := Script(
		Primary(true), Primary(true),
		Weighted(0), Weighted(0), // no mutations
		Weighted(0),              // no splices
	)
	child := NewEngine(nil).Recombine(parent, parent, sel)
	requireScriptDone(t, sel)

	require.Len(t, child, 2)
	for i := range parent {
		assert.Equal(t, parent[i].Encode(), child[i].Encode())
		assert.NotSame(t, parent[i], child[i])
	}
}

func TestRecombine_RandomOffspringStayWellTyped(t *testing.T) {
	rates := DefaultRates()
	engine := NewEngine(rates)

	for seed := uint64(1); seed <= 100; seed++ {
		sel := NewRandomSelector(seed)
		a := engine.RandomGenes(sel)
		b := engine.RandomGenes(sel)

		for gen := 0; gen < 10; gen++ {
			child := engine.Recombine(a, b, sel)
			require.NotEmpty(t, child, "seed %d gen %d", seed, gen)
			require.LessOrEqual(t, len(child), rates.MaxGenes, "seed %d gen %d", seed, gen)

			for _, g := range child {
				enc := g.Encode()
				decoded, err := dna.DecodeGene(enc)
				require.NoError(t, err, "seed %d gen %d gene %s", seed, gen, enc)
				require.Equal(t, enc, decoded.Encode())
			}
			a, b = b, child
		}
	}
}

func TestRecombine_ParentsUntouched(t *testing.T) {
	engine := NewEngine(nil)
	sel := NewRandomSelector(42)
	a := engine.RandomGenes(sel)
	b := engine.RandomGenes(sel)

	snapshot := func(genes []*dna.Gene) []string {
		out := make([]string, len(genes))
		for i, g := range genes {
			out[i] = g.Encode()
		}
		return out
	}
	beforeA, beforeB := snapshot(a), snapshot(b)

	for i := 0; i < 50; i++ {
		engine.Recombine(a, b, sel)
	}

	assert.Equal(t, beforeA, snapshot(a))
	assert.Equal(t, beforeB, snapshot(b))
}

func TestRecombine_ReportsMetrics(t *testing.T) {
	m := metrics.New()
	engine := NewEngine(nil).WithMetrics(m)
	parent := []*dna.Gene{mustGene(t, "5a1TC0")}

	sel := Script(
		Primary(true),
		Weighted(1), Choose(0), Choose(1), // output a -> b
		Weighted(1), Weighted(int(SpliceDuplicate)), Range(0),
	)
	child := engine.Recombine(parent, parent, sel)
	requireScriptDone(t, sel)
	assert.Equal(t, []string{"5b1TC0", "5b1TC0"}, encodeAll(child))

	expected := `
# HELP genelab_mutations_total Mutation events applied to genes
# TYPE genelab_mutations_total counter
genelab_mutations_total 1
# HELP genelab_offspring_total Child genomes produced by recombination
# TYPE genelab_offspring_total counter
genelab_offspring_total 1
# HELP genelab_splices_total Splice events by kind
# TYPE genelab_splices_total counter
genelab_splices_total{kind="duplicate"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"genelab_mutations_total", "genelab_offspring_total", "genelab_splices_total"))
}
