package genetics

import (
	"fmt"
	"strings"

	"genelab/internal/dna"

	"github.com/go-playground/validator/v10"
)

// SpliceKind is the kind of a whole-gene splice event. Its value indexes
// Rates.SpliceKindWeights.
type SpliceKind int

const (
	SpliceDelete SpliceKind = iota
	SpliceDuplicate
	SpliceInsert
)

func (k SpliceKind) String() string {
	switch k {
	case SpliceDelete:
		return "delete"
	case SpliceDuplicate:
		return "duplicate"
	case SpliceInsert:
		return "insert"
	}
	return fmt.Sprintf("SpliceKind(%d)", int(k))
}

// Rates configures the genetic operators.
type Rates struct {
	// GeneCountWeights[i] weighs a random genome of i+1 genes.
	GeneCountWeights []float64 `yaml:"gene_count_weights" json:"gene_count_weights" validate:"required,min=1,dive,gte=0"`

	// MutationCountWeights[i] weighs i mutation events per gene.
	MutationCountWeights []float64 `yaml:"mutation_count_weights" json:"mutation_count_weights" validate:"required,min=1,dive,gte=0"`

	// SpliceCountWeights[i] weighs i splice events per offspring.
	SpliceCountWeights []float64 `yaml:"splice_count_weights" json:"splice_count_weights" validate:"required,min=1,dive,gte=0"`

	// SpliceKindWeights weighs delete, duplicate and insert.
	SpliceKindWeights []float64 `yaml:"splice_kind_weights" json:"splice_kind_weights" validate:"required,len=3,dive,gte=0"`

	PrimaryProbability   float64 `yaml:"primary_probability" json:"primary_probability" validate:"gte=0,lte=1"`
	RestProbability      float64 `yaml:"rest_probability" json:"rest_probability" validate:"gte=0,lte=1"`
	TerminateProbability float64 `yaml:"terminate_probability" json:"terminate_probability" validate:"gte=0,lte=1"`

	// MaxDepth forces leaves at this tree depth. A full gene at depth 7
	// outgrows the longest length prefix, so 6 is the ceiling.
	MaxDepth int `yaml:"max_depth" json:"max_depth" validate:"gte=0,lte=6"`

	// MaxGenes caps a genome; at the cap every splice is a delete.
	MaxGenes int `yaml:"max_genes" json:"max_genes" validate:"gte=1"`

	// Symbols restricts the variables and outputs the engine may generate.
	// Empty means every dna variable.
	Symbols string `yaml:"symbols" json:"symbols"`
}

// DefaultRates returns the default configuration.
func DefaultRates() *Rates {
	return &Rates{
		GeneCountWeights:     []float64{4, 4, 3, 2, 1},
		MutationCountWeights: []float64{6, 3, 1},
		SpliceCountWeights:   []float64{8, 2},
		SpliceKindWeights:    []float64{1, 1, 1},
		PrimaryProbability:   0.5,
		RestProbability:      0.5,
		TerminateProbability: 0.4,
		MaxDepth:             4,
		MaxGenes:             16,
		Symbols:              dna.Variables,
	}
}

var validate = validator.New()

// Validate checks field ranges and that every weight table can be sampled.
func (r *Rates) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid genetic rates: %w", err)
	}
	tables := []struct {
		name    string
		weights []float64
	}{
		{"gene_count_weights", r.GeneCountWeights},
		{"mutation_count_weights", r.MutationCountWeights},
		{"splice_count_weights", r.SpliceCountWeights},
		{"splice_kind_weights", r.SpliceKindWeights},
	}
	for _, table := range tables {
		total := 0.0
		for _, w := range table.weights {
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("invalid genetic rates: %s has no positive weight", table.name)
		}
	}
	for i := 0; i < len(r.Symbols); i++ {
		if !dna.IsVariable(dna.Symbol(r.Symbols[i])) {
			return fmt.Errorf("invalid genetic rates: symbol %q is not a variable", r.Symbols[i])
		}
		if strings.IndexByte(r.Symbols[i+1:], r.Symbols[i]) >= 0 {
			return fmt.Errorf("invalid genetic rates: duplicate symbol %q", r.Symbols[i])
		}
	}
	return nil
}

func (r *Rates) symbols() string {
	if r.Symbols == "" {
		return dna.Variables
	}
	return r.Symbols
}
