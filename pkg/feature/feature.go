package feature

// Category distinguishes the two feature types the plotter draws.
// Genes render filled, pseudogenes as outlines.
type Category int

const (
	CategoryGene Category = iota
	CategoryPseudogene
)

// String returns the GFF3 type column value for the category.
func (c Category) String() string {
	if c == CategoryPseudogene {
		return "pseudogene"
	}
	return "gene"
}

// Strand is the coding strand of a feature.
type Strand int

const (
	StrandPlus  Strand = iota // + strand, rendered pointing right
	StrandMinus               // - strand, rendered pointing left
)

// String returns "+" or "-".
func (s Strand) String() string {
	if s == StrandMinus {
		return "-"
	}
	return "+"
}

// Feature is one annotated gene or pseudogene.
type Feature struct {
	Chromosome string  // sequence ID (GFF3 column 1)
	Position   float64 // start position in Mb
	Category   Category
	Strand     Strand
	Name       string // Name attribute from column 9
}

// Classified pairs a feature with the display class it matched.
type Classified struct {
	Feature
	Class ClassRule
}
