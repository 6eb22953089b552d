// Package genome describes the assembly a figure is drawn against.
//
// An assembly is a TOML file listing the chromosomes to plot, in figure order
// (top to bottom), with their lengths and centromere positions in base pairs:
//
//	[[chromosome]]
//	name       = "CM027410.1"
//	label      = "Chr. 1"
//	length     = 132876167
//	centromere = 63000000
package genome

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/karyoviz/karyoplot/pkg/errors"
)

const bpPerMb = 1e6

// Chromosome describes one sequence in the assembly.
type Chromosome struct {
	Name       string `toml:"name"`
	Label      string `toml:"label"`
	Length     int64  `toml:"length"`     // bp
	Centromere int64  `toml:"centromere"` // bp
}

// LengthMb returns the chromosome length in Mb.
func (c Chromosome) LengthMb() float64 { return float64(c.Length) / bpPerMb }

// CentromereMb returns the centromere position in Mb.
func (c Chromosome) CentromereMb() float64 { return float64(c.Centromere) / bpPerMb }

// Assembly is an ordered set of chromosomes.
type Assembly struct {
	Chromosomes []Chromosome `toml:"chromosome"`
}

// Chromosome looks up a chromosome by sequence name.
func (a *Assembly) Chromosome(name string) (Chromosome, bool) {
	for _, c := range a.Chromosomes {
		if c.Name == name {
			return c, true
		}
	}
	return Chromosome{}, false
}

// LoadAssembly reads and validates an assembly TOML file.
func LoadAssembly(path string) (*Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}

	var a Assembly
	if err := toml.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAssembly, err, "parse %s", path)
	}
	if len(a.Chromosomes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAssembly, "%s: no [[chromosome]] entries", path)
	}

	seen := make(map[string]bool, len(a.Chromosomes))
	for _, c := range a.Chromosomes {
		if c.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidAssembly, "%s: chromosome without a name", path)
		}
		if seen[c.Name] {
			return nil, errors.New(errors.ErrCodeInvalidAssembly, "%s: duplicate chromosome %q", path, c.Name)
		}
		seen[c.Name] = true
		if c.Length <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidAssembly,
				"%s: chromosome %q: length must be positive", path, c.Name)
		}
		if c.Centromere < 0 || c.Centromere > c.Length {
			return nil, errors.New(errors.ErrCodeInvalidAssembly,
				"%s: chromosome %q: centromere outside [0, length]", path, c.Name)
		}
	}
	return &a, nil
}
