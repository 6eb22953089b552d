package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/karyoviz/karyoplot/pkg/feature"
	"github.com/karyoviz/karyoplot/pkg/genome"
	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// defaultInk is used for features whose class carries no color, such as
// hand-written features JSON without a color field.
const defaultInk = "black"

// BuildTracks groups features into one track per assembly chromosome, in
// assembly order (top of the figure first). Chromosomes without features
// still get a track so the ideogram stays complete. Features on chromosomes
// absent from the assembly are skipped with a warning.
func BuildTracks(features []feature.Classified, asm *genome.Assembly, logger *log.Logger) []*layout.Track {
	byChromosome := make(map[string][]layout.Marker)
	for _, f := range features {
		if _, ok := asm.Chromosome(f.Chromosome); !ok {
			logger.Warn("feature on chromosome not in assembly, skipping",
				"feature", f.Name, "chromosome", f.Chromosome)
			continue
		}
		byChromosome[f.Chromosome] = append(byChromosome[f.Chromosome], toMarker(f))
	}

	tracks := make([]*layout.Track, 0, len(asm.Chromosomes))
	for _, c := range asm.Chromosomes {
		label := c.Label
		if label == "" {
			label = c.Name
		}
		tracks = append(tracks, &layout.Track{
			Markers:    byChromosome[c.Name],
			Length:     c.LengthMb(),
			SplitPoint: c.CentromereMb(),
			Label:      label,
		})
	}
	return tracks
}

func toMarker(f feature.Classified) layout.Marker {
	dir := layout.Right
	if f.Strand == feature.StrandMinus {
		dir = layout.Left
	}
	color := f.Class.Color
	if color == "" {
		color = defaultInk
	}
	return layout.Marker{
		Position:  f.Position,
		Filled:    f.Category == feature.CategoryGene,
		Direction: dir,
		Color:     color,
	}
}

// keyEntries builds the color key: configured rules first (in rule order,
// only if a feature used them), then any further classes in first-seen order.
func keyEntries(rules []feature.ClassRule, features []feature.Classified) []compose.KeyEntry {
	used := make(map[string]string) // label -> color
	var order []string
	for _, f := range features {
		label := f.Class.Label
		if label == "" {
			continue
		}
		if _, ok := used[label]; !ok {
			used[label] = f.Class.Color
			order = append(order, label)
		}
	}

	var entries []compose.KeyEntry
	listed := make(map[string]bool)
	for _, r := range rules {
		if color, ok := used[r.Label]; ok && !listed[r.Label] {
			entries = append(entries, compose.KeyEntry{Color: color, Label: r.Label})
			listed[r.Label] = true
		}
	}
	for _, label := range order {
		if !listed[label] {
			entries = append(entries, compose.KeyEntry{Color: used[label], Label: label})
			listed[label] = true
		}
	}
	return entries
}

// composeFigure places every track and assembles the figure. Tracks are in
// figure order (top first), so they are added to the bottom-up composer in
// reverse.
func composeFigure(tracks []*layout.Track, geom layout.Geometry, key []compose.KeyEntry) (*compose.Figure, error) {
	c := compose.New(layout.NewEngine(geom))
	for i := len(tracks) - 1; i >= 0; i-- {
		if err := c.AddTrack(tracks[i]); err != nil {
			return nil, err
		}
	}
	if err := c.Finalize(key); err != nil {
		return nil, err
	}
	return c.Figure(), nil
}
