package sink

import (
	"strings"
	"testing"

	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
	"github.com/karyoviz/karyoplot/pkg/plot/styles"
)

func testFigure(t *testing.T) (*compose.Figure, []*layout.Track) {
	t.Helper()
	c := compose.New(layout.NewEngine(layout.DefaultGeometry()))
	track := &layout.Track{
		Markers: []layout.Marker{
			{Position: 10, Direction: layout.Right, Color: "#b326ff", Filled: true},
			{Position: 10.05, Direction: layout.Right, Color: "#b326ff", Filled: true},
			{Position: 80, Direction: layout.Left, Color: "orange"},
		},
		Length:     132.876,
		SplitPoint: 63,
		Label:      "Chr. 1",
	}
	if err := c.AddTrack(track); err != nil {
		t.Fatal(err)
	}
	if err := c.Finalize([]compose.KeyEntry{{Color: "#b326ff", Label: "GRs"}}); err != nil {
		t.Fatal(err)
	}
	return c.Figure(), c.Tracks()
}

func TestRenderSVG(t *testing.T) {
	fig, _ := testFigure(t)
	svg := string(RenderSVG(fig))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 `,
		`<polygon`,
		`fill="#b326ff"`,
		`fill="lightgrey"`,
		`fill="grey"`,
		`>Chr. 1</text>`,
		`>10 Mb</text>`,
		`>GRs</text>`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}

	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVGMonoStyle(t *testing.T) {
	fig, _ := testFigure(t)
	svg := string(RenderSVG(fig, WithStyle(styles.Mono{})))

	if strings.Contains(svg, "#b326ff") || strings.Contains(svg, `fill="orange"`) {
		t.Error("mono output still contains authored colors")
	}
}

func TestRenderSVGFlipsYAxis(t *testing.T) {
	fig := compose.NewFigure()
	fig.AddPolygon(compose.Polygon{
		Points: []compose.Point{{X: 0, Y: 0}},
		Color:  "black", Fill: true,
	})
	fig.AddPolygon(compose.Polygon{
		Points: []compose.Point{{X: 0, Y: 10}},
		Color:  "black", Fill: true,
	})

	svg := string(RenderSVG(fig, WithMargin(0)))
	// The higher figure point (Y=10) must come out with the smaller device Y.
	low := strings.Index(svg, `points="0.00,10.00"`)
	high := strings.Index(svg, `points="0.00,0.00"`)
	if low == -1 || high == -1 {
		t.Fatalf("flipped points not found in: %s", svg)
	}
	if high < low {
		t.Error("Y axis was not flipped")
	}
}

func TestRenderJSON(t *testing.T) {
	_, tracks := testFigure(t)
	g := layout.DefaultGeometry()

	data, err := RenderJSON(tracks, WithJSONStyle("classic"), WithJSONGeometry(g))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"style": "classic"`,
		`"marker_height": 3`,
		`"label": "Chr. 1"`,
		`"split_point": 63`,
		`"direction": "right"`,
		`"direction": "left"`,
		`"height_offset"`,
		`"extent"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderJSON() missing %q", want)
		}
	}
}
