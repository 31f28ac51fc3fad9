package diagram

import (
	"strconv"
	"strings"

	"github.com/bitdittowit/autoduo/internal/fraction"
)

// Grid classification floor: anything with fewer cells is a stray shape,
// not a grid.
const minGridCells = 4

// IsGridDiagram classifies markup as a cell grid: at least minGridCells
// painted rect/path cells with at least one palette-colored cell, and no
// pie-chart signals (sector paths to center, circles).
func IsGridDiagram(markup string, cal Calibration) bool {
	_, ok := DecodeGrid(markup, cal)
	return ok
}

// DecodeGrid reads the fraction shown by a colored cell grid: colored
// cells over total cells. Markup containing circles or pie sector paths is
// rejected before any counting.
func DecodeGrid(markup string, cal Calibration) (fraction.Fraction, bool) {
	nodes := parseMarkup(markup)
	if countTag(nodes, "circle") > 0 {
		return fraction.Fraction{}, false
	}
	for _, n := range nodes {
		if n.Tag == "path" && pathReachesCenter(n.attr("d"), cal) {
			return fraction.Fraction{}, false
		}
	}

	total := 0
	colored := 0
	for _, n := range nodes {
		if n.Tag != "rect" && n.Tag != "path" {
			continue
		}
		if !hasColorFill(n) {
			continue
		}
		total++
		if matchesFill(n.attr("fill"), cal.FillPalette) {
			colored++
		}
	}

	if total < minGridCells || colored == 0 {
		return fraction.Fraction{}, false
	}
	return fraction.Fraction{Num: int64(colored), Den: int64(total)}, true
}

// pathReachesCenter reports whether path data contains a line segment
// ending at the normalized sector apex, the signature of a pie slice.
func pathReachesCenter(d string, cal Calibration) bool {
	if d == "" {
		return false
	}
	for _, tok := range centerTokens(cal) {
		if strings.Contains(compactPath(d), tok) {
			return true
		}
	}
	return false
}

// compactPath strips whitespace variation from path data so coordinate
// tokens match regardless of the renderer's separator style.
func compactPath(d string) string {
	d = strings.ReplaceAll(d, " ", "")
	d = strings.ReplaceAll(d, "\t", "")
	return d
}

// centerTokens lists the compacted "line to center" spellings.
func centerTokens(cal Calibration) []string {
	x := strconv.FormatFloat(cal.PieCenterX, 'f', -1, 64)
	y := strconv.FormatFloat(cal.PieCenterY, 'f', -1, 64)
	return []string{
		"L" + x + "," + y,
		"L" + x + y, // space-separated before compaction
		"l" + x + "," + y,
	}
}
