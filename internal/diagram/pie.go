package diagram

import (
	"regexp"
	"strconv"

	"github.com/bitdittowit/autoduo/internal/fraction"
)

// IsPieChart classifies markup as a pie chart. Rect-bearing markup is
// excluded outright (grids and block diagrams own rects); after that a
// circle, a palette-colored path, or a sector path reaching the center is
// a positive signal.
func IsPieChart(markup string, cal Calibration) bool {
	nodes := parseMarkup(markup)
	if countTag(nodes, "rect") > 0 {
		return false
	}
	if countTag(nodes, "circle") > 0 {
		return true
	}
	for _, n := range nodes {
		if n.Tag != "path" {
			continue
		}
		if matchesFill(n.attr("fill"), cal.FillPalette) {
			return true
		}
		if pathReachesCenter(n.attr("d"), cal) {
			return true
		}
	}
	return false
}

// DecodePie reads the filled fraction of a pie chart, trying three
// strategies in order:
//
//  1. stroke-bearing sector paths: colored over total;
//  2. circle plus center-line paths: coordinate heuristics for
//     half/quarter, defaulting a single ambiguous sector to a quarter;
//  3. no circle: all center-line paths, colored over total.
func DecodePie(markup string, cal Calibration) (fraction.Fraction, bool) {
	nodes := parseMarkup(markup)
	if countTag(nodes, "rect") > 0 {
		return fraction.Fraction{}, false
	}

	// Strategy 1: sectors drawn with an explicit stroke.
	total, colored := 0, 0
	for _, n := range nodes {
		if n.Tag != "path" || !n.hasAttr("stroke") {
			continue
		}
		total++
		if matchesFill(n.attr("fill"), cal.FillPalette) {
			colored++
		}
	}
	if total > 0 && colored > 0 {
		return simplifyCount(colored, total)
	}

	sectors := sectorPaths(nodes, cal)

	// Strategy 2: a circle underlay with sector paths on top.
	if countTag(nodes, "circle") > 0 {
		if len(sectors) == 1 {
			return singleSectorFraction(sectors[0], cal), true
		}
		if len(sectors) > 1 {
			colored := 0
			for _, s := range sectors {
				if matchesFill(s.attr("fill"), cal.FillPalette) {
					colored++
				}
			}
			if colored > 0 {
				return simplifyCount(colored, len(sectors))
			}
		}
		return fraction.Fraction{}, false
	}

	// Strategy 3: sector paths only.
	if len(sectors) > 0 {
		colored := 0
		for _, s := range sectors {
			if matchesFill(s.attr("fill"), cal.FillPalette) {
				colored++
			}
		}
		if colored > 0 {
			return simplifyCount(colored, len(sectors))
		}
	}

	return fraction.Fraction{}, false
}

// sectorPaths returns every path whose data reaches the pie center.
func sectorPaths(nodes []node, cal Calibration) []node {
	var out []node
	for _, n := range nodes {
		if n.Tag == "path" && pathReachesCenter(n.attr("d"), cal) {
			out = append(out, n)
		}
	}
	return out
}

var coordRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// singleSectorFraction infers the fraction of one sector over a circle
// from its arc start and end points. The sector path runs
// M start … A … end L center Z, so the last coordinate pair is the center
// and the pair before it is the arc end. Diametrically opposite endpoints
// through the center mean a half; everything else is read as a quarter,
// which is what a single ambiguous sector almost always is.
func singleSectorFraction(sector node, cal Calibration) fraction.Fraction {
	nums := coordRe.FindAllString(sector.attr("d"), -1)
	if len(nums) >= 6 {
		x1, _ := strconv.ParseFloat(nums[0], 64)
		y1, _ := strconv.ParseFloat(nums[1], 64)
		x2, _ := strconv.ParseFloat(nums[len(nums)-4], 64)
		y2, _ := strconv.ParseFloat(nums[len(nums)-3], 64)
		if opposite(x1, x2, cal.PieCenterX) && near(y1, y2) {
			return fraction.Fraction{Num: 1, Den: 2}
		}
		if opposite(y1, y2, cal.PieCenterY) && near(x1, x2) {
			return fraction.Fraction{Num: 1, Den: 2}
		}
	}
	return fraction.Fraction{Num: 1, Den: 4}
}

// coordinate slack for the endpoint heuristics; the renderer emits
// rounded coordinates that wobble by a pixel.
const coordSlack = 2.0

func near(a, b float64) bool {
	d := a - b
	return d > -coordSlack && d < coordSlack
}

func opposite(a, b, center float64) bool {
	return near(a+b, 2*center)
}

func simplifyCount(colored, total int) (fraction.Fraction, bool) {
	f, err := fraction.Simplify(int64(colored), int64(total))
	if err != nil {
		return fraction.Fraction{}, false
	}
	return f, true
}
