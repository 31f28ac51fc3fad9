package diagram

import (
	"math"
	"strconv"
	"strings"
)

// IsBlockDiagram classifies markup as a base-10 block diagram: it must
// carry the calibrated fill palette AND rectangle elements, and must not
// contain a circle (pie charts reuse the same palette and would otherwise
// be misdetected).
func IsBlockDiagram(markup string, cal Calibration) bool {
	nodes := parseMarkup(markup)
	if countTag(nodes, "circle") > 0 {
		return false
	}
	if countTag(nodes, "rect") == 0 {
		return false
	}
	for _, n := range nodes {
		if matchesFill(n.attr("fill"), cal.FillPalette) {
			return true
		}
	}
	return false
}

// DecodeBlocks counts the value shown by a block diagram: hundred blocks
// contribute 100 each, unit blocks 1 each. Returns false for markup that
// is not a block diagram (including anything with a circle element).
func DecodeBlocks(markup string, cal Calibration) (int, bool) {
	nodes := parseMarkup(markup)
	if countTag(nodes, "circle") > 0 {
		return 0, false
	}

	total := 0

	// Hundred blocks, two independent heuristics: the clip-path marker the
	// renderer stamps on the composite shape, and the large rounded border
	// rectangle drawn around it.
	for _, n := range nodes {
		if hasHundredClip(n, cal) {
			total += 100
			continue
		}
		if n.Tag == "rect" && isHundredBorder(n, cal) {
			total += 100
		}
	}

	// Regular unit blocks: palette-filled rects, plus palette-filled simple
	// paths that lack the hundred-block clip marker.
	units := 0
	for _, n := range nodes {
		if !matchesFill(n.attr("fill"), cal.FillPalette) {
			continue
		}
		switch n.Tag {
		case "rect":
			if !isHundredBorder(n, cal) {
				units++
			}
		case "path":
			if !hasHundredClip(n, cal) {
				units++
			}
		}
	}
	total += units

	if total > 0 {
		return total, true
	}

	// Column fallback: no directly countable blocks, so count rectangles
	// matching the column height signature. Older markup renders each
	// column as BlocksPerColumn stacked rects; newer markup draws one rect
	// per column. Either way a column is worth 10.
	columns := 0
	colRects := 0
	for _, n := range nodes {
		if n.Tag != "rect" {
			continue
		}
		h, ok := numAttr(n, "height")
		if !ok {
			continue
		}
		if math.Abs(h-cal.ColumnRectHeight) <= cal.ColumnHeightTolerance {
			colRects++
		}
	}
	if colRects == 0 {
		return 0, false
	}
	if colRects >= cal.BlocksPerColumn {
		columns = colRects / cal.BlocksPerColumn
	} else {
		columns = colRects
	}
	return columns * 10, true
}

// hasHundredClip reports whether the element's clip-path carries the
// hundred-block marker.
func hasHundredClip(n node, cal Calibration) bool {
	clip := n.attr("clip-path")
	return clip != "" && strings.Contains(strings.ToLower(clip), cal.HundredClipMarker)
}

// isHundredBorder matches the large rounded border rect of a hundred block
// by height and corner radius range.
func isHundredBorder(n node, cal Calibration) bool {
	h, ok := numAttr(n, "height")
	if !ok || h < cal.HundredRectMinHeight || h > cal.HundredRectMaxHeight {
		return false
	}
	rx, ok := numAttr(n, "rx")
	if !ok || rx < cal.HundredRectMinRadius || rx > cal.HundredRectMaxRadius {
		return false
	}
	return true
}

// numAttr parses a numeric attribute, tolerating a trailing unit suffix.
func numAttr(n node, name string) (float64, bool) {
	raw := strings.TrimSpace(n.attr(name))
	if raw == "" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "px")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
