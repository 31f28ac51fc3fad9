package diagram

import (
	"fmt"
	"strings"
	"testing"
)

var cal = DefaultCalibration()

func svg(body string) string {
	return `<svg viewBox="0 0 200 200">` + body + `</svg>`
}

func TestDecodeBlocks_Units(t *testing.T) {
	markup := svg(strings.Repeat(`<rect x="0" y="0" width="20" height="20" fill="#1cb0f6"></rect>`, 7))
	got, ok := DecodeBlocks(markup, cal)
	if !ok || got != 7 {
		t.Errorf("DecodeBlocks units = %d ok=%v, want 7", got, ok)
	}
}

func TestDecodeBlocks_Hundreds(t *testing.T) {
	markup := svg(
		`<path clip-path="url(#hundredBlock)" fill="#1cb0f6" d="M0 0h10"></path>` +
			`<rect width="180" height="180" rx="16" fill="none"></rect>` +
			`<rect x="0" y="0" width="20" height="20" fill="#1cb0f6"></rect>`)
	got, ok := DecodeBlocks(markup, cal)
	if !ok || got != 201 {
		t.Errorf("DecodeBlocks hundreds = %d ok=%v, want 201", got, ok)
	}
}

func TestDecodeBlocks_ColumnFallback(t *testing.T) {
	// 4 column-signature rects, no palette fill: 4 columns x 10.
	markup := svg(strings.Repeat(`<rect width="20" height="18" fill="#cccccc"></rect>`, 4))
	got, ok := DecodeBlocks(markup, cal)
	if !ok || got != 40 {
		t.Errorf("DecodeBlocks column fallback = %d ok=%v, want 40", got, ok)
	}

	// 16 stacked rects at the same signature: two columns of 8.
	markup = svg(strings.Repeat(`<rect width="20" height="18" fill="#cccccc"></rect>`, 16))
	got, ok = DecodeBlocks(markup, cal)
	if !ok || got != 20 {
		t.Errorf("DecodeBlocks stacked fallback = %d ok=%v, want 20", got, ok)
	}
}

func TestDecodeBlocks_RejectsCircles(t *testing.T) {
	markup := svg(
		`<circle cx="100" cy="100" r="90" fill="#ddd"></circle>` +
			`<rect width="20" height="20" fill="#1cb0f6"></rect>`)
	if got, ok := DecodeBlocks(markup, cal); ok {
		t.Errorf("DecodeBlocks with circle = %d, want rejection", got)
	}
	if IsBlockDiagram(markup, cal) {
		t.Error("IsBlockDiagram accepted circle-bearing markup")
	}
}

func TestDecodeBlocks_PrefersDarkTheme(t *testing.T) {
	markup := `<div class="light-theme"><svg>` +
		strings.Repeat(`<rect width="20" height="20" fill="#0000ff"></rect>`, 3) +
		`</svg></div><div class="dark-theme"><svg>` +
		strings.Repeat(`<rect width="20" height="20" fill="#2b70c9"></rect>`, 5) +
		`</svg></div>`
	got, ok := DecodeBlocks(markup, cal)
	if !ok || got != 5 {
		t.Errorf("DecodeBlocks dark theme = %d ok=%v, want 5", got, ok)
	}
}

func TestIsBlockDiagram(t *testing.T) {
	yes := svg(`<rect width="20" height="20" fill="#1cb0f6"></rect>`)
	if !IsBlockDiagram(yes, cal) {
		t.Error("IsBlockDiagram rejected a palette rect")
	}
	noRects := svg(`<path fill="#1cb0f6" d="M0 0h10"></path>`)
	if IsBlockDiagram(noRects, cal) {
		t.Error("IsBlockDiagram accepted markup without rects")
	}
}

func TestDecodeGrid(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<rect x="%d" width="20" height="20" fill="#1cb0f6"></rect>`, i*20)
	}
	for i := 3; i < 10; i++ {
		fmt.Fprintf(&b, `<rect x="%d" width="20" height="20" fill="#e5e5e5"></rect>`, i*20)
	}
	got, ok := DecodeGrid(svg(b.String()), cal)
	if !ok {
		t.Fatal("DecodeGrid failed on a 10-cell grid")
	}
	if got.Num != 3 || got.Den != 10 {
		t.Errorf("DecodeGrid = %d/%d, want 3/10", got.Num, got.Den)
	}
}

func TestDecodeGrid_Exclusions(t *testing.T) {
	withCircle := svg(`<circle cx="100" cy="100" r="50" fill="#eee"></circle>` +
		strings.Repeat(`<rect width="20" height="20" fill="#1cb0f6"></rect>`, 4))
	if _, ok := DecodeGrid(withCircle, cal); ok {
		t.Error("DecodeGrid accepted circle-bearing markup")
	}

	withSector := svg(`<path fill="#1cb0f6" d="M100 10 A90 90 0 0 1 190 100 L100,100 Z"></path>` +
		strings.Repeat(`<rect width="20" height="20" fill="#1cb0f6"></rect>`, 4))
	if _, ok := DecodeGrid(withSector, cal); ok {
		t.Error("DecodeGrid accepted pie sector markup")
	}

	tooFew := svg(`<rect width="20" height="20" fill="#1cb0f6"></rect><rect width="20" height="20" fill="#eee"></rect>`)
	if _, ok := DecodeGrid(tooFew, cal); ok {
		t.Error("DecodeGrid accepted fewer than 4 cells")
	}
}

func TestDecodePie_StrokedSectors(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteString(`<path stroke="#fff" fill="#1cb0f6" d="M100 10 L100,100 Z"></path>`)
	}
	b.WriteString(`<path stroke="#fff" fill="#e5e5e5" d="M10 100 L100,100 Z"></path>`)

	got, ok := DecodePie(svg(b.String()), cal)
	if !ok {
		t.Fatal("DecodePie failed on stroked sectors")
	}
	if got.Num != 3 || got.Den != 4 {
		t.Errorf("DecodePie = %d/%d, want 3/4", got.Num, got.Den)
	}
	if got.Value() != 0.75 {
		t.Errorf("DecodePie value = %v, want 0.75", got.Value())
	}
}

func TestDecodePie_SingleSectorDefaultsQuarter(t *testing.T) {
	markup := svg(`<circle cx="100" cy="100" r="90" fill="#e5e5e5"></circle>` +
		`<path fill="#1cb0f6" d="M100 10 A90 90 0 0 1 173 155 L100,100 Z"></path>`)
	got, ok := DecodePie(markup, cal)
	if !ok {
		t.Fatal("DecodePie failed on single sector")
	}
	if got.Num != 1 || got.Den != 4 {
		t.Errorf("DecodePie single ambiguous sector = %d/%d, want 1/4", got.Num, got.Den)
	}
}

func TestDecodePie_HalfByOppositeEndpoints(t *testing.T) {
	// Start (10,100) and end (190,100) are diametrically opposite.
	markup := svg(`<circle cx="100" cy="100" r="90" fill="#e5e5e5"></circle>` +
		`<path fill="#1cb0f6" d="M10 100 A90 90 0 0 1 190 100 L100,100 Z"></path>`)
	got, ok := DecodePie(markup, cal)
	if !ok {
		t.Fatal("DecodePie failed on half sector")
	}
	if got.Num != 1 || got.Den != 2 {
		t.Errorf("DecodePie half = %d/%d, want 1/2", got.Num, got.Den)
	}
}

func TestDecodePie_RejectsRects(t *testing.T) {
	markup := svg(`<rect width="20" height="20" fill="#1cb0f6"></rect>` +
		`<path stroke="#fff" fill="#1cb0f6" d="M100 10 L100,100 Z"></path>`)
	if _, ok := DecodePie(markup, cal); ok {
		t.Error("DecodePie accepted rect-bearing markup")
	}
	if IsPieChart(markup, cal) {
		t.Error("IsPieChart accepted rect-bearing markup")
	}
}

func TestIsPieChart(t *testing.T) {
	if !IsPieChart(svg(`<circle cx="100" cy="100" r="90" fill="#eee"></circle>`), cal) {
		t.Error("IsPieChart rejected circle markup")
	}
	if !IsPieChart(svg(`<path fill="#1cb0f6" d="M100 10 L100,100 Z"></path>`), cal) {
		t.Error("IsPieChart rejected colored sector markup")
	}
	if IsPieChart(svg(`<path fill="#999999" d="M0 0 h10"></path>`), cal) {
		t.Error("IsPieChart accepted unrelated path markup")
	}
}
