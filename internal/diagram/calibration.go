package diagram

// Calibration holds the empirically derived thresholds that encode the
// vendor's rendering output: fill palettes, rectangle height ranges, corner
// radii. They are configuration, not algorithm. Expect them to need
// recalibration whenever the vendor ships a visual refresh, and never
// assume they generalize past the markup they were measured on.
type Calibration struct {
	// FillPalette is the set of fill colors marking a counted/colored
	// shape. The vendor reuses this two-tone blue palette across all three
	// diagram kinds.
	FillPalette []string `yaml:"fill_palette"`

	// HundredClipMarker is the substring of a clip-path attribute that
	// tags a hundred-block shape.
	HundredClipMarker string `yaml:"hundred_clip_marker"`

	// HundredRectMinHeight/MaxHeight bound the border rectangle of a
	// hundred block as drawn at the vendor's fixed scale.
	HundredRectMinHeight float64 `yaml:"hundred_rect_min_height"`
	HundredRectMaxHeight float64 `yaml:"hundred_rect_max_height"`

	// HundredRectMinRadius/MaxRadius bound its corner radius.
	HundredRectMinRadius float64 `yaml:"hundred_rect_min_radius"`
	HundredRectMaxRadius float64 `yaml:"hundred_rect_max_radius"`

	// ColumnRectHeight is the height signature of one ten-column rectangle
	// in the column-only fallback counting path.
	ColumnRectHeight float64 `yaml:"column_rect_height"`

	// ColumnHeightTolerance widens the ColumnRectHeight match.
	ColumnHeightTolerance float64 `yaml:"column_height_tolerance"`

	// BlocksPerColumn is how many fallback rectangles compose one column.
	BlocksPerColumn int `yaml:"blocks_per_column"`

	// PieCenter is the normalized sector apex every pie slice's line
	// segment ends at, as it appears in path data.
	PieCenterX float64 `yaml:"pie_center_x"`
	PieCenterY float64 `yaml:"pie_center_y"`

	// PercentScaleTolerance is the slack used when deciding whether a
	// block count is a literal value or a decimal scaled by 100.
	PercentScaleTolerance float64 `yaml:"percent_scale_tolerance"`
}

// DefaultCalibration returns thresholds measured against the vendor markup
// current at the time of writing.
func DefaultCalibration() Calibration {
	return Calibration{
		FillPalette: []string{
			"#1cb0f6", // primary blue
			"#49c0f8", // light blue
			"#2b70c9", // dark-theme blue
			"#84d8ff",
		},
		HundredClipMarker:     "hundred",
		HundredRectMinHeight:  140,
		HundredRectMaxHeight:  220,
		HundredRectMinRadius:  8,
		HundredRectMaxRadius:  24,
		ColumnRectHeight:      18,
		ColumnHeightTolerance: 2,
		BlocksPerColumn:       8,
		PieCenterX:            100,
		PieCenterY:            100,
		PercentScaleTolerance: 0.02,
	}
}
