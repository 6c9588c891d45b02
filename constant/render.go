package constant

// Stimulus layout, in canvas pixels or fractions of the canvas half-size
const (
	// MappingArrowX is the horizontal offset of each key arrow as a fraction of centerX
	MappingArrowX = 0.25
	// MappingArrowY is the vertical offset of the arrows as a fraction of centerY
	MappingArrowY = 0.75
	// MappingLabelY is the vertical offset of the key labels as a fraction of centerY
	MappingLabelY       = 0.7
	MappingArrowHalfLen = 20.0
	MappingArrowWidth   = 5.0
	MappingArrowHead    = 8.0
	MappingLineWidth    = 5.0

	// ScoreX is the horizontal offset of the score readout as a fraction of centerX
	ScoreX = 0.75

	FixationOuterRadius = 8.0
	FixationInnerRadius = 2.0
	FixationArm         = 10.0
	FixationLineWidth   = 5.0

	// FeedbackOffsetY places feedback text below fixation
	FeedbackOffsetY = 100.0
	// InstructionY is the vertical offset of demo instructions as a fraction of centerY
	InstructionY = 0.5

	LabelFontSize       = 16.0
	FeedbackFontSize    = 20.0
	InstructionFontSize = 16.0

	// LineSpacing multiplies font size for multi-line text advance
	LineSpacing = 2.0
)

// Fixed palette (hex)
const (
	ColorBackground  = "#000000"
	ColorLabel       = "#ffffff"
	ColorInstruction = "#dcdcdc"
	ColorPositive    = "#00ff00"
	ColorNegative    = "#ff0000"
	ColorFixationBar = "#000000"
)

// Terminal backend cell geometry in virtual pixels
const (
	TermCellWidth  = 8.0
	TermCellHeight = 16.0
)

// Headless Canvas
const (
	// DefaultCanvasWidth is the recording canvas width when no canvas is supplied
	DefaultCanvasWidth = 1024
	// DefaultCanvasHeight is the recording canvas height when no canvas is supplied
	DefaultCanvasHeight = 768
)
