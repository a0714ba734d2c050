package assistant

// Normal glucose range in mg/dL.
const (
	NormalMinGlucose = 70.0
	NormalMaxGlucose = 140.0
)

// Band classifies a glucose reading against the normal range.
type Band string

// Glucose bands.
const (
	BandLow    Band = "low"
	BandNormal Band = "normal"
	BandHigh   Band = "high"
)

// ClassifyGlucose maps a reading in mg/dL to its band: low below 70,
// high above 140, normal in between (inclusive).
func ClassifyGlucose(value float64) Band {
	switch {
	case value < NormalMinGlucose:
		return BandLow
	case value > NormalMaxGlucose:
		return BandHigh
	default:
		return BandNormal
	}
}

// OutsideNormal reports whether the band warrants meal planning.
func (b Band) OutsideNormal() bool { return b != BandNormal }
