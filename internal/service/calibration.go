package service

// CalibrationCategory labels how a student's stated confidence matched the
// actual correctness of their answer. Always derived from the stored
// (correctness, confidence) pair, never persisted.
type CalibrationCategory string

const (
	// Correct and confident.
	WellCalibratedHigh CalibrationCategory = "well_calibrated_high"
	// Correct but not confident.
	Underconfident CalibrationCategory = "underconfident"
	// Incorrect but confident.
	Overconfident CalibrationCategory = "overconfident"
	// Incorrect and not confident.
	WellCalibratedLow CalibrationCategory = "well_calibrated_low"
)

func Classify(correct, confident bool) CalibrationCategory {
	switch {
	case correct && confident:
		return WellCalibratedHigh
	case correct && !confident:
		return Underconfident
	case !correct && confident:
		return Overconfident
	default:
		return WellCalibratedLow
	}
}

// IsGoodPrediction reports whether the category counts toward the wadayano
// score: the student predicted their own performance correctly.
func (c CalibrationCategory) IsGoodPrediction() bool {
	return c == WellCalibratedHigh || c == WellCalibratedLow
}

// CategoryCounts accumulates calibration categories across attempts. Folding
// over counts keeps every aggregate independent of attempt arrival order.
type CategoryCounts struct {
	WellCalibratedHigh int `json:"wellCalibratedHigh"`
	Underconfident     int `json:"underconfident"`
	Overconfident      int `json:"overconfident"`
	WellCalibratedLow  int `json:"wellCalibratedLow"`
}

func (cc *CategoryCounts) Add(c CalibrationCategory) {
	switch c {
	case WellCalibratedHigh:
		cc.WellCalibratedHigh++
	case Underconfident:
		cc.Underconfident++
	case Overconfident:
		cc.Overconfident++
	case WellCalibratedLow:
		cc.WellCalibratedLow++
	}
}

func (cc CategoryCounts) Total() int {
	return cc.WellCalibratedHigh + cc.Underconfident + cc.Overconfident + cc.WellCalibratedLow
}

func (cc CategoryCounts) GoodPredictions() int {
	return cc.WellCalibratedHigh + cc.WellCalibratedLow
}

func (cc CategoryCounts) Correct() int {
	return cc.WellCalibratedHigh + cc.Underconfident
}

// KnowledgeScore is plain accuracy; nil when there is no data rather than a
// misleading zero.
func (cc CategoryCounts) KnowledgeScore() *float64 {
	return ratio(cc.Correct(), cc.Total())
}

// WadayanoScore is calibration accuracy: the fraction of attempts where the
// student's confidence matched the outcome.
func (cc CategoryCounts) WadayanoScore() *float64 {
	return ratio(cc.GoodPredictions(), cc.Total())
}

func ratio(part, total int) *float64 {
	if total == 0 {
		return nil
	}
	v := float64(part) / float64(total)
	return &v
}
