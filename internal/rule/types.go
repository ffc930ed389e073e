package rule

import "fmt"

// #region dimension
// Dimension is an attribute axis a response can match on. The zero value is
// NoDimension and stands for "not set" wherever a dimension is optional.
type Dimension uint8

const (
	NoDimension Dimension = iota
	Color
	Form
	Number
	// Other means the chosen template shares no attribute with the stimulus.
	Other
)

// String returns the single-letter tag used in trial logs.
func (d Dimension) String() string {
	switch d {
	case NoDimension:
		return ""
	case Color:
		return "C"
	case Form:
		return "F"
	case Number:
		return "N"
	case Other:
		return "O"
	}
	return fmt.Sprintf("Dimension(%d)", uint8(d))
}

// Name is the long form, e.g. "color".
func (d Dimension) Name() string {
	switch d {
	case Color:
		return "color"
	case Form:
		return "shape"
	case Number:
		return "number"
	case Other:
		return "other"
	}
	return "none"
}

// Valid reports whether d is one of the four classifier outputs.
func (d Dimension) Valid() bool {
	return d >= Color && d <= Other
}

// IsRule reports whether d can be an active matching rule.
func (d Dimension) IsRule() bool {
	return d >= Color && d <= Number
}

// ParseDimension reads a tag produced by String. The empty string yields NoDimension.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "":
		return NoDimension, nil
	case "C":
		return Color, nil
	case "F":
		return Form, nil
	case "N":
		return Number, nil
	case "O":
		return Other, nil
	}
	return NoDimension, fmt.Errorf("unknown dimension %q", s)
}

// MarshalText encodes d as its tag.
func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a tag produced by MarshalText.
func (d *Dimension) UnmarshalText(b []byte) error {
	v, err := ParseDimension(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// #endregion dimension

// #region protocol-constants
const (
	// StreakToAdvance is the run of consecutive correct responses that completes a category.
	StreakToAdvance = 10
	// MaxTrials is the trial budget of a scored session (one full deck).
	MaxTrials = 128
)

// schedule visits each rule twice; its length bounds the completable categories.
var schedule = [...]Dimension{Color, Form, Number, Color, Form, Number}

// MaxCategories is the number of categories a scored session can complete.
const MaxCategories = len(schedule)

// Schedule returns the fixed rule sequence.
func Schedule() []Dimension {
	out := make([]Dimension, len(schedule))
	copy(out, schedule[:])
	return out
}

// #endregion protocol-constants

// #region advance
// Advance describes a category completion.
type Advance struct {
	Rule       Dimension // rule now in force
	Categories int       // categories completed including this one
	// Exhausted is set when the schedule has no further entry. No new rule
	// starts and the session ends at the next termination check.
	Exhausted bool
}

// #endregion advance
