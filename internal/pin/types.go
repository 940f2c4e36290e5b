package pin

// Strength is the final classification of a PIN.
type Strength string

const (
	Strong Strength = "STRONG"
	Weak   Strength = "WEAK"
)

// Reason codes. These strings are part of the public contract; do not rename.
const (
	ReasonCommonlyUsed           = "COMMONLY_USED"
	ReasonDemographicSelf        = "DEMOGRAPHIC_DOB_SELF"
	ReasonDemographicSpouse      = "DEMOGRAPHIC_DOB_SPOUSE"
	ReasonDemographicAnniversary = "DEMOGRAPHIC_ANNIVERSARY"
)

// Pattern labels (informational, they only move the score).
const (
	PatternCommon     = "Common PIN"
	PatternRepeated   = "Repeated digits"
	PatternSequential = "Sequential pattern"
	PatternKeyboard   = "Keyboard pattern"
)

// Scoring constants.
const (
	startScore         = 100
	commonPenalty      = 40
	patternPenalty     = 15
	demographicPenalty = 25

	// StrongThreshold is the minimum score a PIN without weakness reasons
	// needs to be classified STRONG.
	StrongThreshold = 60
)

// Demographics holds optional YYYY-MM-DD dates tied to the PIN holder.
// An empty field means "not provided".
type Demographics struct {
	DOB         string `json:"dob,omitempty"`
	SpouseDOB   string `json:"spouseDob,omitempty"`
	Anniversary string `json:"anniversary,omitempty"`
}

// Result is the outcome of Validate.
type Result struct {
	Strength         Strength `json:"strength"`
	WeaknessReasons  []string `json:"weaknessReasons"`
	SecurityScore    int      `json:"securityScore"`
	DetectedPatterns []string `json:"detectedPatterns"`
}

// IsStrong reports whether the result classified the PIN as STRONG.
func (r Result) IsStrong() bool { return r.Strength == Strong }
