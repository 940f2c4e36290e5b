// Package pin scores numeric PINs against a common-PIN dictionary, structural
// patterns and the holder's demographic dates.
//
// Everything here is a pure function of its inputs. The lookup tables are
// package-level and never written after init, so Validate is safe for
// concurrent use without locking.
package pin

// Validate scores pin and classifies it as STRONG or WEAK.
//
// Structural patterns lower the score but never add a weakness reason, so a
// PIN with a single structural hit (score 85) is still STRONG.
func Validate(pin string, d Demographics) Result {
	score := startScore
	reasons := make([]string, 0, 4)
	patterns := make([]string, 0, 4)

	if IsCommonlyUsed(pin) {
		reasons = append(reasons, ReasonCommonlyUsed)
		score -= commonPenalty
		patterns = append(patterns, PatternCommon)
	}

	structural := DetectPatterns(pin)
	patterns = append(patterns, structural...)
	score -= patternPenalty * len(structural)

	issues := CheckDemographics(pin, d)
	reasons = append(reasons, issues...)
	score -= demographicPenalty * len(issues)

	score = max(0, score)

	strength := Weak
	if len(reasons) == 0 && score >= StrongThreshold {
		strength = Strong
	}

	return Result{
		Strength:         strength,
		WeaknessReasons:  reasons,
		SecurityScore:    score,
		DetectedPatterns: patterns,
	}
}
