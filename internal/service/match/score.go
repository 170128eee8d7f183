package match

import (
	"github.com/unipair/match-service/internal/db"
)

// MinRoommateScore is the admission threshold: roommate candidates scoring
// below it never appear in results.
const MinRoommateScore = 40

// Breakdown axis names, stable across cache entries and persisted rows.
const (
	AxisGender      = "genderMatch"
	AxisCleanliness = "cleanliness"
	AxisSmoking     = "smoking"
	AxisSleep       = "sleepSchedule"
	AxisSimple      = "simpleMatch"
)

// RoommateScore computes the compatibility score for a (seeker, candidate)
// pair as the unweighted sum of four independent axes (max 100). Pure
// function, no I/O; either preferences row may be nil.
//
// Axes:
//   - gender (30): full credit unless the seeker set a preference the
//     candidate's gender doesn't match
//   - cleanliness (25): full credit if seeker has no preference; half credit
//     (12) if only the candidate is silent; otherwise linear decay of 6
//     points per level of difference on the 1-5 scale
//   - smoking (25): only NON_SMOKER_ONLY is a hard constraint, satisfied
//     solely by a candidate who also requires it
//   - sleep schedule (20): 20 when the seeker is indifferent or both match,
//     15 when only the candidate is indifferent, 5 when both differ
func RoommateScore(seeker *db.MatchPreferences, candidate *db.Profile) (int, map[string]int) {
	breakdown := make(map[string]int, 4)
	var candPrefs *db.MatchPreferences
	if candidate != nil {
		candPrefs = candidate.Preferences
	}

	// Gender preference (30 points)
	if seeker != nil && seeker.PreferredGender != nil {
		if candidate != nil && candidate.Gender == *seeker.PreferredGender {
			breakdown[AxisGender] = 30
		} else {
			breakdown[AxisGender] = 0
		}
	} else {
		breakdown[AxisGender] = 30 // no preference = full credit
	}

	// Cleanliness (25 points)
	switch {
	case seeker == nil || seeker.Cleanliness == nil:
		breakdown[AxisCleanliness] = 25
	case candPrefs == nil || candPrefs.Cleanliness == nil:
		// seeker cares, candidate is silent: half credit
		breakdown[AxisCleanliness] = 12
	default:
		diff := *seeker.Cleanliness - *candPrefs.Cleanliness
		if diff < 0 {
			diff = -diff
		}
		breakdown[AxisCleanliness] = max(0, 25-diff*6)
	}

	// Smoking (25 points)
	if seeker != nil && seeker.SmokingPreference == db.SmokingNonSmokerOnly {
		if candPrefs != nil && candPrefs.SmokingPreference == db.SmokingNonSmokerOnly {
			breakdown[AxisSmoking] = 25
		} else {
			breakdown[AxisSmoking] = 0
		}
	} else {
		breakdown[AxisSmoking] = 25
	}

	// Sleep schedule (20 points)
	seekerSleep := sleepPreference(seeker)
	candidateSleep := sleepPreference(candPrefs)
	switch {
	case seekerSleep == "":
		breakdown[AxisSleep] = 20
	case candidateSleep == "":
		breakdown[AxisSleep] = 15
	case seekerSleep == candidateSleep:
		breakdown[AxisSleep] = 20
	default:
		breakdown[AxisSleep] = 5
	}

	total := 0
	for _, points := range breakdown {
		total += points
	}
	return total, breakdown
}

// FixedScore is the binary-eligibility score used by the MENTOR and
// COMMUNICATION categories: every candidate surviving the hard filters
// scores 100.
func FixedScore() (int, map[string]int) {
	return 100, map[string]int{AxisSimple: 100}
}

// sleepPreference normalizes a missing row or NO_PREFERENCE to "".
func sleepPreference(prefs *db.MatchPreferences) string {
	if prefs == nil || prefs.SleepSchedule == db.SleepNoPreference {
		return ""
	}
	return prefs.SleepSchedule
}
