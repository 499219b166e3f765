// Package recommend implements the user-based collaborative-filtering math:
// Pearson similarity between two users' rating vectors restricted to the
// movies both have rated, and a similarity-weighted score prediction. All
// functions are pure and safe to call concurrently.
package recommend

import "math"

// Pearson returns the correlation between two users' scores over the movies
// both have rated. The second return is false when the value is undefined:
// either the users share no rated movies, or one of them scored every shared
// movie identically (zero variance on the shared subset).
func Pearson(a, b map[string]int) (float64, bool) {
	shared := make([]string, 0, len(a))
	for movieID := range a {
		if _, ok := b[movieID]; ok {
			shared = append(shared, movieID)
		}
	}
	if len(shared) == 0 {
		return 0, false
	}

	var sumA, sumB float64
	for _, movieID := range shared {
		sumA += float64(a[movieID])
		sumB += float64(b[movieID])
	}
	n := float64(len(shared))
	meanA := sumA / n
	meanB := sumB / n

	var cov, ssA, ssB float64
	for _, movieID := range shared {
		da := float64(a[movieID]) - meanA
		db := float64(b[movieID]) - meanB
		cov += da * db
		ssA += da * da
		ssB += db * db
	}
	if ssA == 0 || ssB == 0 {
		return 0, false
	}

	sim := cov / math.Sqrt(ssA*ssB)
	// Guard against float drift pushing the result out of [-1, 1].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, true
}

// Predict estimates the score the target user would give the movie, as the
// similarity-weighted average of the scores given by positively-correlated
// raters. raters maps each candidate's user id to their full rating history
// and must not contain the target user. The second return is false when no
// candidate has a defined, positive similarity with the target.
func Predict(target map[string]int, raters map[string]map[string]int, movieID string) (float64, bool) {
	var num, den float64
	for _, history := range raters {
		score, ok := history[movieID]
		if !ok {
			continue
		}
		sim, ok := Pearson(target, history)
		if !ok || sim <= 0 {
			continue
		}
		num += sim * float64(score)
		den += sim
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
