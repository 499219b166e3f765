package recommend

import (
	"math"
	"testing"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		a, b   map[string]int
		want   float64
		wantOK bool
	}{
		{
			name:   "no overlap",
			a:      map[string]int{"m1": 5, "m2": 3},
			b:      map[string]int{"m3": 4, "m4": 2},
			wantOK: false,
		},
		{
			name:   "perfect positive correlation",
			a:      map[string]int{"m1": 5, "m2": 3},
			b:      map[string]int{"m1": 4, "m2": 2, "m3": 5},
			want:   1,
			wantOK: true,
		},
		{
			name:   "perfect negative correlation",
			a:      map[string]int{"m1": 5, "m2": 1},
			b:      map[string]int{"m1": 1, "m2": 5},
			want:   -1,
			wantOK: true,
		},
		{
			name:   "zero variance on one side",
			a:      map[string]int{"m1": 3, "m2": 3},
			b:      map[string]int{"m1": 1, "m2": 5},
			wantOK: false,
		},
		{
			name:   "zero variance on both sides",
			a:      map[string]int{"m1": 4, "m2": 4},
			b:      map[string]int{"m1": 2, "m2": 2},
			wantOK: false,
		},
		{
			name:   "single shared movie has zero variance",
			a:      map[string]int{"m1": 5},
			b:      map[string]int{"m1": 5},
			wantOK: false,
		},
		{
			name:   "mixed correlation",
			a:      map[string]int{"m1": 5, "m2": 1, "m3": 3},
			b:      map[string]int{"m1": 4, "m2": 2, "m3": 5},
			want:   0.6546536707079772,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pearson(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Pearson() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearson_Symmetric(t *testing.T) {
	pairs := []struct {
		a, b map[string]int
	}{
		{
			a: map[string]int{"m1": 5, "m2": 3, "m3": 1},
			b: map[string]int{"m1": 4, "m2": 2, "m3": 5, "m4": 3},
		},
		{
			a: map[string]int{"m1": 1, "m2": 2, "m3": 3, "m4": 4},
			b: map[string]int{"m2": 5, "m3": 1, "m4": 2},
		},
	}

	for _, p := range pairs {
		ab, okAB := Pearson(p.a, p.b)
		ba, okBA := Pearson(p.b, p.a)
		if okAB != okBA {
			t.Fatalf("symmetry broken on ok: %v vs %v", okAB, okBA)
		}
		if math.Abs(ab-ba) > 1e-12 {
			t.Fatalf("similarity not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestPredict_SingleCandidate(t *testing.T) {
	// A rates {M1:5, M2:3}; B rates {M1:4, M2:2, M3:5}. With B as the only
	// candidate the similarity weight cancels and A's predicted score for M3
	// is exactly B's score.
	target := map[string]int{"m1": 5, "m2": 3}
	raters := map[string]map[string]int{
		"userB": {"m1": 4, "m2": 2, "m3": 5},
	}

	got, ok := Predict(target, raters, "m3")
	if !ok {
		t.Fatalf("expected a defined prediction")
	}
	if math.Abs(got-5.0) > 1e-9 {
		t.Fatalf("Predict() = %v, want 5.0", got)
	}
}

func TestPredict_IgnoresNonPositiveCandidates(t *testing.T) {
	target := map[string]int{"m1": 5, "m2": 3}
	positive := map[string]map[string]int{
		"userB": {"m1": 4, "m2": 2, "m3": 5},
	}
	withNoise := map[string]map[string]int{
		"userB": {"m1": 4, "m2": 2, "m3": 5},
		// Anti-correlated rater of m3.
		"userC": {"m1": 1, "m2": 5, "m3": 1},
		// Zero-variance rater of m3 (undefined similarity).
		"userD": {"m1": 4, "m2": 4, "m3": 2},
		// Rater with no overlap beyond m3 itself.
		"userE": {"m3": 4, "m9": 2},
	}

	want, ok := Predict(target, positive, "m3")
	if !ok {
		t.Fatalf("expected a defined prediction")
	}
	got, ok := Predict(target, withNoise, "m3")
	if !ok {
		t.Fatalf("expected a defined prediction with noise candidates")
	}
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("non-positive candidates changed the prediction: %v vs %v", got, want)
	}
}

func TestPredict_WeightedAverage(t *testing.T) {
	// Two positively-correlated candidates with different similarities; the
	// prediction must land strictly between their scores, closer to the more
	// similar rater's.
	target := map[string]int{"m1": 5, "m2": 1, "m3": 3}
	raters := map[string]map[string]int{
		"close":   {"m1": 5, "m2": 1, "m3": 3, "mx": 5},
		"further": {"m1": 4, "m2": 2, "m3": 4, "mx": 2},
	}

	simClose, _ := Pearson(target, raters["close"])
	simFurther, _ := Pearson(target, raters["further"])
	if simClose <= simFurther {
		t.Fatalf("fixture broken: close similarity %v <= further %v", simClose, simFurther)
	}

	want := (simClose*5 + simFurther*2) / (simClose + simFurther)
	got, ok := Predict(target, raters, "mx")
	if !ok {
		t.Fatalf("expected a defined prediction")
	}
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Predict() = %v, want %v", got, want)
	}
	if got <= 2 || got >= 5 {
		t.Fatalf("prediction %v outside candidate score range", got)
	}
}

func TestPredict_Undefined(t *testing.T) {
	tests := []struct {
		name   string
		target map[string]int
		raters map[string]map[string]int
	}{
		{
			name:   "no raters",
			target: map[string]int{"m1": 5},
			raters: map[string]map[string]int{},
		},
		{
			name:   "no rater overlaps with target",
			target: map[string]int{"m1": 5, "m2": 3},
			raters: map[string]map[string]int{
				"userB": {"m3": 4, "m4": 2},
				"userC": {"m3": 1},
			},
		},
		{
			name:   "only anti-correlated raters",
			target: map[string]int{"m1": 5, "m2": 1},
			raters: map[string]map[string]int{
				"userB": {"m1": 1, "m2": 5, "m3": 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Predict(tt.target, tt.raters, "m3"); ok {
				t.Fatalf("expected undefined prediction, got %v", got)
			}
		})
	}
}
