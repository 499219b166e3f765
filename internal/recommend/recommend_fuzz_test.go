package recommend

import "testing"

func FuzzPearsonBounds(f *testing.F) {
	f.Add(uint16(0xABCD), uint16(0x1234), 5)
	f.Add(uint16(0), uint16(0), 1)
	f.Add(uint16(0xFFFF), uint16(0xFFFF), 8)

	f.Fuzz(func(t *testing.T, seedA, seedB uint16, size int) {
		if size < 1 || size > 8 {
			return
		}

		// Derive two deterministic rating maps over a shared movie set from
		// the fuzzed seeds, two bits per score.
		a := make(map[string]int, size)
		b := make(map[string]int, size)
		movies := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"}
		for i := 0; i < size; i++ {
			a[movies[i]] = int(seedA>>(2*i))%5 + 1
			b[movies[i]] = int(seedB>>(2*i))%5 + 1
		}

		sim, ok := Pearson(a, b)
		if !ok {
			return
		}
		if sim < -1 || sim > 1 {
			t.Fatalf("similarity %v outside [-1, 1]", sim)
		}

		back, okBack := Pearson(b, a)
		if !okBack || back != sim {
			t.Fatalf("similarity not symmetric: %v vs %v (ok=%v)", sim, back, okBack)
		}
	})
}
