package excerpt

import (
	"reflect"
	"sort"
	"testing"
)

func TestConsolidate_ChainsWithinGap(t *testing.T) {
	got := Consolidate([]Range{{0, 10}, {8, 15}, {18, 30}}, DefaultGapTolerance)
	want := []Range{{0, 30}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Consolidate = %v, want %v", got, want)
	}
}

func TestConsolidate_KeepsDistantRanges(t *testing.T) {
	got := Consolidate([]Range{{0, 10}, {18, 25}, {50, 60}}, DefaultGapTolerance)
	want := []Range{{0, 25}, {50, 60}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Consolidate = %v, want %v", got, want)
	}
}

func TestConsolidate_UnsortedInput(t *testing.T) {
	got := Consolidate([]Range{{50, 60}, {0, 10}, {5, 20}}, DefaultGapTolerance)
	want := []Range{{0, 20}, {50, 60}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Consolidate = %v, want %v", got, want)
	}
}

func TestConsolidate_Empty(t *testing.T) {
	if got := Consolidate(nil, DefaultGapTolerance); len(got) != 0 {
		t.Errorf("Consolidate(nil) = %v, want empty", got)
	}
}

func TestConsolidate_SingleCopied(t *testing.T) {
	in := []Range{{3, 7}}
	got := Consolidate(in, DefaultGapTolerance)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("Consolidate = %v, want %v", got, in)
	}
	got[0].Start = 99
	if in[0].Start != 3 {
		t.Error("output aliases input slice")
	}
}

func TestConsolidate_ZeroGapMergesOnlyOverlaps(t *testing.T) {
	got := Consolidate([]Range{{0, 10}, {10, 20}, {22, 30}}, 0)
	want := []Range{{0, 20}, {22, 30}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Consolidate = %v, want %v", got, want)
	}
}

// Output never has more ranges than the input, covers the input's union, and
// stays sorted with gaps strictly wider than the tolerance.
func TestConsolidate_Monotonic(t *testing.T) {
	inputs := [][]Range{
		{{0, 5}, {100, 110}, {3, 50}, {60, 61}, {55, 58}},
		{{0, 1}, {1, 2}, {2, 3}},
		{{40, 45}, {0, 2}, {20, 25}},
	}
	for _, in := range inputs {
		out := Consolidate(in, DefaultGapTolerance)
		if len(out) > len(in) {
			t.Errorf("consolidate grew range count: %d > %d", len(out), len(in))
		}
		if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].Start < out[j].Start }) {
			t.Errorf("output not sorted: %v", out)
		}
		for i := 1; i < len(out); i++ {
			if out[i].Start <= out[i-1].End+DefaultGapTolerance {
				t.Errorf("adjacent output ranges within gap: %v", out)
			}
		}
		for _, r := range in {
			covered := false
			for _, o := range out {
				if r.Start >= o.Start && r.End <= o.End {
					covered = true
					break
				}
			}
			if !covered {
				t.Errorf("input %v not covered by output %v", r, out)
			}
		}
	}
}
