package grasp

import (
	"slices"

	"github.com/elliotchance/pie/v2"
)

// transitions computes which objects become grasped and which are released.
// An object is grasped while it is touched by both groups and detection is
// not paused.
func transitions(setA, setB map[string]int, grasped []string, paused bool) (toGrasp, toRelease []string) {
	want := make(map[string]bool)
	if !paused {
		for id, n := range setA {
			if n > 0 && setB[id] > 0 {
				want[id] = true
			}
		}
	}

	for _, id := range grasped {
		if !want[id] {
			toRelease = append(toRelease, id)
		}
	}
	for id := range want {
		if !slices.Contains(grasped, id) {
			toGrasp = append(toGrasp, id)
		}
	}

	return pie.Sort(toGrasp), pie.Sort(toRelease)
}
