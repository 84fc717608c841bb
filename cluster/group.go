package cluster

import (
	"fmt"

	"github.com/hupe1980/gomapper/model"
)

// Group collects points into one set per non-noise label.
//
// Sets are ordered by the first appearance of their label; points inside a
// set keep input order with duplicate values dropped.
func Group(points []model.Point, labels []int) ([][]model.Point, error) {
	if len(labels) != len(points) {
		return nil, fmt.Errorf("cluster: got %d labels for %d points", len(labels), len(points))
	}

	slot := make(map[int]int)
	var sets [][]model.Point
	var seen []map[model.Key]struct{}

	for i, l := range labels {
		if l == Noise {
			continue
		}
		s, ok := slot[l]
		if !ok {
			s = len(sets)
			slot[l] = s
			sets = append(sets, nil)
			seen = append(seen, make(map[model.Key]struct{}))
		}
		k := points[i].Key()
		if _, dup := seen[s][k]; dup {
			continue
		}
		seen[s][k] = struct{}{}
		sets[s] = append(sets[s], points[i])
	}
	return sets, nil
}
