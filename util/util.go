package util

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// GatherAllMidiPaths walks a directory for .mid/.midi files. maxNum
// of 0 means no limit. A path that is itself a midi file comes back
// as a single-element list.
func GatherAllMidiPaths(path string, maxNum int) []string {
	if isMidiPath(path) {
		return []string{path}
	}
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isMidiPath(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	sort.Strings(res)
	return res
}

func isMidiPath(s string) bool {
	return strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi")
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys is GetKeys plus a deterministic order.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
