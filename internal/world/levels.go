package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Level is a named tile layout.
type Level struct {
	Name  string
	Tiles [][]int
}

// Levels returns the built-in levels in play order. Each call returns fresh
// slices, so callers may modify them.
func Levels() []Level {
	return []Level{
		{
			Name: "meadow",
			Tiles: [][]int{
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, 2, 2, 2, 1, 2, 2, 2, 2, 1},
				{1, 3, 1, 3, 1, 3, 3, 3, 3, 1},
				{1, 4, 4, 1, 1, 1, 4, 1, 4, 1},
				{1, 5, 1, 5, 1, 5, 1, 5, 1, 1},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		{
			Name: "crossroads",
			Tiles: [][]int{
				{6, 6, 6, 6, 8, 6, 6, 6, 6, 6},
				{6, 1, 1, 1, 8, 1, 1, 1, 1, 6},
				{6, 1, 7, 7, 8, 7, 7, 1, 1, 6},
				{8, 8, 8, 8, 9, 8, 8, 8, 8, 8},
				{6, 1, 7, 7, 8, 7, 7, 1, 1, 6},
				{6, 1, 1, 1, 8, 1, 1, 1, 1, 6},
				{6, 6, 6, 6, 8, 6, 6, 6, 6, 6},
			},
		},
		{
			// Ruins are deliberately ragged: rows end where the walls crumbled.
			Name: "ruins",
			Tiles: [][]int{
				{4, 4, 4, 4, 4, 4, 4, 4},
				{4, 1, 1, 1, 1, 1, 4},
				{4, 1, 3, 3, 1, 4},
				{4, 1, 3, 3, 1, 1, 1, 4, 4, 4},
				{4, 1, 1},
				{4, 5, 5, 5, 5},
			},
		},
	}
}

// FindLevel returns the built-in level with the given name.
func FindLevel(name string) (Level, bool) {
	for _, level := range Levels() {
		if level.Name == name {
			return level, true
		}
	}
	return Level{}, false
}

// UnknownKeys returns the keys used in tiles that are not in the catalog.
func UnknownKeys(tiles [][]int, catalog Catalog) mapset.Set[int] {
	unknown := mapset.New[int]()
	for _, row := range tiles {
		for _, key := range row {
			if _, ok := catalog[key]; !ok {
				unknown.Put(key)
			}
		}
	}
	return unknown
}

// SortedKeys lists the members of a key set in ascending order.
func SortedKeys(set mapset.Set[int]) []int {
	keys := make([]int, 0, set.Size())
	set.Each(func(key int) {
		keys = append(keys, key)
	})
	sort.Ints(keys)
	return keys
}
