package world

import (
	"fmt"
)

// LevelManager holds the levels a viewer can show and which one is current.
type LevelManager struct {
	levels  []Level
	current int
}

// NewLevelManager creates a manager over levels, starting at the first one.
// Later levels replace earlier ones with the same name, keeping the earlier
// position.
func NewLevelManager(levels ...Level) *LevelManager {
	lm := &LevelManager{}
	for _, level := range levels {
		lm.Add(level)
	}
	return lm
}

// Add appends a level, or replaces the level with the same name.
func (lm *LevelManager) Add(level Level) {
	for i := range lm.levels {
		if lm.levels[i].Name == level.Name {
			lm.levels[i] = level
			return
		}
	}
	lm.levels = append(lm.levels, level)
}

// Len returns the number of levels.
func (lm *LevelManager) Len() int {
	return len(lm.levels)
}

// Current returns the active level. It reports false when there are none.
func (lm *LevelManager) Current() (Level, bool) {
	if len(lm.levels) == 0 {
		return Level{}, false
	}
	return lm.levels[lm.current], true
}

// Next advances to the following level, wrapping around, and returns it.
func (lm *LevelManager) Next() (Level, bool) {
	return lm.step(1)
}

// Prev moves to the preceding level, wrapping around, and returns it.
func (lm *LevelManager) Prev() (Level, bool) {
	return lm.step(-1)
}

func (lm *LevelManager) step(delta int) (Level, bool) {
	n := len(lm.levels)
	if n == 0 {
		return Level{}, false
	}
	lm.current = ((lm.current+delta)%n + n) % n
	return lm.levels[lm.current], true
}

// SwitchTo makes the named level current.
func (lm *LevelManager) SwitchTo(name string) (Level, error) {
	for i, level := range lm.levels {
		if level.Name == name {
			lm.current = i
			return level, nil
		}
	}
	return Level{}, fmt.Errorf("unknown level: %s", name)
}

// GetAvailableLevels returns the level names in order.
func (lm *LevelManager) GetAvailableLevels() []string {
	names := make([]string, len(lm.levels))
	for i, level := range lm.levels {
		names[i] = level.Name
	}
	return names
}

// IsValidLevel checks if a level name exists
func (lm *LevelManager) IsValidLevel(name string) bool {
	for _, level := range lm.levels {
		if level.Name == name {
			return true
		}
	}
	return false
}
