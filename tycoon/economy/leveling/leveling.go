package leveling

import "math"

// Curve maps a level to the experience needed to leave it.
type Curve struct {
	BaseXPPerLevel int64
}

// Threshold returns level * BaseXPPerLevel.
func (c Curve) Threshold(level int) int64 {
	return int64(level) * c.BaseXPPerLevel
}

// Progress is the outcome of adding experience to a level.
type Progress struct {
	Level        int
	Experience   int64 // remaining progress toward the next level
	LevelsGained int
}

// Advance adds gained experience to (level, experience) and promotes through
// as many levels as the total covers.
func (c Curve) Advance(level int, experience, gained int64) Progress {
	p := Progress{Level: level, Experience: experience + gained}
	if c.BaseXPPerLevel <= 0 {
		return p
	}
	if p.Level < 1 {
		p.Level = 1
	}
	for p.Experience >= c.Threshold(p.Level) {
		p.Experience -= c.Threshold(p.Level)
		p.Level++
		p.LevelsGained++
	}
	return p
}

// ExperienceForGold converts collected gold into experience:
// floor(floor(gold / goldPerXP) * multiplier).
func ExperienceForGold(gold, goldPerXP, multiplier float64) int64 {
	if gold <= 0 || goldPerXP <= 0 || multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(math.Floor(gold/goldPerXP) * multiplier))
}
