package revision

// Bucket is the derived mastery classification for a topic. It is never
// stored; callers recompute it from the counters whenever they need it.
type Bucket int

const (
	NeedsPractice Bucket = iota
	Reviewing
	Mastered
)

func (b Bucket) String() string {
	switch b {
	case Mastered:
		return "mastered"
	case Reviewing:
		return "reviewing"
	default:
		return "needs-practice"
	}
}

// Classify maps a topic's success/fail counters to a mastery bucket.
//
// Never-attempted topics count as needing practice, not as neutral; that
// check also keeps the rate computation away from a zero denominator.
// Mastery needs both an absolute floor (more than 5 successes) and a rate
// above 70%.
func Classify(success, fails int) Bucket {
	total := success + fails
	if total == 0 {
		return NeedsPractice
	}
	rate := float64(success) / float64(total)
	if success > 5 && rate > 0.7 {
		return Mastered
	}
	if fails > success {
		return NeedsPractice
	}
	return Reviewing
}

// Hue returns the indicator hue for a topic's mastery dot: the success
// ratio mapped linearly onto 0 (red) through 120 (green). The second
// return is false for never-attempted topics, which render as neutral
// gray instead of a point on the scale.
func Hue(success, fails int) (float64, bool) {
	total := success + fails
	if total == 0 {
		return 0, false
	}
	return float64(success) / float64(total) * 120, true
}
