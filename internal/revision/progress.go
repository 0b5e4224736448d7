package revision

import "github.com/example/jeeprep/internal/domain"

// Progress is the dashboard summary over the whole topic collection.
type Progress struct {
	Mastered int
	Total    int
}

// Aggregate counts topics the dashboard treats as mastered: at least 7
// attempts with more than 5 successes.
//
// This is intentionally not the same rule as Classify's Mastered bucket,
// which tests the success rate instead of a fixed attempt count. The two
// definitions drifted apart independently upstream and are kept separate
// here; see DESIGN.md.
func Aggregate(all []domain.RevisionTopic) Progress {
	p := Progress{Total: len(all)}
	for _, t := range all {
		if t.Attempts() >= 7 && t.RecallSuccess > 5 {
			p.Mastered++
		}
	}
	return p
}
