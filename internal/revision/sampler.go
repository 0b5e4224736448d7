package revision

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// Session composition targets. Ceiling rounding makes the three targets
// sum to at least the session size; the fill loop caps the overshoot.
const (
	needsPracticeShare = 0.50
	reviewingShare     = 0.40
	masteredShare      = 0.10
)

// Sampler draws a stratified recall session from the full topic set,
// biased towards topics the student struggles with.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler seeded from the clock.
func NewSampler() *Sampler {
	return NewSamplerWithRand(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
}

// NewSamplerWithRand returns a sampler using the given source. Tests pass
// a fixed seed here.
func NewSamplerWithRand(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample returns an ordered session list of length min(targetSize,
// len(all)). A non-positive targetSize or an empty topic set yields an
// empty session.
//
// When there are more topics than the session can hold, topics are
// bucketed by mastery, each bucket is shuffled, and the session fills in
// priority order (needs-practice, reviewing, mastered) up to each
// bucket's share of the size, backfilling in the same priority order
// when a bucket runs short. A final shuffle hides the bucket ordering
// from the presentation; only the sampling bias remains.
func (s *Sampler) Sample(all []domain.RevisionTopic, targetSize int) []domain.RevisionTopic {
	if targetSize <= 0 || len(all) == 0 {
		return nil
	}

	if len(all) <= targetSize {
		session := slices.Clone(all)
		s.shuffle(session)
		return session
	}

	var needsPractice, reviewing, mastered []domain.RevisionTopic
	for _, t := range all {
		switch Classify(t.RecallSuccess, t.RecallFails) {
		case Mastered:
			mastered = append(mastered, t)
		case Reviewing:
			reviewing = append(reviewing, t)
		default:
			needsPractice = append(needsPractice, t)
		}
	}
	s.shuffle(needsPractice)
	s.shuffle(reviewing)
	s.shuffle(mastered)

	needsPracticeTarget := ceilShare(targetSize, needsPracticeShare)
	reviewingTarget := ceilShare(targetSize, reviewingShare)
	masteredTarget := ceilShare(targetSize, masteredShare)

	session := make([]domain.RevisionTopic, 0, targetSize)
	added := make(map[string]bool, targetSize)
	take := func(from []domain.RevisionTopic, cap int) {
		for _, t := range from {
			if len(session) >= cap {
				return
			}
			if !added[t.ID] {
				added[t.ID] = true
				session = append(session, t)
			}
		}
	}

	take(needsPractice, needsPracticeTarget)
	take(reviewing, needsPracticeTarget+reviewingTarget)
	take(mastered, needsPracticeTarget+reviewingTarget+masteredTarget)

	// Backfill from the priority-ordered concatenation when the buckets
	// were smaller than their targets.
	if len(session) < targetSize {
		for _, bucket := range [][]domain.RevisionTopic{needsPractice, reviewing, mastered} {
			for _, t := range bucket {
				if len(session) >= targetSize {
					break
				}
				if !added[t.ID] {
					added[t.ID] = true
					session = append(session, t)
				}
			}
		}
	}

	if len(session) > targetSize {
		session = session[:targetSize]
	}
	s.shuffle(session)
	return session
}

func (s *Sampler) shuffle(topics []domain.RevisionTopic) {
	s.rng.Shuffle(len(topics), func(i, j int) {
		topics[i], topics[j] = topics[j], topics[i]
	})
}

func ceilShare(size int, share float64) int {
	return int(math.Ceil(float64(size) * share))
}
