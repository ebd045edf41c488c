package quiz

type Tier string

const (
	TierTop Tier = "top"
	TierMid Tier = "mid"
	TierLow Tier = "low"
)

// Score counts correct answers out of the questions actually asked, which
// may be fewer than the requested session size.
type Score struct {
	Correct int
	Asked   int
}

// ScoreResults tallies evaluated responses. Every result counts as asked;
// only StatusCorrect counts as correct.
func ScoreResults(results []ResponseResult) Score {
	score := Score{Asked: len(results)}
	for _, result := range results {
		if result.Status == StatusCorrect {
			score.Correct++
		}
	}
	return score
}

func (s Score) Percent() float64 {
	if s.Asked <= 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Asked)
}

func (s Score) Tier() Tier {
	switch percent := s.Percent(); {
	case percent >= 90:
		return TierTop
	case percent >= 70:
		return TierMid
	default:
		return TierLow
	}
}

func (t Tier) Message() string {
	switch t {
	case TierTop:
		return "Outstanding! You really know your stuff."
	case TierMid:
		return "Good job! A little more practice and you'll ace it."
	default:
		return "Keep learning and try again!"
	}
}
