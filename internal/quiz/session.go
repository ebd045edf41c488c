package quiz

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionSize is how many questions one game asks.
const DefaultSessionSize = 10

// RandSource draws j uniformly from [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewRand returns a generator seeded with seed, or with the clock when seed
// is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type Session struct {
	ID        string
	Questions []Question
}

// Shuffle returns a uniformly random permutation of questions using
// Fisher-Yates. The input slice is not modified.
func Shuffle(questions []Question, rng RandSource) []Question {
	shuffled := make([]Question, len(questions))
	copy(shuffled, questions)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// SelectSession permutes the whole bank and keeps the first size questions.
// The session holds min(size, bank.Len()) questions; size <= 0 keeps them all.
func SelectSession(bank *Bank, size int, rng RandSource) Session {
	shuffled := Shuffle(bank.Questions(), rng)
	if size > 0 && size < len(shuffled) {
		shuffled = shuffled[:size]
	}
	return Session{
		ID:        uuid.NewString(),
		Questions: shuffled,
	}
}

func (s Session) Len() int {
	return len(s.Questions)
}

// Evaluate scores responses against the session's questions by ID.
func (s Session) Evaluate(responses []SubmittedResponse) []ResponseResult {
	lookup := make(map[string]Question, len(s.Questions))
	for _, question := range s.Questions {
		lookup[question.QuestionID] = question
	}

	results := make([]ResponseResult, 0, len(responses))
	for _, response := range responses {
		question, ok := lookup[response.QuestionID]
		if !ok {
			results = append(results, ResponseResult{
				QuestionID: response.QuestionID,
				Status:     StatusInvalidQuestion,
			})
			continue
		}

		letter := NormalizeLetter(response.Answer)
		if letterIndex(letter) < 0 {
			results = append(results, ResponseResult{
				QuestionID: response.QuestionID,
				Status:     StatusInvalidLetter,
			})
			continue
		}

		status := StatusIncorrect
		if question.IsCorrect(letter) {
			status = StatusCorrect
		}
		results = append(results, ResponseResult{
			QuestionID: response.QuestionID,
			Status:     status,
		})
	}

	return results
}
