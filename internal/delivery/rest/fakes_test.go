package rest

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

var errStorage = errors.New("connection reset")

type answerCall struct {
	userID      int64
	wordID      int64
	wasInRepeat bool
}

// fakeQuiz implements every service interface the handler consumes.
type fakeQuiz struct {
	mu sync.Mutex

	users   map[int64]*entities.User
	userErr error

	pick      *entities.WordPick
	selectErr error

	answers   []answerCall
	answerErr error

	round    *entities.Round
	roundErr error
	targets  map[int64]string
	checkErr error

	stats    *entities.Stats
	statsErr error

	randomWords []string
}

func newFakeQuiz() *fakeQuiz {
	return &fakeQuiz{
		users:   make(map[int64]*entities.User),
		targets: make(map[int64]string),
	}
}

func (f *fakeQuiz) EnsureUser(_ context.Context, externalID int64) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.userErr != nil {
		return nil, f.userErr
	}
	if u, ok := f.users[externalID]; ok {
		return u, nil
	}
	u := &entities.User{ID: int64(len(f.users) + 1), ExternalID: externalID}
	f.users[externalID] = u
	return u, nil
}

func (f *fakeQuiz) SelectNext(_ context.Context, _ int64) (*entities.WordPick, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.pick, nil
}

func (f *fakeQuiz) RecordAnswer(_ context.Context, userID, wordID int64, wasInRepeat bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.answerErr != nil {
		return f.answerErr
	}
	f.answers = append(f.answers, answerCall{userID: userID, wordID: wordID, wasInRepeat: wasInRepeat})
	return nil
}

func (f *fakeQuiz) BuildRound(_ context.Context, d entities.Difficulty) (*entities.Round, error) {
	if f.roundErr != nil {
		return nil, f.roundErr
	}
	if !d.Valid() {
		return nil, service.ErrInvalidDifficulty
	}
	r := *f.round
	r.Difficulty = d
	return &r, nil
}

func (f *fakeQuiz) CheckAnswer(_ context.Context, wordID int64, selected string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	target, ok := f.targets[wordID]
	return ok && target == selected, nil
}

func (f *fakeQuiz) GetStats(_ context.Context, _ int64) (*entities.Stats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeQuiz) RandomTargets(_ context.Context, count int) ([]string, error) {
	if count < 1 {
		return nil, service.ErrInvalidCount
	}
	if count > len(f.randomWords) {
		count = len(f.randomWords)
	}
	return f.randomWords[:count], nil
}
