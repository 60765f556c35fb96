package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// fakeStore is an in-memory progress store. WithinTx restores the previous
// state when the callback fails, so atomicity can be asserted.
type fakeStore struct {
	mu      sync.Mutex
	words   []entities.Word
	users   map[int64]*entities.User
	repeat  map[int64]map[int64]bool
	studied map[int64]map[int64]bool
	nextID  int64

	failAddStudied error
	txCount        int
}

func newFakeStore(words ...entities.Word) *fakeStore {
	s := &fakeStore{
		users:   map[int64]*entities.User{},
		repeat:  map[int64]map[int64]bool{},
		studied: map[int64]map[int64]bool{},
	}
	_, _ = s.InsertBatch(context.Background(), words)
	return s
}

func word(id int64, source, target string, d entities.Difficulty) entities.Word {
	return entities.Word{ID: id, Source: source, Target: target, Difficulty: d}
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// Transactor.

func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.txCount++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.repeat, s.studied = snapshot.repeat, snapshot.studied
		s.mu.Unlock()
		return err
	}
	return nil
}

type fakeSnapshot struct {
	repeat  map[int64]map[int64]bool
	studied map[int64]map[int64]bool
}

func (s *fakeStore) snapshotLocked() fakeSnapshot {
	return fakeSnapshot{repeat: cloneMarks(s.repeat), studied: cloneMarks(s.studied)}
}

func cloneMarks(in map[int64]map[int64]bool) map[int64]map[int64]bool {
	out := make(map[int64]map[int64]bool, len(in))
	for user, words := range in {
		out[user] = make(map[int64]bool, len(words))
		for w, v := range words {
			out[user][w] = v
		}
	}
	return out
}

// UserRepository.

func (s *fakeStore) GetOrCreate(_ context.Context, externalID int64) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	u := &entities.User{ID: int64(len(s.users) + 1), ExternalID: externalID, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) ListWithRepeats(_ context.Context, afterUserID int64, limit int) ([]entities.RepeatDigest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.RepeatDigest
	for id, u := range s.users {
		if id <= afterUserID || len(s.repeat[id]) == 0 {
			continue
		}
		out = append(out, entities.RepeatDigest{UserID: id, ExternalID: u.ExternalID, RepeatCount: len(s.repeat[id])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// WordRepository.

func (s *fakeStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.words), nil
}

func (s *fakeStore) byDifficultyLocked(d entities.Difficulty) []entities.Word {
	var out []entities.Word
	for _, w := range s.words {
		if w.Difficulty == d {
			out = append(out, w)
		}
	}
	return out
}

func (s *fakeStore) freshLocked(userID int64, d entities.Difficulty) []entities.Word {
	var out []entities.Word
	for _, w := range s.byDifficultyLocked(d) {
		if s.repeat[userID][w.ID] || s.studied[userID][w.ID] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func at(words []entities.Word, offset int) (*entities.Word, error) {
	if offset < 0 || offset >= len(words) {
		return nil, domain.ErrNotFound
	}
	w := words[offset]
	return &w, nil
}

func (s *fakeStore) CountByDifficulty(_ context.Context, d entities.Difficulty) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byDifficultyLocked(d)), nil
}

func (s *fakeStore) CountFresh(_ context.Context, userID int64, d entities.Difficulty) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.freshLocked(userID, d)), nil
}

func (s *fakeStore) ByDifficultyAt(_ context.Context, d entities.Difficulty, offset int) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.byDifficultyLocked(d), offset)
}

func (s *fakeStore) FreshAt(_ context.Context, userID int64, d entities.Difficulty, offset int) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.freshLocked(userID, d), offset)
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.words {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeStore) RandomDistractors(_ context.Context, word *entities.Word, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{word.Target: true}
	var out []string
	for _, w := range s.words {
		if len(out) == limit {
			break
		}
		if w.ID == word.ID || seen[w.Target] {
			continue
		}
		seen[w.Target] = true
		out = append(out, w.Target)
	}
	return out, nil
}

func (s *fakeStore) RandomTargets(_ context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, w := range s.words {
		if len(out) == limit {
			break
		}
		out = append(out, w.Target)
	}
	return out, nil
}

func (s *fakeStore) InsertBatch(_ context.Context, words []entities.Word) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range words {
		s.nextID++
		if w.ID == 0 {
			w.ID = s.nextID
		}
		s.words = append(s.words, w)
	}
	sort.Slice(s.words, func(i, j int) bool { return s.words[i].ID < s.words[j].ID })
	return len(words), nil
}

// ProgressRepository.

func (s *fakeStore) CountRepeat(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.repeat[userID]), nil
}

func (s *fakeStore) CountStudied(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.studied[userID]), nil
}

func (s *fakeStore) RepeatAt(_ context.Context, userID int64, offset int) (*entities.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Word
	for _, w := range s.words {
		if s.repeat[userID][w.ID] {
			out = append(out, w)
		}
	}
	return at(out, offset)
}

func (s *fakeStore) AddRepeat(_ context.Context, userID, wordID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addMark(s.repeat, userID, wordID), nil
}

func (s *fakeStore) RemoveRepeat(_ context.Context, userID, wordID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.repeat[userID][wordID] {
		return false, nil
	}
	delete(s.repeat[userID], wordID)
	return true, nil
}

func (s *fakeStore) AddStudied(_ context.Context, userID, wordID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAddStudied != nil {
		return false, s.failAddStudied
	}
	return addMark(s.studied, userID, wordID), nil
}

func addMark(marks map[int64]map[int64]bool, userID, wordID int64) bool {
	if marks[userID] == nil {
		marks[userID] = map[int64]bool{}
	}
	if marks[userID][wordID] {
		return false
	}
	marks[userID][wordID] = true
	return true
}

func (s *fakeStore) hasRepeat(userID, wordID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat[userID][wordID]
}

func (s *fakeStore) hasStudied(userID, wordID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studied[userID][wordID]
}

// vanishingRepeatStore reports a non-empty repeat pool but finds nothing when
// sampling, as when a concurrent answer empties the pool between the two queries.
type vanishingRepeatStore struct {
	*fakeStore
}

func (s vanishingRepeatStore) CountRepeat(context.Context, int64) (int, error) { return 1, nil }

func (s vanishingRepeatStore) CountFresh(context.Context, int64, entities.Difficulty) (int, error) {
	return 0, nil
}

func (s vanishingRepeatStore) RepeatAt(context.Context, int64, int) (*entities.Word, error) {
	return nil, domain.ErrNotFound
}

var errStorage = errors.New("storage unavailable")

type failingWordRepo struct {
	*fakeStore
}

func (f failingWordRepo) CountFresh(context.Context, int64, entities.Difficulty) (int, error) {
	return 0, errStorage
}
