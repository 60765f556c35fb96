package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

var errStorage = errors.New("connection reset")

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	sendErr  error
	stopped  bool
	nextID   int
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 10)}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// messages returns the sent new messages, skipping edits.
func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

type answerCall struct {
	userID      int64
	wordID      int64
	wasInRepeat bool
}

type fakeQuiz struct {
	picks     []*entities.WordPick
	selectErr error
	answers   []answerCall
	round     *entities.Round
	roundErr  error
	targets   map[int64]string
	stats     *entities.Stats
}

func (f *fakeQuiz) EnsureUser(_ context.Context, externalID int64) (*entities.User, error) {
	return &entities.User{ID: externalID + 1000, ExternalID: externalID}, nil
}

func (f *fakeQuiz) SelectNext(context.Context, int64) (*entities.WordPick, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	if len(f.picks) == 0 {
		return nil, service.ErrNoWordsAvailable
	}
	p := f.picks[0]
	f.picks = f.picks[1:]
	return p, nil
}

func (f *fakeQuiz) RecordAnswer(_ context.Context, userID, wordID int64, wasInRepeat bool) error {
	f.answers = append(f.answers, answerCall{userID: userID, wordID: wordID, wasInRepeat: wasInRepeat})
	return nil
}

func (f *fakeQuiz) BuildRound(_ context.Context, d entities.Difficulty) (*entities.Round, error) {
	if f.roundErr != nil {
		return nil, f.roundErr
	}
	r := *f.round
	r.Difficulty = d
	return &r, nil
}

func (f *fakeQuiz) CheckAnswer(_ context.Context, wordID int64, selected string) (bool, error) {
	target, ok := f.targets[wordID]
	return ok && target == selected, nil
}

func (f *fakeQuiz) GetStats(context.Context, int64) (*entities.Stats, error) {
	return f.stats, nil
}

func newTestHandler(bot *fakeBot, f *fakeQuiz) *Handler {
	return NewHandler(bot, zap.NewNop(), f, f, f, f, f)
}

func commandUpdate(userID int64, cmd string) tgbotapi.Update {
	text := "/" + cmd
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: userID},
			From:     &tgbotapi.User{ID: userID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func callbackUpdate(userID int64, data string, msg *tgbotapi.Message) tgbotapi.Update {
	if msg == nil {
		msg = &tgbotapi.Message{MessageID: 5}
	}
	msg.Chat = &tgbotapi.Chat{ID: userID}
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    &tgbotapi.User{ID: userID},
			Message: msg,
			Data:    data,
		},
	}
}
