// Package rest exposes the quiz over JSON HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, externalID int64) (*entities.User, error)
}

type WordSelector interface {
	SelectNext(ctx context.Context, userID int64) (*entities.WordPick, error)
}

type AnswerResolver interface {
	RecordAnswer(ctx context.Context, userID, wordID int64, wasInRepeat bool) error
}

type RoundBuilder interface {
	BuildRound(ctx context.Context, d entities.Difficulty) (*entities.Round, error)
	CheckAnswer(ctx context.Context, wordID int64, selected string) (bool, error)
}

type StatsService interface {
	GetStats(ctx context.Context, userID int64) (*entities.Stats, error)
}

type CatalogService interface {
	RandomTargets(ctx context.Context, count int) ([]string, error)
}

// Handler serves the quiz endpoints.
type Handler struct {
	users    UserService
	selector WordSelector
	resolver AnswerResolver
	rounds   RoundBuilder
	stats    StatsService
	catalog  CatalogService
	logger   *zap.Logger
}

func NewHandler(
	users UserService,
	selector WordSelector,
	resolver AnswerResolver,
	rounds RoundBuilder,
	stats StatsService,
	catalog CatalogService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:    users,
		selector: selector,
		resolver: resolver,
		rounds:   rounds,
		stats:    stats,
		catalog:  catalog,
		logger:   logger,
	}
}

type answerRequest struct {
	ExternalID  *int64 `json:"external_id"`
	WordID      *int64 `json:"word_id"`
	WasInRepeat bool   `json:"was_in_repeat"`
}

type modeAnswerRequest struct {
	ExternalID     *int64  `json:"external_id"`
	WordID         *int64  `json:"word_id"`
	SelectedOption *string `json:"selected_option"`
}

type modeAnswerResponse struct {
	Correct bool `json:"correct"`
	Next    any  `json:"next"`
}

func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Quiz API!"})
}

// NextWord serves GET /quiz/{external_id}.
func (h *Handler) NextWord(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromPath(w, r)
	if !ok {
		return
	}

	pick, err := h.selector.SelectNext(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pick)
}

// Stats serves GET /stats/{external_id}.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromPath(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.GetStats(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Answer serves POST /answer.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExternalID == nil || req.WordID == nil {
		writeMessage(w, http.StatusBadRequest, "external_id and word_id are required")
		return
	}

	user, err := h.users.EnsureUser(r.Context(), *req.ExternalID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.resolver.RecordAnswer(r.Context(), user.ID, *req.WordID, req.WasInRepeat); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Round serves GET /quiz/{mode}/{external_id}.
func (h *Handler) Round(w http.ResponseWriter, r *http.Request) {
	d, ok := entities.ParseMode(r.PathValue("mode"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "unknown quiz mode")
		return
	}

	if _, ok := h.userFromPath(w, r); !ok {
		return
	}

	round, err := h.rounds.BuildRound(r.Context(), d)
	if err != nil {
		if errors.Is(err, service.ErrNoWordsAvailable) {
			writeMessage(w, http.StatusOK, noWordsOfDifficulty(d))
			return
		}
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, round)
}

// RoundAnswer serves POST /quiz/{mode}/answer. The response carries the verdict
// and a fresh round of the same mode, or an empty object once the pool is empty.
func (h *Handler) RoundAnswer(w http.ResponseWriter, r *http.Request) {
	d, ok := entities.ParseMode(r.PathValue("mode"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "unknown quiz mode")
		return
	}

	var req modeAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExternalID == nil || req.WordID == nil || req.SelectedOption == nil {
		writeMessage(w, http.StatusBadRequest, "external_id, word_id and selected_option are required")
		return
	}

	if _, err := h.users.EnsureUser(r.Context(), *req.ExternalID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	correct, err := h.rounds.CheckAnswer(r.Context(), *req.WordID, *req.SelectedOption)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := modeAnswerResponse{Correct: correct, Next: struct{}{}}

	next, err := h.rounds.BuildRound(r.Context(), d)
	switch {
	case err == nil:
		resp.Next = next
	case errors.Is(err, service.ErrNoWordsAvailable):
	default:
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RandomWords serves GET /random-words/{count}.
func (h *Handler) RandomWords(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.PathValue("count"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "count must be an integer")
		return
	}

	words, err := h.catalog.RandomTargets(r.Context(), count)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, words)
}

// userFromPath resolves {external_id} to a user, creating it on first contact.
// It writes the error response itself and reports false on failure.
func (h *Handler) userFromPath(w http.ResponseWriter, r *http.Request) (*entities.User, bool) {
	externalID, err := strconv.ParseInt(r.PathValue("external_id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "external_id must be an integer")
		return nil, false
	}

	user, err := h.users.EnsureUser(r.Context(), externalID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return nil, false
	}

	return user, true
}

func noWordsOfDifficulty(d entities.Difficulty) string {
	return fmt.Sprintf("no words of difficulty=%d", d)
}
