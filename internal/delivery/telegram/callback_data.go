package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Callback actions.
const (
	actionPick  = "pick"
	actionRound = "round"
	actionQuiz  = "quiz"
)

var errBadCallback = errors.New("malformed callback data")

// callbackData is the "action:param:param" payload of an inline button.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildPickCallback encodes the "next" button under an adaptive word.
func buildPickCallback(wordID int64, wasInRepeat bool) string {
	return callbackData{
		Action: actionPick,
		Params: []string{strconv.FormatInt(wordID, 10), strconv.FormatBool(wasInRepeat)},
	}.encode()
}

func parsePickCallback(cd callbackData) (wordID int64, wasInRepeat bool, err error) {
	if cd.Action != actionPick || len(cd.Params) != 2 {
		return 0, false, errBadCallback
	}
	if wordID, err = strconv.ParseInt(cd.Params[0], 10, 64); err != nil {
		return 0, false, errBadCallback
	}
	if wasInRepeat, err = strconv.ParseBool(cd.Params[1]); err != nil {
		return 0, false, errBadCallback
	}
	return wordID, wasInRepeat, nil
}

// buildRoundCallback encodes an option button. The option text itself stays in
// the keyboard: callback data is limited to 64 bytes.
func buildRoundCallback(d entities.Difficulty, wordID int64, optionIdx int) string {
	return callbackData{
		Action: actionRound,
		Params: []string{
			strconv.Itoa(int(d)),
			strconv.FormatInt(wordID, 10),
			strconv.Itoa(optionIdx),
		},
	}.encode()
}

type roundAnswer struct {
	Difficulty entities.Difficulty
	WordID     int64
	OptionIdx  int
}

func parseRoundCallback(cd callbackData) (roundAnswer, error) {
	if cd.Action != actionRound || len(cd.Params) != 3 {
		return roundAnswer{}, errBadCallback
	}

	d, err := strconv.Atoi(cd.Params[0])
	if err != nil || !entities.Difficulty(d).Valid() {
		return roundAnswer{}, errBadCallback
	}
	wordID, err := strconv.ParseInt(cd.Params[1], 10, 64)
	if err != nil {
		return roundAnswer{}, errBadCallback
	}
	idx, err := strconv.Atoi(cd.Params[2])
	if err != nil || idx < 0 {
		return roundAnswer{}, errBadCallback
	}

	return roundAnswer{Difficulty: entities.Difficulty(d), WordID: wordID, OptionIdx: idx}, nil
}

func buildQuizCallback() string {
	return actionQuiz
}
