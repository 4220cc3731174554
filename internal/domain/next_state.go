package domain

import (
	"fmt"
	"strings"
)

// DefaultYesNoState is the engine token that constrains the next reply to yes or no
const DefaultYesNoState = "student_answer_if_any_further_question"

// NextStateKind classifies the engine's next_state token
type NextStateKind int

const (
	NextComplete NextStateKind = iota
	NextContinue
	NextYesNo
)

// NextState is the tagged variant over the engine's opaque next_state token.
// Only the empty token and the reserved yes/no token carry meaning; every
// other value is passed back untouched.
type NextState struct {
	Kind  NextStateKind
	Token string
}

// ParseNextState classifies token, using yesNoToken as the reserved value
func ParseNextState(token, yesNoToken string) NextState {
	switch {
	case token == "":
		return NextState{Kind: NextComplete}
	case yesNoToken != "" && token == yesNoToken:
		return NextState{Kind: NextYesNo, Token: token}
	default:
		return NextState{Kind: NextContinue, Token: token}
	}
}

// Complete reports whether the engine considers the dialogue finished
func (n NextState) Complete() bool {
	return n.Kind == NextComplete
}

func (n NextState) String() string {
	switch n.Kind {
	case NextComplete:
		return "complete"
	case NextYesNo:
		return fmt.Sprintf("yes/no(%s)", n.Token)
	default:
		return fmt.Sprintf("continue(%s)", n.Token)
	}
}

// NormalizeYesNo maps a free-text reply onto the canonical "Yes" or "No"
func NormalizeYesNo(text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y":
		return "Yes", nil
	case "no", "n":
		return "No", nil
	}
	return "", NewValidationError("reply", "answer yes or no")
}
