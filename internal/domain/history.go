package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WinScale int

const (
	Even WinScale = iota
	Advantage
	Pwnage
)

func (s WinScale) String() string {
	switch s {
	case Advantage:
		return "Advantage"
	case Pwnage:
		return "Pwnage"
	default:
		return "Even"
	}
}

func ParseWinScale(s string) (WinScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "even":
		return Even, nil
	case "advantage":
		return Advantage, nil
	case "pwnage":
		return Pwnage, nil
	}
	return Even, fmt.Errorf("invalid value: %s", s)
}

func (s WinScale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *WinScale) UnmarshalText(text []byte) error {
	parsed, err := ParseWinScale(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

const DefaultMatchDuration = 45 * time.Minute

var (
	ErrEmptyTeam     = errors.New("winner and loser lists must not be empty")
	ErrOverlap       = errors.New("player present in both winner and loser lists")
	ErrMissingPlayer = errors.New("empty player id")
	ErrDuplicate     = errors.New("player listed twice")
)

type HistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Winner    []PlayerID    `json:"winner"`
	Loser     []PlayerID    `json:"loser"`
	Scale     WinScale      `json:"scale"`
	Duration  time.Duration `json:"duration"`
	// Fake marks practice matches.
	Fake bool `json:"fake"`
}

func (e HistoryEntry) Validate() error {
	if len(e.Winner) == 0 || len(e.Loser) == 0 {
		return ErrEmptyTeam
	}
	winners := make(map[PlayerID]struct{}, len(e.Winner))
	for _, p := range e.Winner {
		if p == "" {
			return ErrMissingPlayer
		}
		if _, ok := winners[p]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, p)
		}
		winners[p] = struct{}{}
	}
	losers := make(map[PlayerID]struct{}, len(e.Loser))
	for _, p := range e.Loser {
		if p == "" {
			return ErrMissingPlayer
		}
		if _, ok := winners[p]; ok {
			return fmt.Errorf("%w: %s", ErrOverlap, p)
		}
		if _, ok := losers[p]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, p)
		}
		losers[p] = struct{}{}
	}
	return nil
}

func (e HistoryEntry) AllPlayers() []PlayerID {
	all := make([]PlayerID, 0, len(e.Winner)+len(e.Loser))
	all = append(all, e.Winner...)
	return append(all, e.Loser...)
}

func (e HistoryEntry) IsWinner(p PlayerID) bool {
	return contains(e.Winner, p)
}

func (e HistoryEntry) IsLoser(p PlayerID) bool {
	return contains(e.Loser, p)
}

// TargetProbability is how likely the winner was expected to win, judged by
// how decisive the result was.
func (e HistoryEntry) TargetProbability() float64 {
	switch e.Scale {
	case Advantage:
		return 0.85
	case Pwnage:
		return 0.95
	default:
		return 0.75
	}
}

func contains(players []PlayerID, p PlayerID) bool {
	for i := range players {
		if players[i] == p {
			return true
		}
	}
	return false
}

// History holds chronologically ordered entries per game.
type History struct {
	Entries map[GameID][]HistoryEntry
}

func NewHistory() History {
	return History{Entries: make(map[GameID][]HistoryEntry)}
}

// Latest returns the newest n entries of game, or all of them when n <= 0.
func (h History) Latest(game GameID, n int) []HistoryEntry {
	entries := h.Entries[game]
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
