// Package streak counts consecutive losses per player.
package streak

import (
	"io"
	"time"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/sirupsen/logrus"
)

type Calculator struct {
	// MaxDays limits how old a counted loss may be, 0 means unbounded.
	MaxDays int
	Now     func() time.Time
	Log     logrus.FieldLogger
}

func New(maxDays int, log logrus.FieldLogger) *Calculator {
	return &Calculator{
		MaxDays: maxDays,
		Now:     time.Now,
		Log:     log,
	}
}

// Calculate returns the current lose streak of every requested player in game.
// Entries older than the horizon end the scan the same way a win does.
func (c *Calculator) Calculate(history domain.History, game domain.GameID, players []domain.PlayerID) map[domain.PlayerID]int {
	entries, ok := history.Entries[game]
	if !ok {
		c.logger().WithField("game", game).Error("missing history entries to calculate lose streaks")
		return map[domain.PlayerID]int{}
	}
	return c.Entries(entries, players)
}

// Entries is Calculate over one game's chronologically ordered entries.
func (c *Calculator) Entries(entries []domain.HistoryEntry, players []domain.PlayerID) map[domain.PlayerID]int {
	var horizon time.Time
	if c.MaxDays > 0 {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		horizon = now().Add(-time.Duration(c.MaxDays) * 24 * time.Hour)
	}

	streaks := make(map[domain.PlayerID]int, len(players))
	for _, p := range players {
		streaks[p] = 0
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if e.Fake {
				continue
			}
			if !horizon.IsZero() && e.Timestamp.Before(horizon) {
				break
			}
			if e.IsWinner(p) {
				break
			}
			if e.IsLoser(p) {
				streaks[p]++
			}
		}
	}
	return streaks
}

func (c *Calculator) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
