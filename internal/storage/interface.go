package storage

import (
	"context"
	"errors"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
)

var ErrDuplicateEntry = errors.New("history entry already stored")

type HistoryStorage interface {
	ListGames(ctx context.Context) ([]domain.GameID, error)
	// ListEntries returns the entries of game in the order they were added.
	ListEntries(ctx context.Context, game domain.GameID) ([]domain.HistoryEntry, error)
	AddEntry(ctx context.Context, game domain.GameID, entry domain.HistoryEntry) error
}

type PreferenceStorage interface {
	ListPreferences(ctx context.Context) (map[string]*draft.PlayerState, error)
	SavePreferences(ctx context.Context, player string, state *draft.PlayerState) error
}
