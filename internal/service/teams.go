package service

import (
	"context"
	"fmt"

	"github.com/goserg/inhouse/internal/balance"
	"github.com/goserg/inhouse/internal/domain"
)

func (s *MatchService) LoseStreaks(ctx context.Context, game domain.GameID, players []domain.PlayerID) (map[domain.PlayerID]int, error) {
	entries, err := s.history.ListEntries(ctx, game)
	if err != nil {
		return nil, err
	}
	return s.streaks.Entries(entries, players), nil
}

func (s *MatchService) roster(ctx context.Context, game domain.GameID, players []domain.PlayerID) ([]domain.RosterEntry, map[domain.PlayerID]int, error) {
	ratings, err := s.Ratings(ctx, game)
	if err != nil {
		return nil, nil, err
	}
	streaks, err := s.LoseStreaks(ctx, game, players)
	if err != nil {
		return nil, nil, err
	}
	return domain.Roster(players, ratings), streaks, nil
}

// Shuffle splits players into the two teams with the smallest pity rating gap.
func (s *MatchService) Shuffle(ctx context.Context, game domain.GameID, players []domain.PlayerID, temperature int) (domain.BalancedTeam, domain.BalancedTeam, error) {
	if len(players) > balance.MaxRosterSize {
		return domain.BalancedTeam{}, domain.BalancedTeam{}, fmt.Errorf("%w: %d players", ErrRosterTooLarge, len(players))
	}
	if err := unique(players); err != nil {
		return domain.BalancedTeam{}, domain.BalancedTeam{}, err
	}
	roster, streaks, err := s.roster(ctx, game, players)
	if err != nil {
		return domain.BalancedTeam{}, domain.BalancedTeam{}, err
	}
	s.mu.Lock()
	left, right := balance.Shuffle(roster, streaks, s.cfg.Pity, temperature, s.rnd)
	s.mu.Unlock()

	s.log.WithField("game", game).WithField("gap", balance.Gap(left, right)).Debug("teams shuffled")
	return left, right, nil
}

// CalculateTeams rates two teams chosen by hand.
func (s *MatchService) CalculateTeams(ctx context.Context, game domain.GameID, left, right []domain.PlayerID) (domain.BalancedTeam, domain.BalancedTeam, error) {
	all := append(append([]domain.PlayerID(nil), left...), right...)
	if err := unique(all); err != nil {
		return domain.BalancedTeam{}, domain.BalancedTeam{}, err
	}
	roster, streaks, err := s.roster(ctx, game, all)
	if err != nil {
		return domain.BalancedTeam{}, domain.BalancedTeam{}, err
	}
	l, r := balance.CalculateTeams(roster[:len(left)], roster[len(left):], streaks, s.cfg.Pity)
	return l, r, nil
}

func unique(players []domain.PlayerID) error {
	seen := make(map[domain.PlayerID]struct{}, len(players))
	for _, p := range players {
		if p == "" {
			return domain.ErrMissingPlayer
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
