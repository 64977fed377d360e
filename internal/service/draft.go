package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
)

var (
	ErrRosterTooLarge     = errors.New("roster too large")
	ErrDuplicatePlayer    = domain.ErrDuplicate
	ErrInvalidHeroesShown = errors.New("heroes shown must be positive")
)

// RerollOutcome is the result of a reroll request. Limited is set instead of
// drawing heroes when the player used up their rerolls.
type RerollOutcome struct {
	Heroes  []hero.Hero `json:"heroes"`
	Limited bool        `json:"limited"`
}

type DraftState struct {
	Game       domain.GameID          `json:"game"`
	Session    string                 `json:"session"`
	Assignment map[string][]hero.Hero `json:"assignment"`
}

// StartDraft clears the current draft and recommends heroes to both teams.
func (s *MatchService) StartDraft(ctx context.Context, game domain.GameID, radiant, dire []domain.PlayerID) (DraftState, error) {
	all := append(append([]domain.PlayerID(nil), radiant...), dire...)
	if err := unique(all); err != nil {
		return DraftState{}, err
	}
	ratings, err := s.Ratings(ctx, game)
	if err != nil {
		return DraftState{}, err
	}
	now := s.now()
	roster := domain.Roster(all, ratings)
	pools := make([]draft.PlayerPool, 0, len(roster))
	for i, p := range roster {
		team := draft.Radiant
		if i >= len(radiant) {
			team = draft.Dire
		}
		state, _ := s.cache.GetPlayer(p.ID.String(), s.cfg.HeroesShown)
		pools = append(pools, draft.PlayerPool{
			Player: draft.PlayerInfo{
				Name:        p.ID.String(),
				Rating:      p.Rating,
				Team:        team,
				HeroesShown: state.HeroesShown,
			},
			Heroes: draft.HeroPool(s.table, state, now),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafter.Clear()
	s.game = game
	assignment := s.drafter.AssignHeroes(pools)
	for name, picks := range assignment {
		s.log.WithField("player", name).WithField("heroes", picks).Info("hero assignment")
	}
	return DraftState{
		Game:       game,
		Session:    s.drafter.Session().ID.String(),
		Assignment: assignment,
	}, nil
}

func (s *MatchService) Draft() DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DraftState{
		Game:       s.game,
		Session:    s.drafter.Session().ID.String(),
		Assignment: s.drafter.Session().Assignment(),
	}
}

// Reroll replaces the heroes recommended to player in the current draft.
func (s *MatchService) Reroll(ctx context.Context, player string) (RerollOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafter.Session().Empty() {
		return RerollOutcome{Heroes: []hero.Hero{}}, nil
	}
	if _, ok := s.drafter.Session().Player(player); !ok {
		return RerollOutcome{}, fmt.Errorf("%w: %s", draft.ErrPlayerNotInGame, player)
	}
	now := s.now()
	s.prefMu.Lock()
	state, _ := s.cache.GetPlayer(player, s.cfg.HeroesShown)
	allowed := state.TryReroll(now, s.cfg.RerollLimit)
	s.cache.SetPlayer(player, state)
	s.prefMu.Unlock()
	if !allowed {
		s.log.WithField("player", player).Info("reroll limit reached")
		return RerollOutcome{Limited: true}, nil
	}

	picks, err := s.drafter.Reroll(player, draft.HeroPool(s.table, state, now))
	if err != nil {
		return RerollOutcome{}, err
	}
	s.log.WithField("player", player).WithField("heroes", picks).Info("heroes rerolled")
	return RerollOutcome{Heroes: picks}, nil
}

func (s *MatchService) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafter.Clear()
	s.game = ""
}

// Preferences returns a copy of the stored hero preferences of player.
func (s *MatchService) Preferences(player string) *draft.PlayerState {
	state, _ := s.cache.GetPlayer(player, s.cfg.HeroesShown)
	return state
}

func (s *MatchService) HeroPool(player string) []hero.Hero {
	return draft.HeroPool(s.table, s.Preferences(player), s.now())
}

func (s *MatchService) Ban(ctx context.Context, player, name string) (hero.Hero, error) {
	return s.updateHero(ctx, player, name, func(st *draft.PlayerState, h hero.Hero) { st.Banned.Add(h) })
}

func (s *MatchService) Unban(ctx context.Context, player, name string) (hero.Hero, error) {
	return s.updateHero(ctx, player, name, func(st *draft.PlayerState, h hero.Hero) { st.Banned.Remove(h) })
}

func (s *MatchService) Allow(ctx context.Context, player, name string) (hero.Hero, error) {
	return s.updateHero(ctx, player, name, func(st *draft.PlayerState, h hero.Hero) { st.Allowed.Add(h) })
}

func (s *MatchService) Unallow(ctx context.Context, player, name string) (hero.Hero, error) {
	return s.updateHero(ctx, player, name, func(st *draft.PlayerState, h hero.Hero) { st.Allowed.Remove(h) })
}

func (s *MatchService) updateHero(ctx context.Context, player, name string, update func(*draft.PlayerState, hero.Hero)) (hero.Hero, error) {
	h, err := s.table.Parse(name)
	if err != nil {
		return "", err
	}
	s.prefMu.Lock()
	defer s.prefMu.Unlock()
	state, _ := s.cache.GetPlayer(player, s.cfg.HeroesShown)
	update(state, h)
	return h, s.savePlayer(ctx, player, state)
}

func (s *MatchService) SetHeroesShown(ctx context.Context, player string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidHeroesShown, n)
	}
	s.prefMu.Lock()
	defer s.prefMu.Unlock()
	state, _ := s.cache.GetPlayer(player, s.cfg.HeroesShown)
	state.HeroesShown = n
	return s.savePlayer(ctx, player, state)
}

func (s *MatchService) SetAllowDuplicates(ctx context.Context, player string, allow bool) error {
	s.prefMu.Lock()
	defer s.prefMu.Unlock()
	state, _ := s.cache.GetPlayer(player, s.cfg.HeroesShown)
	state.AllowDuplicates = allow
	return s.savePlayer(ctx, player, state)
}
