package draft

import (
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/inhouse/internal/hero"
)

const (
	DefaultHeroesShown = 3
	// DuplicateWindow is how long heroes of the last match stay out of the pool.
	DuplicateWindow = 24 * time.Hour
)

// PlayerState holds the hero preferences of a player.
type PlayerState struct {
	Allowed         mapset.Set[hero.Hero]
	Banned          mapset.Set[hero.Hero]
	HeroesShown     int
	LastMatchHeroes []hero.Hero
	LastMatchDate   time.Time
	// AllowDuplicates opts out of dropping the last match heroes.
	AllowDuplicates bool
	Rerolls         []time.Time
}

func NewPlayerState() *PlayerState {
	return &PlayerState{
		Allowed:     mapset.NewThreadUnsafeSet[hero.Hero](),
		Banned:      mapset.NewThreadUnsafeSet[hero.Hero](),
		HeroesShown: DefaultHeroesShown,
	}
}

func (s *PlayerState) Clone() *PlayerState {
	c := *s
	c.Allowed = s.Allowed.Clone()
	c.Banned = s.Banned.Clone()
	c.LastMatchHeroes = append([]hero.Hero(nil), s.LastMatchHeroes...)
	c.Rerolls = append([]time.Time(nil), s.Rerolls...)
	return &c
}

// HeroPool lists the heroes a player may be recommended, sorted by name.
// A non empty allow list wins over the ban list. Heroes of a match played in
// the last DuplicateWindow are dropped unless that would leave fewer than
// HeroesShown heroes.
func HeroPool(table *hero.Table, state *PlayerState, now time.Time) []hero.Hero {
	var pool mapset.Set[hero.Hero]
	switch {
	case state.Allowed != nil && state.Allowed.Cardinality() > 0:
		pool = state.Allowed.Clone()
	case state.Banned != nil:
		pool = table.Set().Difference(state.Banned)
	default:
		pool = table.Set()
	}

	if !state.AllowDuplicates && len(state.LastMatchHeroes) > 0 && now.Sub(state.LastMatchDate) < DuplicateWindow {
		rest := pool.Difference(mapset.NewThreadUnsafeSet[hero.Hero](state.LastMatchHeroes...))
		if rest.Cardinality() >= state.HeroesShown {
			pool = rest
		}
	}

	heroes := pool.ToSlice()
	sort.Slice(heroes, func(i, j int) bool { return heroes[i] < heroes[j] })
	return heroes
}

type RerollLimit struct {
	// Count of rerolls allowed inside Window, 0 or less means unlimited.
	Count  int
	Window time.Duration
}

// TryReroll records a reroll at now unless the limit is already used up.
func (s *PlayerState) TryReroll(now time.Time, limit RerollLimit) bool {
	if limit.Count <= 0 {
		return true
	}
	recent := s.Rerolls[:0]
	for _, t := range s.Rerolls {
		if now.Sub(t) < limit.Window {
			recent = append(recent, t)
		}
	}
	s.Rerolls = recent
	if len(recent) >= limit.Count {
		return false
	}
	s.Rerolls = append(s.Rerolls, now)
	return true
}
