// Package draft recommends heroes to the players of a match. Every hero is
// recommended to at most one player per session.
package draft

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goserg/inhouse/internal/hero"
)

var (
	ErrPlayerNotInGame = errors.New("player is not in the current game")
	ErrUnknownStrategy = errors.New("unknown draft strategy")
)

type Team int

const (
	Radiant Team = iota
	Dire
)

func (t Team) String() string {
	if t == Radiant {
		return "Radiant"
	}
	return "Dire"
}

type PlayerInfo struct {
	Name        string
	Rating      int
	Team        Team
	HeroesShown int
}

type PlayerPool struct {
	Player PlayerInfo
	Heroes []hero.Hero
}

// Strategy draws heroes for the players of a session. Heroes already taken in
// the session are never drawn.
type Strategy interface {
	// Assign fills the picks of every player in pools, at most HeroesShown each.
	Assign(s *Session, pools []PlayerPool)
	// Redraw returns fresh picks for player. The player's current picks are
	// still taken while drawing so they never come back.
	Redraw(s *Session, player PlayerInfo, pool []hero.Hero) []hero.Hero
}

const (
	KindRandom = "random"
	KindTagged = "tagged"
)

func NewStrategy(kind string, table *hero.Table, rnd *rand.Rand, log logrus.FieldLogger) (Strategy, error) {
	switch strings.ToLower(kind) {
	case KindRandom, "":
		return NewRandomPool(rnd), nil
	case KindTagged:
		return NewTaggedPool(table, rnd, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, kind)
	}
}

func maxHeroesShown(pools []PlayerPool) int {
	n := 0
	for _, p := range pools {
		if p.Player.HeroesShown > n {
			n = p.Player.HeroesShown
		}
	}
	return n
}
