package draft

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/goserg/inhouse/internal/hero"
)

// Session is the state of one match draft: who plays and which heroes are
// taken. It is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	taken   mapset.Set[hero.Hero]
	players map[string]PlayerInfo
	picks   map[string][]hero.Hero
}

func NewSession() *Session {
	s := &Session{}
	s.Clear()
	return s
}

// Clear drops every pick and starts a new session id.
func (s *Session) Clear() {
	s.ID = uuid.New()
	s.taken = mapset.NewThreadUnsafeSet[hero.Hero]()
	s.players = make(map[string]PlayerInfo)
	s.picks = make(map[string][]hero.Hero)
}

func (s *Session) Empty() bool {
	return len(s.players) == 0
}

// Taken returns a copy of the taken set.
func (s *Session) Taken() mapset.Set[hero.Hero] {
	return s.taken.Clone()
}

func (s *Session) Player(name string) (PlayerInfo, bool) {
	p, ok := s.players[name]
	return p, ok
}

// Players lists the players of the session sorted by name.
func (s *Session) Players() []PlayerInfo {
	players := make([]PlayerInfo, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}

func (s *Session) Picks(name string) []hero.Hero {
	return append([]hero.Hero(nil), s.picks[name]...)
}

func (s *Session) Assignment() map[string][]hero.Hero {
	out := make(map[string][]hero.Hero, len(s.picks))
	for name := range s.players {
		out[name] = s.Picks(name)
	}
	return out
}

func (s *Session) join(p PlayerInfo) {
	s.players[p.Name] = p
}

func (s *Session) full(p PlayerInfo) bool {
	return len(s.picks[p.Name]) >= p.HeroesShown
}

func (s *Session) take(name string, h hero.Hero) {
	s.taken.Add(h)
	s.picks[name] = append(s.picks[name], h)
}

// replace swaps the picks of a player, releasing the old heroes.
func (s *Session) replace(name string, picks []hero.Hero) {
	old := s.picks[name]
	for _, h := range picks {
		s.taken.Add(h)
	}
	for _, h := range old {
		s.taken.Remove(h)
	}
	s.picks[name] = append([]hero.Hero(nil), picks...)
}
