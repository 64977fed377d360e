package draft

import (
	"math/rand"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/inhouse/internal/hero"
)

// RandomPool gives each player uniformly random heroes from their pool.
// Players with the smallest pools draw first.
type RandomPool struct {
	rnd *rand.Rand
}

func NewRandomPool(rnd *rand.Rand) *RandomPool {
	return &RandomPool{rnd: rnd}
}

func (r *RandomPool) Assign(s *Session, pools []PlayerPool) {
	order := append([]PlayerPool(nil), pools...)
	r.rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].Heroes) < len(order[j].Heroes)
	})

	for round := 0; round < maxHeroesShown(order); round++ {
		for _, p := range order {
			if s.full(p.Player) {
				continue
			}
			if h, ok := randomHero(r.rnd, p.Heroes, s.taken); ok {
				s.take(p.Player.Name, h)
			}
		}
	}
}

func (r *RandomPool) Redraw(s *Session, player PlayerInfo, pool []hero.Hero) []hero.Hero {
	taken := s.Taken()
	picks := make([]hero.Hero, 0, player.HeroesShown)
	for len(picks) < player.HeroesShown {
		h, ok := randomHero(r.rnd, pool, taken)
		if !ok {
			break
		}
		taken.Add(h)
		picks = append(picks, h)
	}
	return picks
}

// randomHero picks a hero of pool that is not taken.
func randomHero(rnd *rand.Rand, pool []hero.Hero, taken mapset.Set[hero.Hero]) (hero.Hero, bool) {
	free := make([]hero.Hero, 0, len(pool))
	for _, h := range pool {
		if !taken.Contains(h) {
			free = append(free, h)
		}
	}
	if len(free) == 0 {
		return "", false
	}
	return free[rnd.Intn(len(free))], true
}
