package draft

import (
	"io"
	"math/rand"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/goserg/inhouse/internal/hero"
)

// similarSample is how many of the closest available heroes the second
// player of a pair chooses from.
const similarSample = 3

// TaggedPool pairs Radiant and Dire players of similar rating and gives both
// sides of a pair heroes of the same role. The Dire side of a pair gets
// heroes close to what the Radiant side got.
type TaggedPool struct {
	table *hero.Table
	rnd   *rand.Rand
	log   *logrus.Entry
}

func NewTaggedPool(table *hero.Table, rnd *rand.Rand, log logrus.FieldLogger) *TaggedPool {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &TaggedPool{
		table: table,
		rnd:   rnd,
		log:   log.WithField("name", "tagged draft"),
	}
}

type taggedPlayer struct {
	info PlayerInfo
	pool mapset.Set[hero.Hero]
}

func (t *TaggedPool) Assign(s *Session, pools []PlayerPool) {
	var radiant, dire []taggedPlayer
	for _, p := range pools {
		tp := taggedPlayer{info: p.Player, pool: mapset.NewThreadUnsafeSet[hero.Hero](p.Heroes...)}
		if p.Player.Team == Radiant {
			radiant = append(radiant, tp)
		} else {
			dire = append(dire, tp)
		}
	}
	byRating := func(team []taggedPlayer) {
		sort.SliceStable(team, func(i, j int) bool { return team[i].info.Rating > team[j].info.Rating })
	}
	byRating(radiant)
	byRating(dire)

	order := t.pairing(len(radiant), len(dire))
	for round := 0; round < maxHeroesShown(pools); round++ {
		for pos, idx := range order {
			tag := hero.NextTag(pos)
			var paired hero.Hero
			for _, team := range [][]taggedPlayer{radiant, dire} {
				if idx >= len(team) {
					continue
				}
				p := team[idx]
				if s.full(p.info) {
					continue
				}
				var (
					pick hero.Hero
					ok   bool
				)
				if paired != "" {
					pick, ok = t.similarHero(paired, p.pool, tag, s.taken)
				} else {
					pick, ok = t.taggedHero(p.pool, tag, s.taken)
					paired = pick
				}
				if ok {
					s.take(p.info.Name, pick)
				}
			}
		}
	}
}

// Redraw keeps the role of the player's first pick.
func (t *TaggedPool) Redraw(s *Session, player PlayerInfo, pool []hero.Hero) []hero.Hero {
	tag := hero.Support
	if picks := s.Picks(player.Name); len(picks) > 0 {
		tag = t.deduceTag(picks[0])
	}
	heroes := mapset.NewThreadUnsafeSet[hero.Hero](pool...)
	taken := s.Taken()
	picks := make([]hero.Hero, 0, player.HeroesShown)
	for i := 0; i < player.HeroesShown; i++ {
		h, ok := t.taggedHero(heroes, tag, taken)
		if !ok {
			break
		}
		taken.Add(h)
		picks = append(picks, h)
	}
	return picks
}

// pairing shuffles the pair indexes both teams fill and appends the
// indexes only the larger team has.
func (t *TaggedPool) pairing(a, b int) []int {
	lo, hi := a, b
	if b < a {
		lo, hi = b, a
	}
	order := t.rnd.Perm(lo)
	for i := lo; i < hi; i++ {
		order = append(order, i)
	}
	return order
}

func (t *TaggedPool) deduceTag(h hero.Hero) hero.Tag {
	tag, ok := t.table.Tag(h)
	if !ok {
		t.log.WithField("hero", h).Warn("can't deduce tag, using Support")
		return hero.Support
	}
	return tag
}

func (t *TaggedPool) randomHero(pool, taken mapset.Set[hero.Hero]) (hero.Hero, bool) {
	return t.choose(pool.Difference(taken))
}

func (t *TaggedPool) taggedHero(pool mapset.Set[hero.Hero], tag hero.Tag, taken mapset.Set[hero.Hero]) (hero.Hero, bool) {
	candidates := t.table.WithTag(tag).Difference(taken).Intersect(pool)
	if candidates.Cardinality() == 0 {
		t.log.WithField("tag", tag).Debug("no tagged hero left, falling back to random")
		return t.randomHero(pool, taken)
	}
	return t.choose(candidates)
}

func (t *TaggedPool) similarHero(paired hero.Hero, pool mapset.Set[hero.Hero], tag hero.Tag, taken mapset.Set[hero.Hero]) (hero.Hero, bool) {
	sample := make([]hero.Hero, 0, similarSample)
	for _, h := range t.table.Similar(paired) {
		if pool.Contains(h) && !taken.Contains(h) {
			sample = append(sample, h)
			if len(sample) == similarSample {
				break
			}
		}
	}
	if len(sample) > 0 {
		return sample[t.rnd.Intn(len(sample))], true
	}
	t.log.WithField("hero", paired).Debug("no similar hero left, falling back to tag")
	return t.taggedHero(pool, tag, taken)
}

// choose picks a random element. Elements are sorted first so a seeded
// source gives repeatable drafts.
func (t *TaggedPool) choose(set mapset.Set[hero.Hero]) (hero.Hero, bool) {
	heroes := set.ToSlice()
	if len(heroes) == 0 {
		return "", false
	}
	sort.Slice(heroes, func(i, j int) bool { return heroes[i] < heroes[j] })
	return heroes[t.rnd.Intn(len(heroes))], true
}
