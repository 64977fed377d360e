package draft

import (
	"fmt"

	"github.com/goserg/inhouse/internal/hero"
)

// Drafter runs a Strategy over a single live Session.
type Drafter struct {
	strategy Strategy
	session  *Session
}

func NewDrafter(strategy Strategy) *Drafter {
	return &Drafter{
		strategy: strategy,
		session:  NewSession(),
	}
}

func (d *Drafter) Session() *Session {
	return d.session
}

// AssignHeroes draws heroes for pools on top of the current session and
// returns the picks of every player in it.
func (d *Drafter) AssignHeroes(pools []PlayerPool) map[string][]hero.Hero {
	for _, p := range pools {
		d.session.join(p.Player)
	}
	d.strategy.Assign(d.session, pools)
	return d.session.Assignment()
}

// Reroll replaces the picks of the named player with new heroes from pool.
func (d *Drafter) Reroll(name string, pool []hero.Hero) ([]hero.Hero, error) {
	if d.session.Empty() {
		return []hero.Hero{}, nil
	}
	player, ok := d.session.Player(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInGame, name)
	}
	picks := d.strategy.Redraw(d.session, player, pool)
	d.session.replace(name, picks)
	return picks, nil
}

func (d *Drafter) Clear() {
	d.session.Clear()
}
