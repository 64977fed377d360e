package mem

import (
	"sort"
	"sync"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
)

// Cache keeps player preferences and the last rating estimate of every game.
type Cache struct {
	mu      sync.RWMutex
	players map[string]*draft.PlayerState
	ratings map[domain.GameID]map[domain.PlayerID]float64
	// generations counts invalidations per game. An estimate started before
	// an invalidation must not be stored.
	generations map[domain.GameID]uint64
}

func New() *Cache {
	return &Cache{
		players:     make(map[string]*draft.PlayerState),
		ratings:     make(map[domain.GameID]map[domain.PlayerID]float64),
		generations: make(map[domain.GameID]uint64),
	}
}

// Update replaces every cached player state.
func (c *Cache) Update(players map[string]*draft.PlayerState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.players = make(map[string]*draft.PlayerState, len(players))
	for name, state := range players {
		c.players[name] = state.Clone()
	}
}

// GetPlayer returns a copy of the player's state, or a fresh one with
// heroesShown heroes for unknown players.
func (c *Cache) GetPlayer(name string, heroesShown int) (*draft.PlayerState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.players[name]
	if !ok {
		state = draft.NewPlayerState()
		state.HeroesShown = heroesShown
		return state, false
	}
	return state.Clone(), true
}

func (c *Cache) SetPlayer(name string, state *draft.PlayerState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players[name] = state.Clone()
}

func (c *Cache) PlayerNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.players))
	for name := range c.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) GetRatings(game domain.GameID) (map[domain.PlayerID]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ratings, ok := c.ratings[game]
	if !ok {
		return nil, false
	}
	out := make(map[domain.PlayerID]float64, len(ratings))
	for id, r := range ratings {
		out[id] = r
	}
	return out, true
}

// Generation is passed back to SetRatings by whoever computes ratings of game.
func (c *Cache) Generation(game domain.GameID) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[game]
}

// SetRatings stores ratings computed at generation gen. It reports false and
// drops them when game was invalidated since.
func (c *Cache) SetRatings(game domain.GameID, gen uint64, ratings map[domain.PlayerID]float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[game] != gen {
		return false
	}
	stored := make(map[domain.PlayerID]float64, len(ratings))
	for id, r := range ratings {
		stored[id] = r
	}
	c.ratings[game] = stored
	return true
}

func (c *Cache) InvalidateRatings(game domain.GameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ratings, game)
	c.generations[game]++
}

// Leaderboard lists the cached ratings of game from the best player down.
func (c *Cache) Leaderboard(game domain.GameID) []domain.RosterEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ratings := c.ratings[game]
	players := make([]domain.RosterEntry, 0, len(ratings))
	for id, r := range ratings {
		players = append(players, domain.RosterEntry{ID: id, Rating: int(r)})
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].ID < players[j].ID
	})
	return players
}
