package web

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
)

var (
	ErrNoPlayers        = errors.New("player list must not be empty")
	ErrEmptyPlayerName  = errors.New("player name must not be empty")
	ErrNegativeTemp     = errors.New("temperature must not be negative")
	ErrEmptyHero        = errors.New("hero name must not be empty")
	ErrEmptyPreferences = errors.New("nothing to update")
)

func playerIDs(names []string) ([]domain.PlayerID, error) {
	ids := make([]domain.PlayerID, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyPlayerName
		}
		ids = append(ids, domain.PlayerID(name))
	}
	return ids, nil
}

type createMatch struct {
	Winner []string `json:"winner"`
	Loser  []string `json:"loser"`
	Scale  string   `json:"scale"`
	// Duration is a Go duration string, "45m" when empty.
	Duration string `json:"duration"`
	Fake     bool   `json:"fake"`
}

func (c createMatch) Validate() error {
	_, err := c.toEntry()
	return err
}

func (c createMatch) toEntry() (domain.HistoryEntry, error) {
	var err error
	winner, werr := playerIDs(c.Winner)
	err = errors.Join(err, werr)
	loser, lerr := playerIDs(c.Loser)
	err = errors.Join(err, lerr)

	var scale domain.WinScale
	if c.Scale != "" {
		var serr error
		scale, serr = domain.ParseWinScale(c.Scale)
		err = errors.Join(err, serr)
	}
	var duration time.Duration
	if c.Duration != "" {
		var derr error
		duration, derr = time.ParseDuration(c.Duration)
		if derr == nil && duration <= 0 {
			derr = fmt.Errorf("duration must be positive: %s", c.Duration)
		}
		err = errors.Join(err, derr)
	}
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry := domain.HistoryEntry{
		Winner:   winner,
		Loser:    loser,
		Scale:    scale,
		Duration: duration,
		Fake:     c.Fake,
	}
	return entry, entry.Validate()
}

type shuffleRequest struct {
	Players     []string `json:"players"`
	Temperature int      `json:"temperature"`
}

func (r shuffleRequest) Validate() error {
	var err error
	if len(r.Players) == 0 {
		err = errors.Join(err, ErrNoPlayers)
	}
	if r.Temperature < 0 {
		err = errors.Join(err, ErrNegativeTemp)
	}
	_, perr := playerIDs(r.Players)
	return errors.Join(err, perr)
}

type teamsRequest struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

func (r teamsRequest) Validate() error {
	if len(r.Left)+len(r.Right) == 0 {
		return ErrNoPlayers
	}
	_, lerr := playerIDs(r.Left)
	_, rerr := playerIDs(r.Right)
	return errors.Join(lerr, rerr)
}

type teamsResponse struct {
	Left  domain.BalancedTeam `json:"left"`
	Right domain.BalancedTeam `json:"right"`
	Gap   int                 `json:"gap"`
}

type draftRequest struct {
	Game    string   `json:"game"`
	Radiant []string `json:"radiant"`
	Dire    []string `json:"dire"`
}

func (r draftRequest) Validate() error {
	var err error
	if strings.TrimSpace(r.Game) == "" {
		err = errors.Join(err, errors.New("game must not be empty"))
	}
	if len(r.Radiant)+len(r.Dire) == 0 {
		err = errors.Join(err, ErrNoPlayers)
	}
	_, rerr := playerIDs(r.Radiant)
	_, derr := playerIDs(r.Dire)
	return errors.Join(err, rerr, derr)
}

type rerollRequest struct {
	Player string `json:"player"`
}

func (r rerollRequest) Validate() error {
	if strings.TrimSpace(r.Player) == "" {
		return ErrEmptyPlayerName
	}
	return nil
}

type heroRequest struct {
	Hero string `json:"hero"`
}

func (r heroRequest) Validate() error {
	if strings.TrimSpace(r.Hero) == "" {
		return ErrEmptyHero
	}
	return nil
}

type preferencesRequest struct {
	HeroesShown     *int  `json:"heroesShown"`
	AllowDuplicates *bool `json:"allowDuplicates"`
}

func (r preferencesRequest) Validate() error {
	if r.HeroesShown == nil && r.AllowDuplicates == nil {
		return ErrEmptyPreferences
	}
	if r.HeroesShown != nil && *r.HeroesShown < 1 {
		return fmt.Errorf("heroes shown must be positive: %d", *r.HeroesShown)
	}
	return nil
}

type preferencesResponse struct {
	Allowed         []hero.Hero `json:"allowed"`
	Banned          []hero.Hero `json:"banned"`
	HeroesShown     int         `json:"heroesShown"`
	AllowDuplicates bool        `json:"allowDuplicates"`
	LastMatchHeroes []hero.Hero `json:"lastMatchHeroes"`
	LastMatchDate   *time.Time  `json:"lastMatchDate,omitempty"`
}

func newPreferencesResponse(state *draft.PlayerState) preferencesResponse {
	resp := preferencesResponse{
		Allowed:         sortedHeroes(state.Allowed),
		Banned:          sortedHeroes(state.Banned),
		HeroesShown:     state.HeroesShown,
		AllowDuplicates: state.AllowDuplicates,
		LastMatchHeroes: append([]hero.Hero{}, state.LastMatchHeroes...),
	}
	if !state.LastMatchDate.IsZero() {
		date := state.LastMatchDate
		resp.LastMatchDate = &date
	}
	return resp
}

func sortedHeroes(set mapset.Set[hero.Hero]) []hero.Hero {
	heroes := []hero.Hero{}
	if set != nil {
		heroes = set.ToSlice()
	}
	sort.Slice(heroes, func(i, j int) bool { return heroes[i] < heroes[j] })
	return heroes
}

type errorResponse struct {
	Error string `json:"error"`
}
