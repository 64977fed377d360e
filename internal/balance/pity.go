// Package balance splits a roster into two teams of close rating, giving
// teams with a player on a losing streak a pity adjustment.
package balance

import (
	"math"

	"github.com/goserg/inhouse/internal/decimal"
	"github.com/goserg/inhouse/internal/domain"
)

type Options struct {
	// MinLoses is the streak at which the bonus starts, values below 1 act as 1.
	MinLoses       int             `toml:"min_loses"`
	Additive       bool            `toml:"additive"`
	AdditiveAmount int             `toml:"additive_amount"`
	Multiplicative bool            `toml:"multiplicative"`
	Factor         decimal.Decimal `toml:"factor"`
}

func DefaultOptions() Options {
	return Options{
		MinLoses:       2,
		Additive:       true,
		AdditiveAmount: 100,
		Multiplicative: false,
		Factor:         decimal.WithPrecision(0.98, 2),
	}
}

// PityBonus applies the bonus for a team rating whose longest lose streak is
// loseStreak. It returns the adjusted rating with the multiplicative factor and
// the additive amount that were applied.
func PityBonus(rating, loseStreak int, opts Options) (pity int, mul float64, add int) {
	minLoses := opts.MinLoses
	if minLoses < 1 {
		minLoses = 1
	}
	if loseStreak < minLoses {
		return rating, 1, 0
	}
	excess := loseStreak - minLoses + 1
	r := float64(rating)
	mul = 1
	if opts.Multiplicative {
		mul = math.Pow(opts.Factor.Float64(), float64(excess))
		r *= mul
	}
	if opts.Additive {
		add = opts.AdditiveAmount * excess
		r += float64(add)
	}
	return int(r), mul, add
}

type teamInfo struct {
	loseStreak int
	realRating int
	pityRating int
	mul        float64
	add        int
}

func calculateTeam(team []domain.RosterEntry, streaks map[domain.PlayerID]int, opts Options) teamInfo {
	var info teamInfo
	for _, p := range team {
		info.realRating += p.Rating
		if s := streaks[p.ID]; s > info.loseStreak {
			info.loseStreak = s
		}
	}
	info.pityRating, info.mul, info.add = PityBonus(info.realRating, info.loseStreak, opts)
	return info
}

func buildTeam(team []domain.RosterEntry, info teamInfo) domain.BalancedTeam {
	players := make([]domain.PlayerID, 0, len(team))
	for _, p := range team {
		players = append(players, p.ID)
	}
	return domain.BalancedTeam{
		Players:      players,
		RealRating:   info.realRating,
		PityRating:   info.pityRating,
		PityBonusMul: info.mul,
		PityBonusAdd: info.add,
	}
}

// CalculateTeams rates two already formed teams.
func CalculateTeams(left, right []domain.RosterEntry, streaks map[domain.PlayerID]int, opts Options) (domain.BalancedTeam, domain.BalancedTeam) {
	return buildTeam(left, calculateTeam(left, streaks, opts)), buildTeam(right, calculateTeam(right, streaks, opts))
}
