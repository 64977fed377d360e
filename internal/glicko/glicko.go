// Package glicko rates players with Glicko-2, one rating period per match.
package glicko

import (
	"sort"

	glicko2 "github.com/zelenin/go-glicko2"

	"github.com/goserg/inhouse/internal/domain"
)

const (
	InitialRating     = 1500
	InitialDeviation  = 350
	InitialVolatility = 0.06
)

type Rating struct {
	Player     domain.PlayerID `json:"player"`
	Rating     float64         `json:"rating"`
	Deviation  float64         `json:"deviation"`
	Volatility float64         `json:"volatility"`
}

// Calculate replays entries in order and returns the ratings sorted from
// the best player down. Fake entries are skipped.
func Calculate(entries []domain.HistoryEntry) []Rating {
	players := make(map[domain.PlayerID]*glicko2.Player)
	get := func(id domain.PlayerID) *glicko2.Player {
		p, ok := players[id]
		if !ok {
			p = glicko2.NewPlayer(glicko2.NewRating(InitialRating, InitialDeviation, InitialVolatility))
			players[id] = p
		}
		return p
	}

	for _, e := range entries {
		if e.Fake {
			continue
		}
		period := glicko2.NewRatingPeriod()
		for _, w := range e.Winner {
			for _, l := range e.Loser {
				period.AddMatch(get(w), get(l), glicko2.MATCH_RESULT_WIN)
			}
		}
		period.Calculate()
	}

	ratings := make([]Rating, 0, len(players))
	for id, p := range players {
		ratings = append(ratings, Rating{
			Player:     id,
			Rating:     p.Rating().R(),
			Deviation:  p.Rating().Rd(),
			Volatility: p.Rating().Sigma(),
		})
	}
	sort.SliceStable(ratings, func(i, j int) bool {
		if ratings[i].Rating != ratings[j].Rating {
			return ratings[i].Rating > ratings[j].Rating
		}
		return ratings[i].Player < ratings[j].Player
	})
	return ratings
}
