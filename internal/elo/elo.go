package elo

import (
	"io"
	"math"
	"sort"
	"time"

	"github.com/goserg/inhouse/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	DefaultIterations = 5000
	// DefaultLearningRate is very high on purpose: the fit is not fully
	// converged after DefaultIterations but the ratings are already stable.
	DefaultLearningRate = 5000.0

	logEvery = 1000
)

// WinProbability returns the chance that a side with rating winner beats a
// side with rating loser.
func WinProbability(winner, loser float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -(winner-loser)/400.0))
}

type Estimator struct {
	Iterations   int
	LearningRate float64
	Log          logrus.FieldLogger
}

func NewEstimator(log logrus.FieldLogger) *Estimator {
	return &Estimator{
		Iterations:   DefaultIterations,
		LearningRate: DefaultLearningRate,
		Log:          log,
	}
}

// Estimate fits a rating per player so that predicted win probabilities of
// the history match the decisiveness of each result.
func (e *Estimator) Estimate(history []domain.HistoryEntry) map[domain.PlayerID]float64 {
	ratings := make(map[domain.PlayerID]float64)
	for i := range history {
		for _, p := range history[i].AllPlayers() {
			ratings[p] = domain.DefaultRating
		}
	}
	if len(ratings) == 0 {
		return ratings
	}

	log := e.logger()
	log.Infof("calculating ratings from %d historic matches, iterations: %d", len(history), e.Iterations)
	start := time.Now()
	for i := 0; i < e.Iterations; i++ {
		if log.Logger.IsLevelEnabled(logrus.DebugLevel) && (i%logEvery == 0 || i == e.Iterations-1) {
			log.Debugf("%d/%d, loss: %.4f, rating sum: %.1f", i+1, e.Iterations, Loss(history, ratings), sum(ratings))
		}
		for p, diff := range gradient(history, ratings) {
			ratings[p] += diff * e.LearningRate
		}
	}
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		logRatings(log, ratings)
	}
	log.Infof("rating calculations took %s", time.Since(start))
	return ratings
}

func (e *Estimator) logger() *logrus.Entry {
	if e.Log != nil {
		return e.Log.WithField("name", "elo")
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("name", "elo")
}

// Loss is the squared error between expected and predicted win probabilities.
func Loss(history []domain.HistoryEntry, ratings map[domain.PlayerID]float64) float64 {
	var loss float64
	for i := range history {
		p := WinProbability(teamRating(history[i].Winner, ratings), teamRating(history[i].Loser, ratings))
		loss += math.Pow(history[i].TargetProbability()-p, 2)
	}
	return loss
}

func gradient(history []domain.HistoryEntry, ratings map[domain.PlayerID]float64) map[domain.PlayerID]float64 {
	derivative := make(map[domain.PlayerID]float64, len(ratings))
	for i := range history {
		p := WinProbability(teamRating(history[i].Winner, ratings), teamRating(history[i].Loser, ratings))
		// d/dx (target - p(x))^2 chained with d/dx 1/(1+10^(-x/400)).
		d := 2 * (history[i].TargetProbability() - p) * math.Ln10 / 400 * p * (1 - p)
		for _, w := range history[i].Winner {
			derivative[w] += d
		}
		for _, l := range history[i].Loser {
			derivative[l] -= d
		}
	}
	return derivative
}

func teamRating(players []domain.PlayerID, ratings map[domain.PlayerID]float64) float64 {
	var s float64
	for _, p := range players {
		s += ratings[p]
	}
	return s
}

func sum(ratings map[domain.PlayerID]float64) float64 {
	var s float64
	for _, r := range ratings {
		s += r
	}
	return s
}

func logRatings(log *logrus.Entry, ratings map[domain.PlayerID]float64) {
	players := make([]domain.PlayerID, 0, len(ratings))
	for p := range ratings {
		players = append(players, p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		return ratings[players[i]] > ratings[players[j]]
	})
	for _, p := range players {
		log.Debugf("%s: %.1f", p, ratings[p])
	}
}
