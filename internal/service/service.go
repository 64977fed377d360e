package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/goserg/inhouse/internal/balance"
	"github.com/goserg/inhouse/internal/cache/mem"
	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/elo"
	"github.com/goserg/inhouse/internal/glicko"
	"github.com/goserg/inhouse/internal/hero"
	"github.com/goserg/inhouse/internal/storage"
	"github.com/goserg/inhouse/internal/streak"
)

type Config struct {
	Iterations   int
	LearningRate float64
	// MaxHistory keeps only the newest entries when estimating, 0 keeps all.
	MaxHistory    int
	StreakMaxDays int
	Pity          balance.Options
	HeroesShown   int
	RerollLimit   draft.RerollLimit
	Seed          int64
}

type MatchService struct {
	history storage.HistoryStorage
	prefs   storage.PreferenceStorage
	cache   *mem.Cache
	table   *hero.Table
	cfg     Config
	log     *logrus.Entry
	now     func() time.Time

	estimator *elo.Estimator
	streaks   *streak.Calculator

	// prefMu serialises read-modify-write of player preferences.
	prefMu sync.Mutex

	// mu guards the drafter and rnd.
	mu      sync.Mutex
	drafter *draft.Drafter
	game    domain.GameID
	rnd     *rand.Rand
}

func New(
	cfg Config,
	history storage.HistoryStorage,
	prefs storage.PreferenceStorage,
	cache *mem.Cache,
	table *hero.Table,
	strategy draft.Strategy,
	l logrus.FieldLogger,
) *MatchService {
	estimator := elo.NewEstimator(l)
	if cfg.Iterations > 0 {
		estimator.Iterations = cfg.Iterations
	}
	if cfg.LearningRate > 0 {
		estimator.LearningRate = cfg.LearningRate
	}
	if cfg.HeroesShown < 1 {
		cfg.HeroesShown = draft.DefaultHeroesShown
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MatchService{
		history:   history,
		prefs:     prefs,
		cache:     cache,
		table:     table,
		cfg:       cfg,
		log:       l.WithField("name", "match service"),
		now:       time.Now,
		estimator: estimator,
		streaks:   streak.New(cfg.StreakMaxDays, l),
		drafter:   draft.NewDrafter(strategy),
		rnd:       rand.New(rand.NewSource(seed)),
	}
}

// LoadPreferences fills the cache from the preference storage.
func (s *MatchService) LoadPreferences(ctx context.Context) error {
	states, err := s.prefs.ListPreferences(ctx)
	if err != nil {
		return err
	}
	s.cache.Update(states)
	s.log.WithField("players", len(states)).Info("preferences loaded")
	return nil
}

// Players lists everyone with stored hero preferences.
func (s *MatchService) Players() []string {
	return s.cache.PlayerNames()
}

func (s *MatchService) ListGames(ctx context.Context) ([]domain.GameID, error) {
	return s.history.ListGames(ctx)
}

// History returns the entries of game used for rating, newest MaxHistory only.
func (s *MatchService) History(ctx context.Context, game domain.GameID) ([]domain.HistoryEntry, error) {
	entries, err := s.history.ListEntries(ctx, game)
	if err != nil {
		return nil, err
	}
	h := domain.History{Entries: map[domain.GameID][]domain.HistoryEntry{game: entries}}
	return h.Latest(game, s.cfg.MaxHistory), nil
}

func (s *MatchService) Ratings(ctx context.Context, game domain.GameID) (map[domain.PlayerID]float64, error) {
	if ratings, ok := s.cache.GetRatings(game); ok {
		return ratings, nil
	}
	return s.estimate(ctx, game)
}

// estimate rates game from storage and caches the result unless a match was
// recorded meanwhile.
func (s *MatchService) estimate(ctx context.Context, game domain.GameID) (map[domain.PlayerID]float64, error) {
	gen := s.cache.Generation(game)
	entries, err := s.History(ctx, game)
	if err != nil {
		return nil, err
	}
	ratings := s.estimator.Estimate(entries)
	if !s.cache.SetRatings(game, gen, ratings) {
		s.log.WithField("game", game).Debug("ratings changed during estimate, not cached")
	}
	return ratings, nil
}

// Leaderboard lists the ratings of game from the best player down.
func (s *MatchService) Leaderboard(ctx context.Context, game domain.GameID) ([]domain.RosterEntry, error) {
	if _, err := s.Ratings(ctx, game); err != nil {
		return nil, err
	}
	return s.cache.Leaderboard(game), nil
}

// RefreshRatings estimates every game concurrently and replaces the cache.
func (s *MatchService) RefreshRatings(ctx context.Context) (map[domain.GameID]map[domain.PlayerID]float64, error) {
	games, err := s.history.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var mu sync.Mutex
	result := make(map[domain.GameID]map[domain.PlayerID]float64, len(games))
	g, ctx := errgroup.WithContext(ctx)
	for _, game := range games {
		game := game
		g.Go(func() error {
			ratings, err := s.estimate(ctx, game)
			if err != nil {
				return err
			}
			mu.Lock()
			result[game] = ratings
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.log.WithField("games", len(games)).Info("ratings refreshed")
	return result, nil
}

func (s *MatchService) GlickoRatings(ctx context.Context, game domain.GameID) ([]glicko.Rating, error) {
	entries, err := s.history.ListEntries(ctx, game)
	if err != nil {
		return nil, err
	}
	return glicko.Calculate(entries), nil
}

// RecordMatch stores a finished match. The heroes drafted for it become the
// last match heroes of their players and the draft is cleared.
func (s *MatchService) RecordMatch(ctx context.Context, game domain.GameID, entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.HistoryEntry{}, err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if entry.Duration == 0 {
		entry.Duration = domain.DefaultMatchDuration
	}
	if err := s.history.AddEntry(ctx, game, entry); err != nil {
		return domain.HistoryEntry{}, err
	}
	s.cache.InvalidateRatings(game)
	s.log.WithFields(logrus.Fields{
		"game":   game,
		"winner": entry.Winner,
		"loser":  entry.Loser,
		"scale":  entry.Scale,
	}).Info("match recorded")

	if err := s.commitDraft(ctx, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

func (s *MatchService) commitDraft(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefMu.Lock()
	defer s.prefMu.Unlock()

	session := s.drafter.Session()
	for _, p := range session.Players() {
		picks := session.Picks(p.Name)
		if len(picks) == 0 {
			continue
		}
		state, _ := s.cache.GetPlayer(p.Name, s.cfg.HeroesShown)
		state.LastMatchHeroes = picks
		state.LastMatchDate = entry.Timestamp
		if err := s.savePlayer(ctx, p.Name, state); err != nil {
			return err
		}
	}
	s.drafter.Clear()
	s.game = ""
	return nil
}

func (s *MatchService) savePlayer(ctx context.Context, name string, state *draft.PlayerState) error {
	if err := s.prefs.SavePreferences(ctx, name, state); err != nil {
		return err
	}
	s.cache.SetPlayer(name, state)
	return nil
}

const exportVersion = 1

type export struct {
	Version int                                    `json:"version"`
	Games   map[domain.GameID][]domain.HistoryEntry `json:"games"`
}

var ErrExportVersion = errors.New("invalid export file version")

func (s *MatchService) Export(ctx context.Context) ([]byte, error) {
	games, err := s.history.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	exportData := export{
		Version: exportVersion,
		Games:   make(map[domain.GameID][]domain.HistoryEntry, len(games)),
	}
	for _, game := range games {
		entries, err := s.history.ListEntries(ctx, game)
		if err != nil {
			return nil, err
		}
		exportData.Games[game] = entries
	}
	return json.Marshal(exportData)
}

// Import adds every entry of an export, skipping ids already stored. Entries
// without an id get a new one.
func (s *MatchService) Import(ctx context.Context, data []byte) (int, error) {
	var importData export
	err := json.Unmarshal(data, &importData)
	if err != nil {
		return 0, err
	}
	if importData.Version != exportVersion {
		return 0, ErrExportVersion
	}
	imported := 0
	for game, entries := range importData.Games {
		for _, entry := range entries {
			if err := entry.Validate(); err != nil {
				return imported, err
			}
			if entry.ID == uuid.Nil {
				entry.ID = uuid.New()
			}
			if entry.Duration == 0 {
				entry.Duration = domain.DefaultMatchDuration
			}
			err := s.history.AddEntry(ctx, game, entry)
			if errors.Is(err, storage.ErrDuplicateEntry) {
				continue
			}
			if err != nil {
				return imported, err
			}
			imported++
		}
		s.cache.InvalidateRatings(game)
	}
	return imported, nil
}
