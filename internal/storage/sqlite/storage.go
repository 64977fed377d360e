package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3driver "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/inhouse/internal/config"
	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
	migrate "github.com/goserg/inhouse/internal/migrate"
	"github.com/goserg/inhouse/internal/storage"
	"github.com/goserg/inhouse/internal/storage/sqlite/gen/model"
	"github.com/goserg/inhouse/internal/storage/sqlite/gen/table"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.HistoryStorage = (*Storage)(nil)
var _ storage.PreferenceStorage = (*Storage)(nil)

func New(l logrus.FieldLogger, cfg config.Storage) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = migrate.Up(db)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.WithField("file", cfg.SqliteFile).Info("storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListGames(ctx context.Context) ([]domain.GameID, error) {
	query, args := sqlite.
		SELECT(table.HistoryEntries.Game).
		DISTINCT().
		FROM(table.HistoryEntries).
		ORDER_BY(table.HistoryEntries.Game.ASC()).
		Sql()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []domain.GameID
	for rows.Next() {
		var game string
		if err := rows.Scan(&game); err != nil {
			return nil, err
		}
		games = append(games, domain.GameID(game))
	}
	return games, rows.Err()
}

// ListEntries returns the entries of game from the oldest match on, in the
// order they were played rather than stored.
func (s *Storage) ListEntries(ctx context.Context, game domain.GameID) ([]domain.HistoryEntry, error) {
	var dest []struct {
		model.HistoryEntries
		Players []model.HistoryPlayers
	}
	err := sqlite.
		SELECT(
			table.HistoryEntries.AllColumns,
			table.HistoryPlayers.AllColumns,
		).
		FROM(table.HistoryEntries.
			INNER_JOIN(table.HistoryPlayers, table.HistoryPlayers.EntryID.EQ(table.HistoryEntries.ID))).
		WHERE(table.HistoryEntries.Game.EQ(sqlite.String(game.String()))).
		ORDER_BY(
			table.HistoryEntries.CreatedAt.ASC(),
			table.HistoryEntries.Seq.ASC(),
			table.HistoryPlayers.Position.ASC(),
		).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(dest))
	for _, row := range dest {
		entry, err := convertEntryToDomain(row.HistoryEntries, row.Players)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Storage) AddEntry(ctx context.Context, game domain.GameID, entry domain.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = table.HistoryEntries.
		INSERT(table.HistoryEntries.MutableColumns).
		MODEL(convertEntryFromDomain(game, entry)).
		ExecContext(ctx, tx)
	if err != nil {
		var se sqlite3driver.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3driver.ErrConstraintUnique {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateEntry, entry.ID)
		}
		return err
	}
	players := convertPlayersFromDomain(entry)
	_, err = table.HistoryPlayers.
		INSERT(table.HistoryPlayers.AllColumns).
		MODELS(players).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) ListPreferences(ctx context.Context) (map[string]*draft.PlayerState, error) {
	var rows []model.PlayerPreferences
	err := table.PlayerPreferences.
		SELECT(table.PlayerPreferences.AllColumns).
		FROM(table.PlayerPreferences).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	states := make(map[string]*draft.PlayerState, len(rows))
	for _, row := range rows {
		if row.Player == nil {
			continue
		}
		states[*row.Player] = convertPreferencesToDomain(row)
	}
	return states, nil
}

func (s *Storage) SavePreferences(ctx context.Context, player string, state *draft.PlayerState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = table.PlayerPreferences.
		DELETE().
		WHERE(table.PlayerPreferences.Player.EQ(sqlite.String(player))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	_, err = table.PlayerPreferences.
		INSERT(table.PlayerPreferences.AllColumns).
		MODEL(convertPreferencesFromDomain(player, state)).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func convertEntryFromDomain(game domain.GameID, entry domain.HistoryEntry) model.HistoryEntries {
	return model.HistoryEntries{
		ID:        entry.ID.String(),
		Game:      game.String(),
		// stored as text, UTC keeps it ordered
		CreatedAt: entry.Timestamp.UTC(),
		Scale:     entry.Scale.String(),
		Duration:  int32(entry.Duration / time.Second),
		Fake:      entry.Fake,
	}
}

func convertPlayersFromDomain(entry domain.HistoryEntry) []model.HistoryPlayers {
	players := make([]model.HistoryPlayers, 0, len(entry.Winner)+len(entry.Loser))
	for i, p := range entry.AllPlayers() {
		players = append(players, model.HistoryPlayers{
			EntryID:  entry.ID.String(),
			Player:   p.String(),
			Winner:   i < len(entry.Winner),
			Position: int32(i),
		})
	}
	return players
}

func convertEntryToDomain(row model.HistoryEntries, players []model.HistoryPlayers) (domain.HistoryEntry, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	scale, err := domain.ParseWinScale(row.Scale)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry := domain.HistoryEntry{
		ID:        id,
		Timestamp: row.CreatedAt,
		Scale:     scale,
		Duration:  time.Duration(row.Duration) * time.Second,
		Fake:      row.Fake,
	}
	for _, p := range players {
		if p.Winner {
			entry.Winner = append(entry.Winner, domain.PlayerID(p.Player))
		} else {
			entry.Loser = append(entry.Loser, domain.PlayerID(p.Player))
		}
	}
	return entry, nil
}

const heroSeparator = ","

func joinHeroes(heroes []hero.Hero) string {
	names := make([]string, 0, len(heroes))
	for _, h := range heroes {
		names = append(names, h.String())
	}
	return strings.Join(names, heroSeparator)
}

func splitHeroes(s string) []hero.Hero {
	var heroes []hero.Hero
	for _, name := range strings.Split(s, heroSeparator) {
		if name != "" {
			heroes = append(heroes, hero.Hero(name))
		}
	}
	return heroes
}

func convertPreferencesFromDomain(player string, state *draft.PlayerState) model.PlayerPreferences {
	row := model.PlayerPreferences{
		Player:          &player,
		HeroesShown:     int32(state.HeroesShown),
		AllowDuplicates: state.AllowDuplicates,
		LastMatchHeroes: joinHeroes(state.LastMatchHeroes),
	}
	if state.Allowed != nil {
		row.Allowed = joinHeroes(sortedHeroes(state.Allowed.ToSlice()))
	}
	if state.Banned != nil {
		row.Banned = joinHeroes(sortedHeroes(state.Banned.ToSlice()))
	}
	if !state.LastMatchDate.IsZero() {
		date := state.LastMatchDate
		row.LastMatchDate = &date
	}
	return row
}

func convertPreferencesToDomain(row model.PlayerPreferences) *draft.PlayerState {
	state := draft.NewPlayerState()
	state.HeroesShown = int(row.HeroesShown)
	state.AllowDuplicates = row.AllowDuplicates
	for _, h := range splitHeroes(row.Allowed) {
		state.Allowed.Add(h)
	}
	for _, h := range splitHeroes(row.Banned) {
		state.Banned.Add(h)
	}
	state.LastMatchHeroes = splitHeroes(row.LastMatchHeroes)
	if row.LastMatchDate != nil {
		state.LastMatchDate = *row.LastMatchDate
	}
	return state
}

func sortedHeroes(heroes []hero.Hero) []hero.Hero {
	sort.Slice(heroes, func(i, j int) bool { return heroes[i] < heroes[j] })
	return heroes
}
