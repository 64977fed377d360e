package web

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/inhouse/internal/auth"
	"github.com/goserg/inhouse/internal/balance"
	"github.com/goserg/inhouse/internal/cache/mem"
	"github.com/goserg/inhouse/internal/config"
	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
	"github.com/goserg/inhouse/internal/service"
	"github.com/goserg/inhouse/internal/storage/sqlite"
	"github.com/goserg/inhouse/internal/web/webpath"
)

func newServer(t *testing.T, secret string) *Server {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	store, err := sqlite.New(l, config.Storage{SqliteFile: filepath.Join(t.TempDir(), "web.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	strategy, err := draft.NewStrategy(draft.KindRandom, hero.Default(), rand.New(rand.NewSource(1)), l)
	require.NoError(t, err)
	svc := service.New(service.Config{
		Iterations: 200,
		Pity:       balance.DefaultOptions(),
		Seed:       1,
	}, store, store, mem.New(), hero.Default(), strategy, l)

	srv, err := New(svc, config.Server{}, auth.New(auth.Config{Secret: secret, Expiration: "1h"}), l)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestMatchesAndRatings(t *testing.T) {
	srv := newServer(t, "")

	resp, data := do(t, srv, http.MethodPost, "/api/games/dota/matches",
		createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}, Scale: "advantage"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	var entry domain.HistoryEntry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, domain.Advantage, entry.Scale)
	assert.Equal(t, domain.DefaultMatchDuration, entry.Duration)

	resp, data = do(t, srv, http.MethodGet, "/api/games", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["dota"]`, string(data))

	resp, data = do(t, srv, http.MethodGet, "/api/games/dota/ratings", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var board []domain.RosterEntry
	require.NoError(t, json.Unmarshal(data, &board))
	require.Len(t, board, 2)
	assert.Equal(t, domain.PlayerID("j"), board[0].ID)

	resp, data = do(t, srv, http.MethodGet, "/api/games/dota/matches", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, entry.ID, history[0].ID)

	resp, data = do(t, srv, http.MethodGet, "/api/games/dota/streaks?players=j,bixkog", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"j":0,"bixkog":1}`, string(data))
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t, "")
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{
			name:   "overlap",
			method: http.MethodPost,
			path:   "/api/games/dota/matches",
			body:   createMatch{Winner: []string{"j"}, Loser: []string{"j"}},
		},
		{
			name:   "scale",
			method: http.MethodPost,
			path:   "/api/games/dota/matches",
			body:   createMatch{Winner: []string{"j"}, Loser: []string{"a"}, Scale: "stomp"},
		},
		{
			name:   "duplicate player",
			method: http.MethodPost,
			path:   "/api/games/dota/shuffle",
			body:   shuffleRequest{Players: []string{"j", "j"}},
		},
		{
			name:   "blank winner",
			method: http.MethodPost,
			path:   "/api/games/dota/matches",
			body:   createMatch{Winner: []string{" "}, Loser: []string{"a"}},
		},
		{
			name:   "blank shuffle player",
			method: http.MethodPost,
			path:   "/api/games/dota/shuffle",
			body:   shuffleRequest{Players: []string{"j", ""}},
		},
		{
			name:   "blank team member",
			method: http.MethodPost,
			path:   "/api/games/dota/teams",
			body:   teamsRequest{Left: []string{"j"}, Right: []string{"\t"}},
		},
		{
			name:   "blank draft player",
			method: http.MethodPost,
			path:   "/api/draft",
			body:   draftRequest{Game: "dota", Radiant: []string{"j"}, Dire: []string{""}},
		},
		{
			name:   "unknown hero",
			method: http.MethodPost,
			path:   "/api/players/j/ban",
			body:   heroRequest{Hero: "Arthas"},
		},
		{
			name:   "heroes shown",
			method: http.MethodPatch,
			path:   "/api/players/j/preferences",
			body:   preferencesRequest{HeroesShown: intPtr(0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, srv, tt.method, tt.path, tt.body, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(data))
			var e errorResponse
			require.NoError(t, json.Unmarshal(data, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestShuffleAndTeams(t *testing.T) {
	srv := newServer(t, "")

	resp, data := do(t, srv, http.MethodPost, "/api/games/dota/shuffle",
		shuffleRequest{Players: []string{"a", "b", "c", "d"}}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	var teams teamsResponse
	require.NoError(t, json.Unmarshal(data, &teams))
	assert.Len(t, teams.Left.Players, 2)
	assert.Len(t, teams.Right.Players, 2)
	assert.Equal(t, 0, teams.Gap)

	resp, data = do(t, srv, http.MethodPost, "/api/games/dota/teams",
		teamsRequest{Left: []string{"a", "b", "c"}, Right: []string{"d"}}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	require.NoError(t, json.Unmarshal(data, &teams))
	assert.Equal(t, 3000, teams.Left.RealRating)
	assert.Equal(t, 1000, teams.Right.RealRating)
	assert.Equal(t, 2000, teams.Gap)
}

func TestAuthorization(t *testing.T) {
	srv := newServer(t, "s3cret")
	match := createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}}

	resp, _ := do(t, srv, http.MethodPost, "/api/games/dota/matches", match, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/games/dota/matches", match, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	other, _, err := auth.New(auth.Config{Secret: "other", Expiration: "1h"}).Issue("admin")
	require.NoError(t, err)
	resp, _ = do(t, srv, http.MethodPost, "/api/games/dota/matches", match, other)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, _, err := srv.auth.Issue("admin")
	require.NoError(t, err)
	resp, data := do(t, srv, http.MethodPost, "/api/games/dota/matches", match, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))

	req := httptest.NewRequest(http.MethodDelete, "/api/draft", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	resp, err = srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/games/dota/ratings", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDraftAPI(t *testing.T) {
	srv := newServer(t, "")

	resp, data := do(t, srv, http.MethodPost, "/api/draft", draftRequest{
		Game:    "dota",
		Radiant: []string{"j", "goovie"},
		Dire:    []string{"bixkog", "dragon"},
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	var state service.DraftState
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, domain.GameID("dota"), state.Game)
	require.Len(t, state.Assignment, 4)
	for _, picks := range state.Assignment {
		assert.Len(t, picks, draft.DefaultHeroesShown)
	}

	resp, data = do(t, srv, http.MethodPost, "/api/draft/reroll", rerollRequest{Player: "nobody"}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(data))

	resp, data = do(t, srv, http.MethodPost, "/api/draft/reroll", rerollRequest{Player: "j"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	var outcome service.RerollOutcome
	require.NoError(t, json.Unmarshal(data, &outcome))
	assert.Len(t, outcome.Heroes, draft.DefaultHeroesShown)
	for _, h := range outcome.Heroes {
		assert.NotContains(t, state.Assignment["j"], h)
	}

	resp, data = do(t, srv, http.MethodGet, "/draft", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "goovie")

	resp, _ = do(t, srv, http.MethodDelete, "/api/draft", nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, data = do(t, srv, http.MethodGet, "/api/draft", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cleared service.DraftState
	require.NoError(t, json.Unmarshal(data, &cleared))
	assert.Empty(t, cleared.Assignment)
}

func TestPreferencesAPI(t *testing.T) {
	srv := newServer(t, "")

	resp, data := do(t, srv, http.MethodPost, "/api/players/j/ban", heroRequest{Hero: "pudge"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	var prefs preferencesResponse
	require.NoError(t, json.Unmarshal(data, &prefs))
	assert.Equal(t, []hero.Hero{"Pudge"}, prefs.Banned)
	assert.Equal(t, draft.DefaultHeroesShown, prefs.HeroesShown)

	resp, data = do(t, srv, http.MethodGet, "/api/players/j/pool", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pool []hero.Hero
	require.NoError(t, json.Unmarshal(data, &pool))
	assert.NotContains(t, pool, hero.Hero("Pudge"))
	assert.Len(t, pool, len(hero.Default().All())-1)

	resp, _ = do(t, srv, http.MethodDelete, "/api/players/j/ban", heroRequest{Hero: "Pudge"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, name := range []string{"Lion", "Io"} {
		resp, _ = do(t, srv, http.MethodPost, "/api/players/j/allow", heroRequest{Hero: name}, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, data = do(t, srv, http.MethodPatch, "/api/players/j/preferences",
		preferencesRequest{HeroesShown: intPtr(2), AllowDuplicates: boolPtr(true)}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	require.NoError(t, json.Unmarshal(data, &prefs))
	assert.Equal(t, []hero.Hero{"Io", "Lion"}, prefs.Allowed)
	assert.Empty(t, prefs.Banned)
	assert.Equal(t, 2, prefs.HeroesShown)
	assert.True(t, prefs.AllowDuplicates)
	assert.Nil(t, prefs.LastMatchDate)

	resp, data = do(t, srv, http.MethodGet, "/api/players/j/pool", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Io","Lion"]`, string(data))

	resp, data = do(t, srv, http.MethodGet, "/api/players", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["j"]`, string(data))
}

func TestExportImportAPI(t *testing.T) {
	src := newServer(t, "")
	for i := 0; i < 2; i++ {
		resp, _ := do(t, src, http.MethodPost, "/api/games/dota/matches",
			createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp, exported := do(t, src, http.MethodGet, "/api/export", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inhouse.json")

	dst := newServer(t, "")
	importData := func() (int, []byte) {
		req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := dst.app.Test(req, -1)
		require.NoError(t, err)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, data
	}
	code, data := importData()
	require.Equal(t, fiber.StatusOK, code, string(data))
	assert.JSONEq(t, `{"imported":2}`, string(data))
	code, data = importData()
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"imported":0}`, string(data))

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"version":2}`))
	resp, err := dst.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPages(t *testing.T) {
	srv := newServer(t, "s3cret")
	token, _, err := srv.auth.Issue("admin")
	require.NoError(t, err)
	resp, _ := do(t, srv, http.MethodPost, "/api/games/dota/matches",
		createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, data := do(t, srv, http.MethodGet, "/", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	page := string(data)
	assert.Contains(t, page, "bixkog")
	assert.Contains(t, page, webpath.Signin)

	resp, data = do(t, srv, http.MethodGet, "/", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "admin")

	form := strings.NewReader("token=wrong")
	req := httptest.NewRequest(http.MethodPost, "/signin", form)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err = srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	form = strings.NewReader("token=" + token)
	req = httptest.NewRequest(http.MethodPost, "/signin", form)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err = srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == tokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
}
