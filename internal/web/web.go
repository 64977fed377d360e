package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"

	embedded "github.com/goserg/inhouse"
	"github.com/goserg/inhouse/internal/auth"
	"github.com/goserg/inhouse/internal/config"
	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
	"github.com/goserg/inhouse/internal/service"
	"github.com/goserg/inhouse/internal/storage"
	"github.com/goserg/inhouse/internal/web/webpath"
)

const (
	operatorKey = "operator"
	tokenCookie = "token"
	// recentMatches is how many matches the home page lists.
	recentMatches = 20
)

type Server struct {
	auth *auth.Service
	svc  *service.MatchService
	app  *fiber.App
	cfg  config.Server
	log  *logrus.Entry
}

func New(svc *service.MatchService, cfg config.Server, authService *auth.Service, l logrus.FieldLogger) (*Server, error) {
	server := Server{
		svc:  svc,
		auth: authService,
		cfg:  cfg,
		log:  l.WithField("name", "web"),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("Join", joinPlayers)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          server.handleError,
		DisableStartupMessage: !cfg.Debug,
	})
	app.Use(server.identify)

	app.Get(webpath.Home, server.handleMain)
	app.Get(webpath.Draft, server.handleDraftPage)
	app.Get(webpath.Signin, server.handleGetSignIn)
	app.Post(webpath.Signin, server.handlePostSignIn)
	app.Get(webpath.Signout, server.handleSignOut)

	app.Get(webpath.ApiGames, server.handleGames)
	app.Get(webpath.ApiRatings, server.handleRatings)
	app.Get(webpath.ApiGlicko, server.handleGlicko)
	app.Get(webpath.ApiStreaks, server.handleStreaks)
	app.Post(webpath.ApiShuffle, server.handleShuffle)
	app.Post(webpath.ApiTeams, server.handleTeams)
	app.Get(webpath.ApiMatches, server.handleMatches)
	app.Post(webpath.ApiMatches, server.authorize, server.handleRecordMatch)

	app.Get(webpath.ApiDraft, server.handleDraft)
	app.Post(webpath.ApiDraft, server.authorize, server.handleStartDraft)
	app.Delete(webpath.ApiDraft, server.authorize, server.handleClearDraft)
	app.Post(webpath.ApiReroll, server.authorize, server.handleReroll)

	app.Get(webpath.ApiPlayers, server.handlePlayers)
	app.Get(webpath.ApiPlayerPool, server.handlePool)
	app.Get(webpath.ApiPlayerPreferences, server.handlePreferences)
	app.Patch(webpath.ApiPlayerPreferences, server.authorize, server.handleUpdatePreferences)
	app.Post(webpath.ApiPlayerBan, server.authorize, server.handleHero(server.svc.Ban))
	app.Delete(webpath.ApiPlayerBan, server.authorize, server.handleHero(server.svc.Unban))
	app.Post(webpath.ApiPlayerAllow, server.authorize, server.handleHero(server.svc.Allow))
	app.Delete(webpath.ApiPlayerAllow, server.authorize, server.handleHero(server.svc.Unallow))

	app.Get(webpath.ApiExport, server.handleExport)
	app.Post(webpath.ApiImport, server.authorize, server.handleImport)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func bearerToken(ctx *fiber.Ctx) string {
	if token, ok := strings.CutPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer "); ok {
		return token
	}
	return ctx.Cookies(tokenCookie)
}

// identify remembers the operator of a valid token for the templates.
func (s *Server) identify(ctx *fiber.Ctx) error {
	if !s.auth.Enabled() {
		return ctx.Next()
	}
	if operator, err := s.auth.Verify(bearerToken(ctx)); err == nil {
		ctx.Locals(operatorKey, operator)
	}
	return ctx.Next()
}

func (s *Server) authorize(ctx *fiber.Ctx) error {
	if !s.auth.Enabled() {
		return ctx.Next()
	}
	if _, ok := ctx.Locals(operatorKey).(string); ok {
		return ctx.Next()
	}
	if _, err := s.auth.Verify(bearerToken(ctx)); err != nil {
		return err
	}
	return ctx.Next()
}

func operator(ctx *fiber.Ctx) string {
	name, _ := ctx.Locals(operatorKey).(string)
	return name
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := statusCode(err)
	if code >= fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	return ctx.Status(code).JSON(errorResponse{Error: err.Error()})
}

func statusCode(err error) int {
	var fiberErr *fiber.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, auth.ErrNotAuthorized), errors.Is(err, auth.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, draft.ErrPlayerNotInGame):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateEntry):
		return fiber.StatusConflict
	case errors.Is(err, hero.ErrUnknownHero),
		errors.Is(err, domain.ErrEmptyTeam),
		errors.Is(err, domain.ErrOverlap),
		errors.Is(err, domain.ErrMissingPlayer),
		errors.Is(err, service.ErrDuplicatePlayer),
		errors.Is(err, service.ErrRosterTooLarge),
		errors.Is(err, service.ErrInvalidHeroesShown),
		errors.Is(err, service.ErrExportVersion),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	games, err := s.svc.ListGames(ctx.Context())
	if err != nil {
		return err
	}
	sort.Slice(games, func(i, j int) bool { return games[i] < games[j] })
	m := newData("Рейтинг").WithOperator(operator(ctx)).With("Games", games)
	game := domain.GameID(ctx.Query("game"))
	if game == "" && len(games) > 0 {
		game = games[0]
	}
	if game != "" {
		board, err := s.svc.Leaderboard(ctx.Context(), game)
		if err != nil {
			return err
		}
		history, err := s.svc.History(ctx.Context(), game)
		if err != nil {
			return err
		}
		m = m.With("Game", game).With("Players", board).With("Matches", latestFirst(history, recentMatches))
	}
	return ctx.Render("index", m, "layouts/main")
}

func (s *Server) handleDraftPage(ctx *fiber.Ctx) error {
	return ctx.Render("draft", newData("Драфт").
		WithOperator(operator(ctx)).
		With("Draft", s.svc.Draft()), "layouts/main")
}

func (s *Server) handleGetSignIn(ctx *fiber.Ctx) error {
	return ctx.Render("signin", newData("Войти"), "layouts/main")
}

func (s *Server) handlePostSignIn(ctx *fiber.Ctx) error {
	token := strings.TrimSpace(ctx.FormValue("token", ""))
	if _, err := s.auth.Verify(token); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).
			Render("signin", newData("Войти").WithErrors(err), "layouts/main")
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleSignOut(ctx *fiber.Ctx) error {
	ctx.ClearCookie(tokenCookie)
	return ctx.Redirect(webpath.Home)
}

func latestFirst(entries []domain.HistoryEntry, n int) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006г.")
}

func joinPlayers(players []domain.PlayerID) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
