package web

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goserg/inhouse/internal/balance"
	"github.com/goserg/inhouse/internal/domain"
	"github.com/goserg/inhouse/internal/hero"
)

type validator interface {
	Validate() error
}

// parseBody decodes the request body into req and validates it.
func parseBody(ctx *fiber.Ctx, req validator) error {
	if err := ctx.BodyParser(req); err != nil {
		return badRequest(err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(err)
	}
	return nil
}

func badRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func gameParam(ctx *fiber.Ctx) domain.GameID {
	return domain.GameID(ctx.Params("game"))
}

func (s *Server) handleGames(ctx *fiber.Ctx) error {
	games, err := s.svc.ListGames(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(games)
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	board, err := s.svc.Leaderboard(ctx.Context(), gameParam(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(board)
}

func (s *Server) handleGlicko(ctx *fiber.Ctx) error {
	ratings, err := s.svc.GlickoRatings(ctx.Context(), gameParam(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(ratings)
}

func (s *Server) handleStreaks(ctx *fiber.Ctx) error {
	var names []string
	if q := ctx.Query("players"); q != "" {
		names = strings.Split(q, ",")
	}
	players, err := playerIDs(names)
	if err != nil {
		return badRequest(err)
	}
	streaks, err := s.svc.LoseStreaks(ctx.Context(), gameParam(ctx), players)
	if err != nil {
		return err
	}
	return ctx.JSON(streaks)
}

func (s *Server) handleShuffle(ctx *fiber.Ctx) error {
	var req shuffleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	players, err := playerIDs(req.Players)
	if err != nil {
		return badRequest(err)
	}
	left, right, err := s.svc.Shuffle(ctx.Context(), gameParam(ctx), players, req.Temperature)
	if err != nil {
		return err
	}
	return ctx.JSON(teamsResponse{Left: left, Right: right, Gap: balance.Gap(left, right)})
}

func (s *Server) handleTeams(ctx *fiber.Ctx) error {
	var req teamsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	left, err := playerIDs(req.Left)
	if err != nil {
		return badRequest(err)
	}
	right, err := playerIDs(req.Right)
	if err != nil {
		return badRequest(err)
	}
	l, r, err := s.svc.CalculateTeams(ctx.Context(), gameParam(ctx), left, right)
	if err != nil {
		return err
	}
	return ctx.JSON(teamsResponse{Left: l, Right: r, Gap: balance.Gap(l, r)})
}

func (s *Server) handleMatches(ctx *fiber.Ctx) error {
	history, err := s.svc.History(ctx.Context(), gameParam(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(history)
}

func (s *Server) handleRecordMatch(ctx *fiber.Ctx) error {
	var req createMatch
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	entry, err := req.toEntry()
	if err != nil {
		return badRequest(err)
	}
	recorded, err := s.svc.RecordMatch(ctx.Context(), gameParam(ctx), entry)
	if err != nil {
		return err
	}
	s.log.WithField("operator", operator(ctx)).WithField("id", recorded.ID).Info("match added")
	return ctx.Status(fiber.StatusCreated).JSON(recorded)
}

func (s *Server) handleDraft(ctx *fiber.Ctx) error {
	return ctx.JSON(s.svc.Draft())
}

func (s *Server) handleStartDraft(ctx *fiber.Ctx) error {
	var req draftRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	radiant, err := playerIDs(req.Radiant)
	if err != nil {
		return badRequest(err)
	}
	dire, err := playerIDs(req.Dire)
	if err != nil {
		return badRequest(err)
	}
	state, err := s.svc.StartDraft(ctx.Context(), domain.GameID(strings.TrimSpace(req.Game)), radiant, dire)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(state)
}

func (s *Server) handleClearDraft(ctx *fiber.Ctx) error {
	s.svc.ClearDraft()
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleReroll(ctx *fiber.Ctx) error {
	var req rerollRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	outcome, err := s.svc.Reroll(ctx.Context(), strings.TrimSpace(req.Player))
	if err != nil {
		return err
	}
	return ctx.JSON(outcome)
}

func (s *Server) handlePlayers(ctx *fiber.Ctx) error {
	return ctx.JSON(s.svc.Players())
}

func (s *Server) handlePool(ctx *fiber.Ctx) error {
	return ctx.JSON(s.svc.HeroPool(ctx.Params("player")))
}

func (s *Server) handlePreferences(ctx *fiber.Ctx) error {
	return ctx.JSON(newPreferencesResponse(s.svc.Preferences(ctx.Params("player"))))
}

func (s *Server) handleUpdatePreferences(ctx *fiber.Ctx) error {
	var req preferencesRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	player := ctx.Params("player")
	if req.HeroesShown != nil {
		if err := s.svc.SetHeroesShown(ctx.Context(), player, *req.HeroesShown); err != nil {
			return err
		}
	}
	if req.AllowDuplicates != nil {
		if err := s.svc.SetAllowDuplicates(ctx.Context(), player, *req.AllowDuplicates); err != nil {
			return err
		}
	}
	return ctx.JSON(newPreferencesResponse(s.svc.Preferences(player)))
}

type heroUpdate func(ctx context.Context, player, name string) (hero.Hero, error)

// handleHero serves the routes that add or remove one hero from a preference list.
func (s *Server) handleHero(update heroUpdate) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req heroRequest
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
		player := ctx.Params("player")
		if _, err := update(ctx.Context(), player, req.Hero); err != nil {
			return err
		}
		return ctx.JSON(newPreferencesResponse(s.svc.Preferences(player)))
	}
}

func (s *Server) handleExport(ctx *fiber.Ctx) error {
	data, err := s.svc.Export(ctx.Context())
	if err != nil {
		return err
	}
	ctx.Attachment("inhouse.json")
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(data)
}

func (s *Server) handleImport(ctx *fiber.Ctx) error {
	n, err := s.svc.Import(ctx.Context(), ctx.Body())
	if err != nil {
		return err
	}
	s.log.WithField("operator", operator(ctx)).WithField("entries", n).Info("history imported")
	return ctx.JSON(fiber.Map{"imported": n})
}
