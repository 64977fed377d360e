package webpath

const (
	Signin  = "/signin"
	Signout = "/signout"
	Home    = "/"
	Draft   = "/draft"

	Api                  = "/api"
	ApiGames             = Api + "/games"
	ApiRatings           = ApiGames + "/:game/ratings"
	ApiGlicko            = ApiGames + "/:game/glicko"
	ApiStreaks           = ApiGames + "/:game/streaks"
	ApiShuffle           = ApiGames + "/:game/shuffle"
	ApiTeams             = ApiGames + "/:game/teams"
	ApiMatches           = ApiGames + "/:game/matches"
	ApiDraft             = Api + "/draft"
	ApiReroll            = ApiDraft + "/reroll"
	ApiPlayers           = Api + "/players"
	ApiPlayerPool        = ApiPlayers + "/:player/pool"
	ApiPlayerPreferences = ApiPlayers + "/:player/preferences"
	ApiPlayerBan         = ApiPlayers + "/:player/ban"
	ApiPlayerAllow       = ApiPlayers + "/:player/allow"
	ApiExport            = Api + "/export"
	ApiImport            = Api + "/import"
)

func Path() map[string]string {
	return map[string]string{
		"SignIn":   Signin,
		"SignOut":  Signout,
		"Home":     Home,
		"Draft":    Draft,
		"Api":      Api,
		"ApiGames": ApiGames,
		"ApiDraft": ApiDraft,
	}
}
