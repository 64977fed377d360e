package domain

type BalancedTeam struct {
	Players    []PlayerID `json:"players"`
	RealRating int        `json:"realRating"`
	PityRating int        `json:"pityRating"`
	// PityBonusMul is the multiplicative factor applied, 1 when none.
	PityBonusMul float64 `json:"pityBonusMul"`
	PityBonusAdd int     `json:"pityBonusAdd"`
}
