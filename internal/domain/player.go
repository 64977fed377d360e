package domain

const DefaultRating = 1000

type PlayerID string

type GameID string

func (id PlayerID) String() string { return string(id) }

func (id GameID) String() string { return string(id) }

// RosterEntry is a player with the rating used for balancing.
type RosterEntry struct {
	ID     PlayerID `json:"id"`
	Rating int      `json:"rating"`
}

// Roster resolves ratings for players, falling back to DefaultRating for
// players without history.
func Roster(players []PlayerID, ratings map[PlayerID]float64) []RosterEntry {
	roster := make([]RosterEntry, 0, len(players))
	for _, p := range players {
		rating, ok := ratings[p]
		if !ok {
			rating = DefaultRating
		}
		roster = append(roster, RosterEntry{ID: p, Rating: int(rating)})
	}
	return roster
}
