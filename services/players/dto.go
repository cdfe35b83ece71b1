package players

// CreatePlayerRequest is the JSON payload for adding a player. Counters are
// not accepted here; every player starts at zero and only match commits move
// the counters.
type CreatePlayerRequest struct {
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname"`
	Position string `json:"position"`
	PhotoURL string `json:"photoUrl"`
}
