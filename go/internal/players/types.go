package players

// CreatePlayerRequest adds one player to a room's pool. Optional fields fall
// back to pool defaults.
type CreatePlayerRequest struct {
	RoomID       string  `json:"roomId"`
	Name         string  `json:"name"`
	JerseyNumber string  `json:"jerseyNumber,omitempty"`
	PlayerSet    string  `json:"playerSet,omitempty"`
	Category     string  `json:"category,omitempty"`
	Role         string  `json:"role,omitempty"`
	BasePrice    int64   `json:"basePrice"`
	Country      string  `json:"country,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// UpdatePlayerRequest edits pool fields of an existing player. Nil fields
// are left untouched. Sale fields are owned by the auction and cannot be
// edited here.
type UpdatePlayerRequest struct {
	Name         *string `json:"name,omitempty"`
	JerseyNumber *string `json:"jerseyNumber,omitempty"`
	PlayerSet    *string `json:"playerSet,omitempty"`
	Category     *string `json:"category,omitempty"`
	Role         *string `json:"role,omitempty"`
	BasePrice    *int64  `json:"basePrice,omitempty"`
	Country      *string `json:"country,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}
