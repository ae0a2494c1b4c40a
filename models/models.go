// models/models.go
package models

// RoomConfig is one record in the external room directory.
type RoomConfig struct {
	Capacity             int `json:"capacity"`
	TotalGameTimeMinutes int `json:"total_game_time_minutes"`
}

// TotalGameTimeSeconds converts the stored minutes to the seconds the
// match countdown actually runs on.
func (c RoomConfig) TotalGameTimeSeconds() int {
	return c.TotalGameTimeMinutes * 60
}

// PlayerView is the public projection of a roster entry, safe to broadcast.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Stroke is one drawing primitive. Color is nil for eraser strokes.
// A stroke is immutable once recorded; its position in the replay
// buffer is its replay order.
type Stroke struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  *string `json:"color"`
	Eraser bool    `json:"eraser"`
}
