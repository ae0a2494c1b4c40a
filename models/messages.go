// models/messages.go
//
// Typed payloads for every message on the wire. Inbound payloads carry a
// Validate method so the server can reject malformed packets before they
// reach the game session.
package models

import (
	"errors"
	"strings"
)

var (
	ErrMissingRoomCode = errors.New("room code is required")
	ErrMissingPlayerID = errors.New("player id is required")
	ErrMissingName     = errors.New("display name is required")
	ErrEmptyText       = errors.New("text is required")
)

// --- inbound ---

type JoinRequest struct {
	RoomCode    string `json:"room_code"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

func (r JoinRequest) Validate() error {
	if strings.TrimSpace(r.RoomCode) == "" {
		return ErrMissingRoomCode
	}
	if strings.TrimSpace(r.PlayerID) == "" {
		return ErrMissingPlayerID
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return ErrMissingName
	}
	return nil
}

type DrawRequest struct {
	RoomCode string  `json:"room_code"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    *string `json:"color"`
	Eraser   bool    `json:"eraser"`
}

func (r DrawRequest) Validate() error { return nil }

// Stroke converts the request into its recorded form.
func (r DrawRequest) Stroke() Stroke {
	return Stroke{X: r.X, Y: r.Y, Color: r.Color, Eraser: r.Eraser}
}

type ClearCanvasRequest struct {
	RoomCode string `json:"room_code"`
}

func (r ClearCanvasRequest) Validate() error { return nil }

type ChatRequest struct {
	RoomCode string `json:"room_code"`
	Text     string `json:"text"`
}

func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

type GuessRequest struct {
	RoomCode string `json:"room_code"`
	Text     string `json:"text"`
}

func (r GuessRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// --- outbound ---

type WaitingForPlayers struct {
	Connected int `json:"connected"`
	Capacity  int `json:"capacity"`
}

type RoundStarted struct {
	Round        int    `json:"round"`
	MaxRounds    int    `json:"max_rounds"`
	DrawerID     string `json:"drawer_id"`
	DrawerName   string `json:"drawer_name"`
	RoundSeconds int    `json:"round_seconds"`
}

type SecretWord struct {
	Word string `json:"word"`
}

type Tick struct {
	SecondsRemaining int `json:"seconds_remaining"`
}

type GuessAccepted struct {
	GuesserName string `json:"guesser_name"`
	Word        string `json:"word"`
}

type ScoreUpdated struct {
	Scores map[string]int `json:"scores"`
	Roster []PlayerView   `json:"roster"`
}

type MatchEnded struct {
	WinnerName   string         `json:"winner_name"`
	WinningScore int            `json:"winning_score"`
	FinalScores  map[string]int `json:"final_scores"`
}

type MatchPaused struct {
	Reason string `json:"reason"`
}

type RoundAdvanceFailed struct {
	Reason string `json:"reason"`
}

type DirectoryLookupFailed struct {
	Reason string `json:"reason"`
}

type ChatMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// SystemMessage is an informational line for a single client, e.g. the
// reply to an incorrect guess.
type SystemMessage struct {
	Text string `json:"text"`
}
