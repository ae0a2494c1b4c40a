// server/rooms_http.go
//
// The room creation/check HTTP API. Peripheral to the session engine:
// it only reads and writes the external room directory.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/logger"
)

type createRoomRequest struct {
	MaxPlayers    int `json:"max_players"`
	TotalGameTime int `json:"total_game_time"` // minutes
}

type createRoomResponse struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"room_code"`
}

// handleCreateRoom registers a new room in the directory and hands back
// its short join code.
func (s *GameServer) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := directory.Validate(req.MaxPlayers, req.TotalGameTime); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Short unique code, like "a1b2c3d4".
	roomCode := strings.Split(uuid.New().String(), "-")[0]

	if err := s.dir.Create(r.Context(), roomCode, req.MaxPlayers, req.TotalGameTime); err != nil {
		logger.Log.Errorf("Error creating room: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create room")
		return
	}

	writeJSON(w, http.StatusCreated, createRoomResponse{Success: true, RoomCode: roomCode})
}

// handleCheckRoom reports whether a room code exists.
func (s *GameServer) handleCheckRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	roomCode := r.URL.Query().Get("roomCode")
	if roomCode == "" {
		writeError(w, http.StatusBadRequest, "roomCode is required")
		return
	}

	_, err := s.dir.Lookup(r.Context(), roomCode)
	if err != nil && !errors.Is(err, directory.ErrRoomNotFound) {
		logger.Log.Errorf("Error checking room %s: %v", roomCode, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": err == nil})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
