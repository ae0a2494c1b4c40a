package server

import (
	"encoding/json"
	"net/http"
	netrpc "net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/network"
	drawguess_rpc "github.com/wfunc/drawguess/rpc"
	"github.com/wfunc/drawguess/session"
)

// tickInterval is the real-time cadence of both countdowns.
const tickInterval = time.Second

func durationSeconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	registry       *game.Registry
	sessionManager *session.Manager
	dir            directory.Directory
	mon            *monitor.Monitor
	rpcServer      *drawguess_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, dir directory.Directory, mon *monitor.Monitor) *GameServer {
	settings := game.Settings{
		RoundSeconds:    cfg.Game.RoundSeconds,
		RoundsPerPlayer: cfg.Game.RoundsPerPlayer,
		NextRoundDelay:  durationSeconds(cfg.Game.NextRoundDelaySeconds),
		MinConnected:    cfg.Game.MinConnectedPlayers,
		TickInterval:    tickInterval,
	}

	var stats game.Stats
	if mon != nil {
		stats = mon
	}

	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		registry:       game.NewRegistry(dir, settings, stats),
		sessionManager: session.NewManager(),
		dir:            dir,
		mon:            mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // room codes gate access, not origins
			},
		},
	}

	rpcServer, err := drawguess_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	admin := drawguess_rpc.NewAdmin(s.registry, dir)
	if err := netrpc.Register(admin); err != nil {
		logger.Log.Fatalf("Failed to register RPC service: %v", err)
	}

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/rooms", s.handleCreateRoom)
	mux.HandleFunc("/api/rooms/check", s.handleCheckRoom)

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.mon != nil {
		s.mon.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		if s.mon != nil {
			s.mon.DecOnlinePlayers()
		}
		if roomCode := sess.RoomCode(); roomCode != "" {
			if room, exists := s.registry.Get(roomCode); exists {
				room.HandleDisconnect(sess)
			}
		}
		s.syncRoomGauge()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	if s.mon != nil {
		s.mon.IncMessagesReceived()
	}

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		// LastActive is refreshed by Send; nothing else to do.
	case network.MsgTypeJoin:
		s.handleJoin(sess, packet)
	case network.MsgTypeDraw:
		s.handleDraw(sess, packet)
	case network.MsgTypeClearCanvas:
		s.handleClearCanvas(sess, packet)
	case network.MsgTypeChat:
		s.handleChat(sess, packet)
	case network.MsgTypeGuess:
		s.handleGuess(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

func (s *GameServer) handleJoin(sess *session.Session, packet *network.Packet) {
	var req models.JoinRequest
	if !decode(sess, packet.Data, &req) {
		return
	}

	room, created := s.registry.GetOrCreate(req.RoomCode)
	if created {
		s.syncRoomGauge()
	}
	room.HandleJoin(sess, req)
}

func (s *GameServer) handleDraw(sess *session.Session, packet *network.Packet) {
	var req models.DrawRequest
	if !decode(sess, packet.Data, &req) {
		return
	}
	if room, exists := s.roomFor(sess); exists {
		room.HandleDraw(sess, req)
	}
}

func (s *GameServer) handleClearCanvas(sess *session.Session, packet *network.Packet) {
	var req models.ClearCanvasRequest
	if !decode(sess, packet.Data, &req) {
		return
	}
	if room, exists := s.roomFor(sess); exists {
		room.HandleClearCanvas(sess, req)
	}
}

func (s *GameServer) handleChat(sess *session.Session, packet *network.Packet) {
	var req models.ChatRequest
	if !decode(sess, packet.Data, &req) {
		return
	}
	if room, exists := s.roomFor(sess); exists {
		room.HandleChat(sess, req)
	}
}

func (s *GameServer) handleGuess(sess *session.Session, packet *network.Packet) {
	var req models.GuessRequest
	if !decode(sess, packet.Data, &req) {
		return
	}
	if room, exists := s.roomFor(sess); exists {
		room.HandleGuess(sess, req)
	}
}

// roomFor resolves the room from the session's bound room code, not
// from the payload, so a client cannot act on a room it never joined.
func (s *GameServer) roomFor(sess *session.Session) (*game.Session, bool) {
	roomCode := sess.RoomCode()
	if roomCode == "" {
		return nil, false
	}
	return s.registry.Get(roomCode)
}

func (s *GameServer) syncRoomGauge() {
	if s.mon != nil {
		s.mon.SetActiveRooms(s.registry.Count())
	}
}

// decode unmarshals and validates an inbound payload. Malformed packets
// get a private system message and never reach the game session.
func decode(sess *session.Session, data []byte, req interface{ Validate() error }) bool {
	if err := json.Unmarshal(data, req); err != nil {
		logger.Log.Debugf("Session %s sent malformed payload: %v", sess.GetID(), err)
		return false
	}
	if err := req.Validate(); err != nil {
		sess.SendJSON(network.MsgTypeSystemMessage, models.SystemMessage{Text: err.Error()})
		return false
	}
	return true
}
