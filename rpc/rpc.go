package rpc

import (
	"context"
	"net"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// Admin exposes operational methods over net/rpc: creating rooms in the
// directory and inspecting a live session.
type Admin struct {
	registry *game.Registry
	dir      directory.Directory
}

func NewAdmin(registry *game.Registry, dir directory.Directory) *Admin {
	return &Admin{registry: registry, dir: dir}
}

type CreateRoomArgs struct {
	MaxPlayers           int
	TotalGameTimeMinutes int
}

type CreateRoomReply struct {
	RoomCode string
}

func (a *Admin) CreateRoom(args *CreateRoomArgs, reply *CreateRoomReply) error {
	if err := directory.Validate(args.MaxPlayers, args.TotalGameTimeMinutes); err != nil {
		return err
	}

	roomCode := strings.Split(uuid.New().String(), "-")[0]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.dir.Create(ctx, roomCode, args.MaxPlayers, args.TotalGameTimeMinutes); err != nil {
		return err
	}
	reply.RoomCode = roomCode
	return nil
}

type RoomSummaryArgs struct {
	RoomCode string
}

type RoomSummaryReply struct {
	Summary game.Summary
}

func (a *Admin) RoomSummary(args *RoomSummaryArgs, reply *RoomSummaryReply) error {
	sess, exists := a.registry.Get(args.RoomCode)
	if !exists {
		return directory.ErrRoomNotFound
	}
	reply.Summary = sess.Summary()
	return nil
}
