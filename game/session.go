// game/session.go
package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/relay"
	"github.com/wfunc/drawguess/roster"
	"github.com/wfunc/drawguess/scoring"
	"github.com/wfunc/drawguess/session"
	"github.com/wfunc/drawguess/timer"
)

const directoryLookupTimeout = 5 * time.Second

// Settings tunes one session. Production values come from config; tests
// shrink the delays and stretch the tick interval.
type Settings struct {
	RoundSeconds    int
	RoundsPerPlayer int
	NextRoundDelay  time.Duration
	MinConnected    int
	TickInterval    time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		RoundSeconds:    60,
		RoundsPerPlayer: 3,
		NextRoundDelay:  3 * time.Second,
		MinConnected:    2,
		TickInterval:    time.Second,
	}
}

// Session is the per-room orchestrator. All room state is mutated under
// one mutex, taken by socket handlers and timer callbacks alike, so no
// two mutations of the same room ever interleave.
type Session struct {
	code     string
	dir      directory.Directory
	settings Settings
	stats    Stats

	mutex  sync.Mutex
	phase  Phase
	roster *roster.Roster
	relay  *relay.Relay
	b      broadcast.Broadcaster

	cfg           models.RoomConfig
	cfgLoaded     bool
	bootstrapping bool

	scores      map[string]int
	roundCount  int
	maxRounds   int
	drawerIdx   int
	drawerID    string
	drawerName  string
	currentWord string
	roundStart  time.Time

	correctGuessers map[string]struct{}
	guessOrder      map[string]int

	// roundGen rises on every round start; roundOver flips when a round
	// ends by either path. Together they guarantee at most one round
	// advance is scheduled per round: consensus stops the countdown and
	// sets roundOver, and a timer expiry that lost the race sees either
	// a stale generation or a finished round and does nothing.
	roundGen  uint64
	roundOver bool

	matchTimer     *timer.Countdown
	roundTimer     *timer.Countdown
	pendingAdvance *timer.Delayed

	onDestroy func()
	destroyed bool
}

// NewSession creates a room session in the Waiting phase. onDestroy is
// the registry's removal hook, invoked exactly once.
func NewSession(code string, dir directory.Directory, settings Settings, stats Stats, onDestroy func()) *Session {
	if stats == nil {
		stats = nopStats{}
	}
	r := roster.New()
	return &Session{
		code:            code,
		dir:             dir,
		settings:        settings,
		stats:           stats,
		phase:           PhaseWaiting,
		roster:          r,
		relay:           relay.New(broadcast.NewRosterBroadcaster(r)),
		b:               broadcast.NewRosterBroadcaster(r),
		scores:          make(map[string]int),
		correctGuessers: make(map[string]struct{}),
		guessOrder:      make(map[string]int),
		drawerIdx:       -1,
		onDestroy:       onDestroy,
	}
}

func (s *Session) Code() string { return s.code }

func (s *Session) Phase() Phase {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.phase
}

// Summary is a point-in-time snapshot for the admin RPC surface.
type Summary struct {
	RoomCode  string
	Phase     string
	Round     int
	MaxRounds int
	Connected int
	Scores    map[string]int
}

func (s *Session) Summary() Summary {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return Summary{
		RoomCode:  s.code,
		Phase:     s.phase.String(),
		Round:     s.roundCount,
		MaxRounds: s.maxRounds,
		Connected: s.roster.ConnectedCount(),
		Scores:    s.scoresCopyLocked(),
	}
}

// --- inbound event handlers ---

// HandleJoin admits a player (new join or reconnect) and, while Waiting,
// drives the capacity check that can start the match.
func (s *Session) HandleJoin(sess *session.Session, req models.JoinRequest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.destroyed {
		return
	}

	player, reconnected := s.roster.Join(req.PlayerID, req.DisplayName, sess.Conn)
	sess.Bind(req.PlayerID, player.Name, s.code)

	if reconnected {
		logger.Log.Infof("Player %s reconnected to room %s", player.Name, s.code)
	} else {
		logger.Log.Infof("Player %s joined room %s", player.Name, s.code)
	}

	s.b.Broadcast(network.MsgTypePlayerListUpdated, s.roster.Views())

	switch s.phase {
	case PhaseActive:
		s.resyncLocked(player)
	case PhaseWaiting:
		if !s.cfgLoaded {
			s.bootstrapLocked(sess)
			return
		}
		s.checkStartLocked()
	case PhasePaused:
		// Roster and player list are updated; resuming a paused match is
		// an external operator action, not an automatic transition.
	}
}

// HandleDraw relays one stroke. Only the current drawer may draw; other
// senders are silently ignored.
func (s *Session) HandleDraw(sess *session.Session, req models.DrawRequest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.phase != PhaseActive || sess.PlayerID() != s.drawerID {
		return
	}

	stroke := req.Stroke()
	s.relay.Record(stroke)
	s.relay.BroadcastStroke(sess.Conn, stroke)
	s.stats.StrokeRelayed()
}

// HandleClearCanvas wipes the canvas for everyone. Drawer only.
func (s *Session) HandleClearCanvas(sess *session.Session, req models.ClearCanvasRequest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.phase != PhaseActive || sess.PlayerID() != s.drawerID {
		return
	}

	s.relay.Clear()
	s.b.Broadcast(network.MsgTypeCanvasCleared, nil)
}

// HandleChat relays a chat line to the whole room.
func (s *Session) HandleChat(sess *session.Session, req models.ChatRequest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.b.Broadcast(network.MsgTypeChatMessage, models.ChatMessage{
		From: sess.DisplayName(),
		Text: req.Text,
	})
}

// HandleGuess scores a guess against the current word. Policy
// rejections (drawer guessing, duplicate correct guess, guessing after
// the round is decided) never surface beyond the sender.
func (s *Session) HandleGuess(sess *session.Session, req models.GuessRequest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.phase != PhaseActive || s.roundOver {
		return
	}

	playerID := sess.PlayerID()
	if playerID == "" || playerID == s.drawerID {
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return
	}

	if !strings.EqualFold(text, s.currentWord) {
		s.stats.GuessObserved(false)
		s.b.SendTo(sess.Conn, network.MsgTypeSystemMessage,
			models.SystemMessage{Text: "Incorrect guess. Try again!"})
		return
	}

	if _, already := s.correctGuessers[playerID]; already {
		s.b.SendTo(sess.Conn, network.MsgTypeSystemMessage,
			models.SystemMessage{Text: "You already guessed correctly this round!"})
		return
	}

	s.correctGuessers[playerID] = struct{}{}
	rank := len(s.guessOrder) + 1
	s.guessOrder[playerID] = rank

	timeTaken := int(time.Since(s.roundStart).Seconds())
	awarded := scoring.GuessScore(timeTaken, rank)
	s.scores[playerID] += awarded
	s.scores[s.drawerID] += scoring.DrawerBonus
	s.stats.GuessObserved(true)

	logger.Log.Infof("Room %s: %s guessed %q (rank %d, %ds, +%d)",
		s.code, sess.DisplayName(), s.currentWord, rank, timeTaken, awarded)

	s.b.Broadcast(network.MsgTypeGuessAccepted, models.GuessAccepted{
		GuesserName: sess.DisplayName(),
		Word:        s.currentWord,
	})
	s.broadcastScoresLocked()

	if s.consensusLocked() {
		// Full consensus beats the round timer: stop it now so the
		// expiry path cannot schedule a second advance.
		s.roundOver = true
		if s.roundTimer != nil {
			s.roundTimer.Stop()
		}
		s.b.Broadcast(network.MsgTypeSystemMessage, models.SystemMessage{
			Text: fmt.Sprintf("All correct guesses are in! The word was: %s", s.currentWord),
		})
		s.scheduleAdvanceLocked()
	}
}

// HandleDisconnect marks the player disconnected, pauses the match when
// the room falls below the connected floor, and tears the room down
// when nobody is left to reconnect.
func (s *Session) HandleDisconnect(sess *session.Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	playerID := sess.PlayerID()
	if playerID == "" || s.destroyed {
		return
	}

	player, ok := s.roster.Get(playerID)
	if !ok || player.Conn != sess.Conn {
		// A stale connection for a player who already reconnected.
		return
	}

	abandoned := s.roster.MarkDisconnected(playerID)
	logger.Log.Infof("Player %s disconnected from room %s", player.Name, s.code)

	if abandoned {
		logger.Log.Infof("Room %s abandoned, destroying session", s.code)
		s.destroyLocked()
		return
	}

	s.b.Broadcast(network.MsgTypePlayerListUpdated, s.roster.Views())

	if s.phase != PhaseActive {
		return
	}

	if s.roster.ConnectedCount() < s.settings.MinConnected {
		s.pauseLocked(fmt.Sprintf("Not enough players after %s disconnected. Game paused.", player.Name))
		return
	}

	s.b.Broadcast(network.MsgTypeSystemMessage, models.SystemMessage{
		Text: fmt.Sprintf("%s disconnected. They can rejoin with the same id.", player.Name),
	})
}

// Close destroys the session: cancels both countdowns and any scheduled
// round advance so a stale callback cannot resurrect the room.
func (s *Session) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.destroyLocked()
}

// --- bootstrap and match start ---

// bootstrapLocked launches the asynchronous directory lookup. The
// session stays in Waiting while the answer is outstanding; gameplay
// events are rejected by their phase checks throughout.
func (s *Session) bootstrapLocked(requester *session.Session) {
	if s.bootstrapping {
		return
	}
	s.bootstrapping = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), directoryLookupTimeout)
		defer cancel()

		cfg, err := s.dir.Lookup(ctx, s.code)

		s.mutex.Lock()
		defer s.mutex.Unlock()
		s.bootstrapping = false

		if s.destroyed || s.phase != PhaseWaiting {
			return
		}

		if err != nil {
			logger.Log.Errorf("Directory lookup for room %s failed: %v", s.code, err)
			s.b.SendTo(requester.Conn, network.MsgTypeDirectoryLookupFailed,
				models.DirectoryLookupFailed{Reason: "Could not fetch room details. Please try again."})
			return
		}

		s.cfg = cfg
		s.cfgLoaded = true
		s.checkStartLocked()
	}()
}

func (s *Session) checkStartLocked() {
	connected := s.roster.ConnectedCount()
	if connected < s.cfg.Capacity {
		s.b.Broadcast(network.MsgTypeWaitingForPlayers, models.WaitingForPlayers{
			Connected: connected,
			Capacity:  s.cfg.Capacity,
		})
		return
	}
	s.activateLocked()
}

func (s *Session) activateLocked() {
	if err := s.transitionLocked(PhaseActive); err != nil {
		logger.Log.Errorf("Room %s: cannot activate from %s: %v", s.code, s.phase, err)
		return
	}

	s.maxRounds = s.cfg.Capacity * s.settings.RoundsPerPlayer
	s.roundCount = 0
	s.drawerIdx = -1
	for _, p := range s.roster.All() {
		s.scores[p.ID] = 0
	}

	matchSeconds := s.cfg.TotalGameTimeSeconds()
	logger.Log.Infof("Room %s: match started, %d players, %d rounds, %ds",
		s.code, s.cfg.Capacity, s.maxRounds, matchSeconds)

	s.b.Broadcast(network.MsgTypeMatchStarted, nil)

	s.matchTimer = timer.StartCountdown(matchSeconds, s.settings.TickInterval,
		s.onMatchTick, s.onMatchExpired)

	s.beginRoundLocked()
}

// --- round lifecycle ---

func (s *Session) beginRoundLocked() {
	for id := range s.correctGuessers {
		delete(s.correctGuessers, id)
	}
	for id := range s.guessOrder {
		delete(s.guessOrder, id)
	}
	s.relay.Clear()
	s.roundCount++
	s.roundGen++
	s.roundOver = false

	connected := s.roster.Connected()
	if len(connected) == 0 {
		s.roundFailureLocked("no connected players to draw")
		return
	}

	s.drawerIdx = (s.drawerIdx + 1) % len(connected)
	drawer := connected[s.drawerIdx]
	s.drawerID = drawer.ID
	s.drawerName = drawer.Name
	s.currentWord = pickWord()
	s.roundStart = time.Now()
	s.stats.RoundStarted()

	if s.roundTimer != nil {
		s.roundTimer.Stop()
	}
	gen := s.roundGen
	s.roundTimer = timer.StartCountdown(s.settings.RoundSeconds, s.settings.TickInterval,
		s.onRoundTick, func() { s.onRoundExpired(gen) })

	logger.Log.Infof("Room %s: round %d/%d, drawer %s", s.code, s.roundCount, s.maxRounds, drawer.Name)

	// Round metadata for everyone, then the secret for the drawer alone.
	// Emitted back to back under the room lock so no other room event
	// can land between them.
	s.b.Broadcast(network.MsgTypeRoundStarted, models.RoundStarted{
		Round:        s.roundCount,
		MaxRounds:    s.maxRounds,
		DrawerID:     drawer.ID,
		DrawerName:   drawer.Name,
		RoundSeconds: s.settings.RoundSeconds,
	})
	s.b.SendTo(drawer.Conn, network.MsgTypeSecretWord, models.SecretWord{Word: s.currentWord})
	s.b.Broadcast(network.MsgTypeCanvasCleared, nil)
}

// roundFailureLocked handles the structural failure of a round start:
// no drawer could be selected. Both timers stop and the session is left
// in a non-advancing state.
func (s *Session) roundFailureLocked(reason string) {
	logger.Log.Errorf("Room %s: round advance failed: %s", s.code, reason)
	s.stopTimersLocked()
	s.b.Broadcast(network.MsgTypeRoundAdvanceFailed, models.RoundAdvanceFailed{Reason: reason})
}

func (s *Session) onRoundTick(remaining int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.phase != PhaseActive {
		return
	}
	s.b.Broadcast(network.MsgTypeRoundTick, models.Tick{SecondsRemaining: remaining})
}

// onRoundExpired is the timeout path of a round. gen pins the callback
// to the round that armed it; if consensus already ended the round (or
// a newer round started), this is a no-op.
func (s *Session) onRoundExpired(gen uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.phase != PhaseActive || s.roundOver || gen != s.roundGen {
		return
	}

	s.roundOver = true
	s.b.Broadcast(network.MsgTypeSystemMessage, models.SystemMessage{
		Text: fmt.Sprintf("Time's up! The word was: %s", s.currentWord),
	})
	s.scheduleAdvanceLocked()
}

// scheduleAdvanceLocked queues the next round or ends the match when
// the round quota is exhausted. The pending advance is cancellable and
// is cancelled on pause and destroy.
func (s *Session) scheduleAdvanceLocked() {
	if s.roundCount >= s.maxRounds {
		s.endMatchLocked()
		return
	}

	if s.pendingAdvance != nil {
		s.pendingAdvance.Cancel()
	}
	s.pendingAdvance = timer.After(s.settings.NextRoundDelay, func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		if s.phase != PhaseActive || s.destroyed {
			return
		}
		s.beginRoundLocked()
	})
}

// --- match lifecycle ---

func (s *Session) onMatchTick(remaining int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.phase != PhaseActive {
		return
	}
	s.b.Broadcast(network.MsgTypeMatchTick, models.Tick{SecondsRemaining: remaining})
}

func (s *Session) onMatchExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.phase != PhaseActive {
		return
	}
	s.endMatchLocked()
}

func (s *Session) pauseLocked(reason string) {
	if err := s.transitionLocked(PhasePaused); err != nil {
		return
	}
	s.stopTimersLocked()
	logger.Log.Infof("Room %s paused: %s", s.code, reason)
	s.b.Broadcast(network.MsgTypeMatchPaused, models.MatchPaused{Reason: reason})
}

func (s *Session) endMatchLocked() {
	s.stopTimersLocked()

	winnerName := "Unknown Player"
	winningScore := -1
	for _, p := range s.roster.All() {
		if score := s.scores[p.ID]; score > winningScore {
			winningScore = score
			winnerName = p.Name
		}
	}

	logger.Log.Infof("Room %s: match over, winner %s with %d", s.code, winnerName, winningScore)

	s.b.Broadcast(network.MsgTypeMatchEnded, models.MatchEnded{
		WinnerName:   winnerName,
		WinningScore: winningScore,
		FinalScores:  s.scoresCopyLocked(),
	})

	if err := s.transitionLocked(PhaseEnded); err != nil {
		logger.Log.Errorf("Room %s: cannot end from %s: %v", s.code, s.phase, err)
	}
	s.destroyLocked()
}

func (s *Session) destroyLocked() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.stopTimersLocked()
	if s.phase != PhaseEnded && s.phase.CanTransition(PhaseEnded) {
		s.phase = PhaseEnded
	}
	if s.onDestroy != nil {
		s.onDestroy()
	}
}

func (s *Session) stopTimersLocked() {
	if s.matchTimer != nil {
		s.matchTimer.Stop()
	}
	if s.roundTimer != nil {
		s.roundTimer.Stop()
	}
	if s.pendingAdvance != nil {
		s.pendingAdvance.Cancel()
	}
}

func (s *Session) transitionLocked(next Phase) error {
	if !s.phase.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s.phase, next)
	}
	s.phase = next
	return nil
}

// --- helpers ---

// resyncLocked brings a player joining (or reconnecting) mid-match up
// to the room's exact current state without disturbing other clients.
func (s *Session) resyncLocked(player *roster.Player) {
	conn := player.Conn
	s.b.SendTo(conn, network.MsgTypeMatchStarted, nil)
	if s.matchTimer != nil {
		s.b.SendTo(conn, network.MsgTypeMatchTick, models.Tick{SecondsRemaining: s.matchTimer.Remaining()})
	}
	if s.roundTimer != nil {
		s.b.SendTo(conn, network.MsgTypeRoundTick, models.Tick{SecondsRemaining: s.roundTimer.Remaining()})
	}
	s.b.SendTo(conn, network.MsgTypeRoundStarted, models.RoundStarted{
		Round:        s.roundCount,
		MaxRounds:    s.maxRounds,
		DrawerID:     s.drawerID,
		DrawerName:   s.drawerName,
		RoundSeconds: s.settings.RoundSeconds,
	})
	if player.ID == s.drawerID {
		s.b.SendTo(conn, network.MsgTypeSecretWord, models.SecretWord{Word: s.currentWord})
	}
	s.b.SendTo(conn, network.MsgTypeScoreUpdated, models.ScoreUpdated{
		Scores: s.scoresCopyLocked(),
		Roster: s.roster.Views(),
	})
	s.relay.Replay(conn)
}

// consensusLocked reports whether every connected non-drawer has
// guessed correctly this round.
func (s *Session) consensusLocked() bool {
	others := 0
	for _, p := range s.roster.Connected() {
		if p.ID == s.drawerID {
			continue
		}
		others++
		if _, ok := s.correctGuessers[p.ID]; !ok {
			return false
		}
	}
	return others > 0
}

func (s *Session) broadcastScoresLocked() {
	s.b.Broadcast(network.MsgTypeScoreUpdated, models.ScoreUpdated{
		Scores: s.scoresCopyLocked(),
		Roster: s.roster.Views(),
	})
}

func (s *Session) scoresCopyLocked() map[string]int {
	scores := make(map[string]int, len(s.scores))
	for id, score := range s.scores {
		scores[id] = score
	}
	return scores
}
