// A small interactive client for poking at the server: joins a room,
// prints everything the server sends, and turns stdin lines into chat
// or guesses.
//
//	go run ./client -room a1b2c3d4 -name alice
//	> hello everyone        (chat)
//	> /guess banana         (guess)
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	msgTypeJoin  = 101
	msgTypeChat  = 104
	msgTypeGuess = 105
)

var outboundNames = map[uint16]string{
	301: "playerListUpdated",
	302: "waitingForPlayers",
	303: "matchStarted",
	304: "roundStarted",
	305: "secretWord",
	306: "canvasCleared",
	307: "stroke",
	308: "roundTick",
	309: "matchTick",
	310: "guessAccepted",
	311: "scoreUpdated",
	312: "matchEnded",
	313: "matchPaused",
	314: "roundAdvanceFailed",
	315: "directoryLookupFailed",
	316: "chat",
	317: "system",
}

// send frames and sends a message to the server.
func send(c *websocket.Conn, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	addr := flag.String("addr", "localhost:3000", "server address")
	room := flag.String("room", "", "room code to join")
	name := flag.String("name", "", "display name")
	player := flag.String("player", "", "player id (defaults to a fresh uuid; reuse to reconnect)")
	flag.Parse()

	if *room == "" || *name == "" {
		log.Fatal("both -room and -name are required")
	}
	if *player == "" {
		*player = uuid.New().String()
		log.Printf("Player id: %s (pass -player %s to reconnect)", *player, *player)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			name := outboundNames[msgID]
			if name == "" {
				name = fmt.Sprintf("msg_%d", msgID)
			}
			fmt.Printf("<- %-22s %s\n", name, string(message[4:]))
		}
	}()

	join := map[string]string{
		"room_code":    *room,
		"player_id":    *player,
		"display_name": *name,
	}
	if err := send(c, msgTypeJoin, join); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	// Input loop
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var err error
			if guess, ok := strings.CutPrefix(line, "/guess "); ok {
				err = send(c, msgTypeGuess, map[string]string{"room_code": *room, "text": guess})
			} else {
				err = send(c, msgTypeChat, map[string]string{"room_code": *room, "text": line})
			}
			if err != nil {
				log.Printf("Send failed: %v", err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted, closing connection")
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
