package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/marianogappa/truco/rewards"
	"github.com/marianogappa/truco/store"
	"github.com/marianogappa/truco/truco"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for development
		return true
	},
}

type client struct {
	conn *websocket.Conn
	name string
	m    sync.Mutex
}

func (c *client) send(v any) error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub runs one truco table: it seats players, feeds their actions to the
// engine, broadcasts state and events, and settles rewards at match end.
type Hub struct {
	m           sync.Mutex
	store       *store.Service
	seats       []truco.Seat
	targetScore int
	clients     map[int]*client
	game        *truco.GameState
	matchID     string
	rng         *rand.Rand
}

// NewHub creates a hub for the given roster.
func NewHub(st *store.Service, seats []truco.Seat, targetScore int) *Hub {
	return &Hub{
		store:       st,
		seats:       seats,
		targetScore: targetScore,
		clients:     map[int]*client{},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ServeWs handles a websocket connection for one seat. The first message must
// be a hello naming the seat's player id.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	var hello MessageHello
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != MessageTypeHello {
		log.Printf("Expected hello message, got error %v", err)
		conn.Close()
		return
	}

	c := &client{conn: conn, name: hello.Name}
	if err := h.register(hello.PlayerID, c); err != nil {
		c.send(NewMessageError(err.Error()))
		conn.Close()
		return
	}
	log.Printf("Player %d (%s) connected.", hello.PlayerID, hello.Name)

	go h.readLoop(hello.PlayerID, c)
}

func (h *Hub) register(playerID int, c *client) error {
	h.m.Lock()
	defer h.m.Unlock()

	seated := false
	for _, seat := range h.seats {
		if seat.ID == playerID {
			seated = true
		}
	}
	if !seated {
		return fmt.Errorf("no seat for player %d", playerID)
	}
	if _, ok := h.clients[playerID]; ok {
		return fmt.Errorf("seat %d already taken", playerID)
	}
	h.clients[playerID] = c

	if len(h.clients) == len(h.seats) && h.game == nil {
		h.startMatch()
	}
	return nil
}

func (h *Hub) startMatch() {
	seats := make([]truco.Seat, len(h.seats))
	copy(seats, h.seats)
	for i := range seats {
		if c, ok := h.clients[seats[i].ID]; ok && c.name != "" {
			seats[i].Name = c.name
		}
	}

	h.matchID = uuid.NewString()
	h.game = truco.New(truco.WithSeats(seats), truco.WithTargetScore(h.targetScore))
	log.Printf("Match %s started with %d players.", h.matchID, len(seats))
	h.broadcastGameState()
}

func (h *Hub) readLoop(playerID int, c *client) {
	defer func() {
		c.conn.Close()
		h.m.Lock()
		delete(h.clients, playerID)
		h.m.Unlock()
		log.Printf("Player %d disconnected.", playerID)
	}()

	for {
		_, bs, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var envelope WebsocketMessage
		if err := json.Unmarshal(bs, &envelope); err != nil {
			c.send(NewMessageError("malformed message"))
			continue
		}

		switch envelope.Type {
		case MessageTypeAction:
			var msg MessageAction
			if err := json.Unmarshal(bs, &msg); err != nil {
				c.send(NewMessageError("malformed action message"))
				continue
			}
			h.handleAction(playerID, c, msg)
		case MessageTypeGimmeGameState:
			h.m.Lock()
			if h.game != nil {
				if msg, err := NewMessageHeresGameState(h.game); err == nil {
					c.send(msg)
				}
			}
			h.m.Unlock()
		default:
			c.send(NewMessageError("unknown message type"))
		}
	}
}

func (h *Hub) handleAction(playerID int, c *client, msg MessageAction) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.game == nil {
		c.send(NewMessageError("match has not started"))
		return
	}

	action, err := msg.Deserialize()
	if err != nil {
		c.send(NewMessageError(err.Error()))
		return
	}
	if action.GetPlayerID() != playerID {
		c.send(NewMessageError("action player id does not match seat"))
		return
	}

	events, err := h.game.RunAction(action)
	if err != nil {
		// Rejections go to the acting client only, never broadcast.
		c.send(NewMessageError(err.Error()))
		return
	}

	h.broadcastGameState()
	if len(events) > 0 {
		h.broadcast(NewMessageEvents(events))
	}

	if h.game.IsEnded {
		h.settleMatch()
	}
}

func (h *Hub) broadcastGameState() {
	msg, err := NewMessageHeresGameState(h.game)
	if err != nil {
		log.Printf("Failed to serialize game state: %v", err)
		return
	}
	h.broadcast(msg)
}

func (h *Hub) broadcast(v any) {
	for playerID, c := range h.clients {
		if err := c.send(v); err != nil {
			log.Printf("Failed to send to player %d: %v", playerID, err)
		}
	}
}

// settleMatch computes the reward batch and applies it through the store. The
// store applies everything in one transaction, so on failure the whole batch
// is retried, never individual rows.
func (h *Hub) settleMatch() {
	g := h.game
	results, err := h.buildPlayerResults(g)
	if err != nil {
		log.Printf("Failed to load player rows for match %s: %v", h.matchID, err)
		return
	}

	batch := rewards.Calculate(results, h.rng)
	match := store.MatchResult{
		ID:           h.matchID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Team0Players: joinTeamNames(g, 0),
		Team1Players: joinTeamNames(g, 1),
		Team0Score:   g.TeamScores[0],
		Team1Score:   g.TeamScores[1],
		WinnerTeam:   g.WinnerTeamID,
		Abandoned:    g.AbandonedPlayerID != -1,
	}

	if err := h.store.ApplyRewards(match, batch); err != nil {
		log.Printf("Failed to apply rewards for match %s, retrying batch: %v", h.matchID, err)
		if err := h.store.ApplyRewards(match, batch); err != nil {
			log.Printf("Giving up on rewards for match %s: %v", h.matchID, err)
			return
		}
	}
	log.Printf("Match %s settled: winner team %d.", h.matchID, g.WinnerTeamID)
}

func (h *Hub) buildPlayerResults(g *truco.GameState) ([]rewards.PlayerResult, error) {
	ratings := map[int]int{}
	for _, playerID := range g.TurnOrder {
		row, err := h.store.EnsurePlayer(storePlayerID(g, playerID), g.Players[playerID].Name)
		if err != nil {
			return nil, err
		}
		ratings[playerID] = row.Rating
	}

	envidoWinner := -1
	if g.EnvidoPointsWon[0] > g.EnvidoPointsWon[1] {
		envidoWinner = 0
	} else if g.EnvidoPointsWon[1] > g.EnvidoPointsWon[0] {
		envidoWinner = 1
	}

	results := []rewards.PlayerResult{}
	for _, playerID := range g.TurnOrder {
		teamID := g.TeamOf(playerID)
		results = append(results, rewards.PlayerResult{
			PlayerID:        storePlayerID(g, playerID),
			Rating:          ratings[playerID],
			OpponentRating:  averageOpposingRating(g, ratings, teamID),
			Won:             g.WinnerTeamID == teamID,
			Abandoned:       g.AbandonedPlayerID == playerID,
			EnvidoContested: g.EnvidoContested && envidoWinner != -1,
			WonEnvido:       envidoWinner == teamID,
		})
	}
	return results, nil
}

func averageOpposingRating(g *truco.GameState, ratings map[int]int, teamID int) int {
	sum, n := 0, 0
	for _, playerID := range g.TurnOrder {
		if g.TeamOf(playerID) != teamID {
			sum += ratings[playerID]
			n++
		}
	}
	if n == 0 {
		return store.DefaultRating
	}
	return sum / n
}

func storePlayerID(g *truco.GameState, playerID int) string {
	if name := g.Players[playerID].Name; name != "" {
		return name
	}
	return strconv.Itoa(playerID)
}

func joinTeamNames(g *truco.GameState, teamID int) string {
	names := ""
	for _, playerID := range g.TeamPlayerIDs(teamID) {
		if names != "" {
			names += ","
		}
		names += storePlayerID(g, playerID)
	}
	return names
}
