package server

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lab1702/wingman/config"
	"github.com/lab1702/wingman/game"
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	return strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1"
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true, // Enable per-message deflate compression
}

// Message types
const (
	MsgTypeCommand = "command"
	MsgTypeUpdate  = "update"
	MsgTypeAck     = "ack"
	MsgTypeError   = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client represents a connected telemetry viewer or commander
type Client struct {
	ID     int
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server hosts the simulation, its AI pilots and the connected clients
type Server struct {
	mu         sync.RWMutex
	clients    map[int]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	nextID     int

	log      *zap.Logger
	settings *config.Settings
	world    *game.World
	grid     *SpatialGrid
	rng      *rand.Rand
	simTime  float64

	leader  *pilot
	carrier *pilot
	pilots  []*pilot // AI-driven ships, wingmen first
	byID    map[game.EntityID]*pilot

	done     chan struct{}
	stopOnce sync.Once
}

// NewServer creates the server and populates the scenario.
func NewServer(settings *config.Settings, profiles *config.ProfileSet, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if profiles == nil {
		profiles = &config.ProfileSet{}
	}
	seed := settings.Scenario.Seed
	s := &Server{
		clients:    make(map[int]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, ClientSendBuffer),
		log:        logger,
		settings:   settings,
		world:      game.NewWorld(),
		grid:       NewSpatialGrid(settings.Scenario.ArenaRadius*2, GridCellSize),
		rng:        rand.New(rand.NewPCG(seed, seed+1)),
		byID:       make(map[game.EntityID]*pilot),
		done:       make(chan struct{}),
	}
	if err := s.populate(profiles); err != nil {
		return nil, err
	}
	return s, nil
}

// Run starts the game loop and handles client events until ctx is done or
// Shutdown is called. A server cannot be restarted once Run returns.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.gameLoop(ctx)
		return nil
	})
	g.Go(func() error {
		s.hub(ctx)
		return nil
	})
	return g.Wait()
}

// Shutdown stops Run. It is safe to call more than once.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() { close(s.done) })
}

// hub registers clients and fans out broadcasts.
func (s *Server) hub(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			for id, client := range s.clients {
				delete(s.clients, id)
				close(client.send)
			}
			s.mu.Unlock()
			return

		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			s.log.Info("client connected", zap.Int("client", client.ID))

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			s.log.Info("client disconnected", zap.Int("client", client.ID))

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
					// Successfully sent
				default:
					// Client send channel is full, skip this message
					s.log.Warn("client send buffer full, skipping broadcast", zap.Int("client", client.ID))
				}
			}
			s.mu.RUnlock()
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// gameLoop runs the simulation at the configured tick rate
func (s *Server) gameLoop(ctx context.Context) {
	interval := s.settings.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(interval.Seconds())
			s.sendGameState()
		}
	}
}

// sendGameState queues the current frame for every client
func (s *Server) sendGameState() {
	msg := ServerMessage{Type: MsgTypeUpdate, Data: s.Snapshot()}
	select {
	case s.broadcast <- msg:
	default:
		s.log.Warn("broadcast queue full, dropping frame")
	}
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		conn:   conn,
		send:   make(chan ServerMessage, ClientSendBuffer),
		server: s,
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.Warn("websocket error", zap.Int("client", c.ID), zap.Error(err))
			}
			break
		}

		c.handleMessage(msg)
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues a message for this client only.
func (c *Client) reply(msg ServerMessage) {
	select {
	case c.send <- msg:
	default:
		c.server.log.Warn("client send buffer full, dropping reply", zap.Int("client", c.ID))
	}
}

// sendError reports a failed request to the client
func (c *Client) sendError(err error) {
	c.reply(ServerMessage{Type: MsgTypeError, Data: map[string]string{"message": err.Error()}})
}

// handleMessage processes a message from the client
func (c *Client) handleMessage(msg ClientMessage) {
	// Recover from any panic to prevent disconnection
	defer func() {
		if r := recover(); r != nil {
			c.server.log.Error("panic in handleMessage",
				zap.Int("client", c.ID), zap.String("type", msg.Type), zap.Any("panic", r))
		}
	}()

	switch msg.Type {
	case MsgTypeCommand:
		c.handleCommand(msg.Data)
	default:
		c.server.log.Debug("unknown message type", zap.String("type", msg.Type))
		c.sendError(errUnknownMessage(msg.Type))
	}
}
