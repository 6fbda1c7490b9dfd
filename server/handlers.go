package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// ErrUnknownAgent is returned when a command names a ship no agent flies.
var ErrUnknownAgent = errors.New("unknown agent")

// maxCommandBody bounds the size of a POSTed command.
const maxCommandBody = 4096

// CommandRequest asks one wingman (or every wingman when Agent is empty)
// to change state. IDs are UUID strings; empty means none.
type CommandRequest struct {
	Agent   string `json:"agent"`
	State   string `json:"state"`
	Target  string `json:"target"`
	Carrier string `json:"carrier"`
}

// CommandAck reports which agents accepted a command.
type CommandAck struct {
	Agents []game.EntityID `json:"agents"`
	State  wingman.State   `json:"state"`
}

func errUnknownMessage(msgType string) error {
	return fmt.Errorf("unknown message type %q", msgType)
}

// parseEntity parses an optional entity handle.
func parseEntity(field, value string) (game.EntityID, error) {
	if value == "" {
		return game.NoEntity, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return game.NoEntity, fmt.Errorf("invalid %s id %q: %w", field, value, err)
	}
	return id, nil
}

// ApplyCommand validates req and transitions the addressed agents.
// ReturnToCarrier without a carrier uses the scenario's carrier.
func (s *Server) ApplyCommand(req CommandRequest) (CommandAck, error) {
	state, err := wingman.ParseState(req.State)
	if err != nil {
		return CommandAck{}, err
	}
	target, err := parseEntity("target", req.Target)
	if err != nil {
		return CommandAck{}, err
	}
	carrier, err := parseEntity("carrier", req.Carrier)
	if err != nil {
		return CommandAck{}, err
	}
	if state == wingman.StateReturnToCarrier && carrier == game.NoEntity {
		carrier = s.carrier.ship.ID
	}

	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	var pilots []*pilot
	if req.Agent == "" {
		pilots = s.wingmen()
	} else {
		id, err := parseEntity("agent", req.Agent)
		if err != nil {
			return CommandAck{}, err
		}
		p, ok := s.byID[id]
		if !ok || p.agent == nil {
			return CommandAck{}, fmt.Errorf("%w: %s", ErrUnknownAgent, req.Agent)
		}
		pilots = []*pilot{p}
	}

	cmd := wingman.NewCommand(state, wingman.Params{Target: target, Carrier: carrier})
	ack := CommandAck{State: state, Agents: make([]game.EntityID, 0, len(pilots))}
	for _, p := range pilots {
		cmd.Apply(p.agent)
		ack.Agents = append(ack.Agents, p.ship.ID)
	}

	s.log.Info("command applied",
		zap.Stringer("state", state),
		zap.Int("agents", len(ack.Agents)),
		zap.Stringer("target", target))
	return ack, nil
}

// handleCommand handles a websocket command message
func (c *Client) handleCommand(data json.RawMessage) {
	var req CommandRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError(fmt.Errorf("invalid command: %w", err))
		return
	}

	ack, err := c.server.ApplyCommand(req)
	if err != nil {
		c.server.log.Warn("command rejected", zap.Int("client", c.ID), zap.Error(err))
		c.sendError(err)
		return
	}
	c.reply(ServerMessage{Type: MsgTypeAck, Data: ack})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	// Enable CORS for cross-origin requests
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleAgents returns the telemetry of every agent-driven ship
func (s *Server) HandleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame := s.Snapshot()
	agents := make([]ShipView, 0, len(frame.Ships))
	for _, v := range frame.Ships {
		if v.AI != nil {
			agents = append(agents, v)
		}
	}
	writeJSON(w, http.StatusOK, agents)
}

// HandleCommand applies a JSON CommandRequest
func (s *Server) HandleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ack, err := s.ApplyCommand(req)
	switch {
	case errors.Is(err, ErrUnknownAgent):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, ack)
	}
}

// Routes returns the HTTP surface of the server
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/api/agents", s.HandleAgents)
	mux.HandleFunc("/api/command", s.HandleCommand)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}
