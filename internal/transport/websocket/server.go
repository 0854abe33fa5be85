package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrCellRequired   = errors.New("cell is required")
	errSendBufferFull = errors.New("client send buffer is full")
)

type gameUseCase interface {
	State(ctx context.Context, sessionID string) (entity.Snapshot, error)
	Play(ctx context.Context, sessionID string, cell int) (entity.Snapshot, bool, error)
	Reset(ctx context.Context, sessionID string) (entity.Snapshot, error)
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	hub      *Hub
	upgrader gws.Upgrader

	handlers map[string]handlerFunc

	connsMu sync.Mutex
	conns   map[*gws.Conn]struct{}
}

// New returns a websocket server that accepts browser connections from its own host or from allowedOrigins.
func New(logger *slog.Logger, game gameUseCase, hub *Hub, allowedOrigins []string) *Server {
	allowOrigin := pkg.NewOriginValidator(allowedOrigins)

	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		hub:    hub,
		upgrader: gws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				return checkOrigin(req, allowOrigin)
			},
		},

		handlers: make(map[string]handlerFunc),
		conns:    make(map[*gws.Conn]struct{}),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionReset] = server.handleReset

	return server
}

// ServeHTTP upgrades the connection and serves the caller's session until it disconnects.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	responseHeader := http.Header{}
	sessionID, ok := pkg.SessionFromRequest(req)
	if !ok {
		sessionID = pkg.GenerateNewSessionID()
		responseHeader.Add("Set-Cookie", pkg.NewSessionCookie(sessionID).String())
		log.Info("session cookie not found, new one created", "session", sessionID)
	}

	conn, err := that.upgrader.Upgrade(writer, req, responseHeader)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	that.track(conn)
	defer that.untrack(conn)

	log = log.With("session", sessionID)
	log.Info("WebSocket connection established")

	c := that.hub.register(sessionID)
	done := make(chan struct{})
	go func() {
		defer close(done)
		that.writePump(conn, c)
	}()

	ctx := req.Context()
	if err = that.handleState(ctx, c, &Message{Action: actionState}); err != nil {
		log.Error("failed to send initial state", "error", err)
	}

	that.readPump(ctx, conn, c)

	that.hub.unregister(c)
	<-done

	log.Info("WebSocket connection closed")
}

// Close drops every open connection.
func (that *Server) Close() {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	for conn := range that.conns {
		_ = conn.Close()
	}
}

func (that *Server) readPump(ctx context.Context, conn *gws.Conn, c *client) {
	log := that.logger.With("method", "readPump", "session", c.sessionID)

	conn.SetReadLimit(maxMessageSize)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseGoingAway, gws.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, fmt.Errorf("%w: %q", ErrUnknownAction, message.Action))
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendError(c, err)
		}
	}
}

func (that *Server) writePump(conn *gws.Conn, c *client) {
	log := that.logger.With("method", "writePump", "session", c.sessionID)

	defer conn.Close()

	for message := range c.send {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Error("failed to set write deadline", "error", err)
			return
		}

		if err := conn.WriteMessage(gws.TextMessage, message); err != nil {
			log.Error("failed to write message", "error", err)
			return
		}
	}

	_ = conn.WriteControl(gws.CloseMessage, gws.FormatCloseMessage(gws.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (that *Server) handleState(ctx context.Context, c *client, _ *Message) error {
	snapshot, err := that.game.State(ctx, c.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	return that.send(c, actionState, gamePayload(snapshot))
}

func (that *Server) handlePlay(ctx context.Context, c *client, message *Message) error {
	var request PlayRequest
	if err := json.Unmarshal(message.Payload, &request); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if request.Cell == nil {
		return ErrCellRequired
	}

	snapshot, applied, err := that.game.Play(ctx, c.sessionID, *request.Cell)
	if err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	payload := gamePayload(snapshot)
	payload.Applied = &applied

	return that.send(c, actionPlay, payload)
}

func (that *Server) handleReset(ctx context.Context, c *client, _ *Message) error {
	snapshot, err := that.game.Reset(ctx, c.sessionID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return that.send(c, actionReset, gamePayload(snapshot))
}

func (that *Server) sendError(c *client, cause error) {
	if err := that.send(c, actionError, ResponsePayload{Error: cause.Error()}); err != nil {
		that.logger.Error("failed to send error", "session", c.sessionID, "error", err)
	}
}

func (that *Server) send(c *client, action string, payload ResponsePayload) error {
	message, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if !that.hub.enqueue(c, message) {
		return errSendBufferFull
	}

	return nil
}

// checkOrigin lets through clients that send no Origin, same-host pages and the configured origins.
func checkOrigin(req *http.Request, allowOrigin func(string) bool) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, req.Host) {
		return true
	}

	return allowOrigin(origin)
}

func (that *Server) track(conn *gws.Conn) {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	that.conns[conn] = struct{}{}
}

func (that *Server) untrack(conn *gws.Conn) {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	delete(that.conns, conn)
}
