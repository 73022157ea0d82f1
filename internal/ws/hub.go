package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/middleware"
)

// RoomCreator starts a match for a freshly accepted connection. The returned
// channel closes when the match ends.
type RoomCreator interface {
	CreateRoom(c *Conn) <-chan struct{}
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveRooms      int64  `json:"activeRooms"`
	TotalConnections uint64 `json:"totalConnections"`
	RejectedFull     uint64 `json:"rejectedFull"`
}

type Hub struct {
	creator  RoomCreator
	nextID   atomic.Uint64
	maxRooms int64

	activeRooms      atomic.Int64
	totalConnections atomic.Uint64
	rejectedFull     atomic.Uint64

	limiter        *middleware.IPRateLimiter
	originPatterns []string
	log            zerolog.Logger
}

func NewHub(creator RoomCreator, limiter *middleware.IPRateLimiter, originPatterns []string, maxRooms int64, log zerolog.Logger) *Hub {
	return &Hub{
		creator:        creator,
		limiter:        limiter,
		originPatterns: originPatterns,
		maxRooms:       maxRooms,
		log:            log,
	}
}

func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveRooms:      h.activeRooms.Load(),
		TotalConnections: h.totalConnections.Load(),
		RejectedFull:     h.rejectedFull.Load(),
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}
	release := func() {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}
	wsConn, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		release()
		h.log.Warn().Err(err).Str("ip", ip).Msg("ws accept")
		return
	}
	// Client messages are small: inputs, commands, pings.
	wsConn.SetReadLimit(1024)

	h.totalConnections.Add(1)
	id := fmt.Sprintf("player-%d", h.nextID.Add(1))
	conn := NewConn(wsConn, id, ip, h.limiter, h.log)
	defer release()

	if h.activeRooms.Add(1) > h.maxRooms {
		h.activeRooms.Add(-1)
		h.rejectedFull.Add(1)
		h.log.Warn().Str("conn", id).Msg("max rooms reached, rejecting")
		conn.CloseWith(websocket.StatusTryAgainLater, "server full")
		return
	}
	h.log.Info().Str("conn", id).Str("ip", ip).Uint64("total", h.totalConnections.Load()).Msg("new connection")

	// The connection outlives the request context once upgraded.
	go conn.WriteLoop(context.Background())

	ended := h.creator.CreateRoom(conn)
	select {
	case <-ended:
	case <-conn.Done():
		<-ended
	}
	h.activeRooms.Add(-1)
	conn.Close()
	h.log.Info().Str("conn", id).Int64("rooms", h.activeRooms.Load()).Msg("connection closed")
}
