package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/middleware"
)

const writeTimeout = 5 * time.Second

type Conn struct {
	ws      *websocket.Conn
	sendCh  chan []byte
	done    chan struct{}
	once    sync.Once
	ID      string
	IP      string
	limiter *middleware.IPRateLimiter
	log     zerolog.Logger
}

func NewConn(ws *websocket.Conn, id string, ip string, limiter *middleware.IPRateLimiter, log zerolog.Logger) *Conn {
	return &Conn{
		ws:      ws,
		sendCh:  make(chan []byte, 64),
		done:    make(chan struct{}),
		ID:      id,
		IP:      ip,
		limiter: limiter,
		log:     log.With().Str("conn", id).Logger(),
	}
}

// Send queues msg for the write loop. Messages are dropped when the buffer
// is full so a slow client cannot stall the tick loop; a skipped match state
// is made good by the next tick's.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		c.log.Error().Err(err).Uint8("type", msg.Type).Msg("encode")
		return
	}
	select {
	case c.sendCh <- data:
	case <-c.done:
	default:
		if Superseded(msg.Type) {
			c.log.Debug().Uint64("tick", msg.Tick).Msg("client behind, skipping match state")
			return
		}
		c.log.Warn().Uint8("type", msg.Type).Uint64("tick", msg.Tick).Msg("send buffer full, dropping event")
	}
}

func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, 64)
	go func() {
		defer close(ch)
		for {
			_, data, err := c.ws.Read(ctx)
			if err != nil {
				if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
					c.log.Debug().Err(err).Msg("read")
				}
				c.Close()
				return
			}
			if c.limiter != nil && !c.limiter.MessageAllowed(c.IP) {
				continue // over budget: drop, keep the connection
			}
			msg, err := Decode(data)
			if err != nil {
				c.log.Debug().Err(err).Msg("decode")
				continue
			}
			if !FromClient(msg.Type) {
				c.log.Debug().Uint8("type", msg.Type).Msg("ignoring non-client message")
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.log.Debug().Err(err).Msg("write")
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Flush waits briefly for queued messages to be written, for use before a
// deliberate close.
func (c *Conn) Flush(timeout time.Duration) {
	deadline := time.After(timeout)
	for len(c.sendCh) > 0 {
		select {
		case <-deadline:
			return
		case <-c.done:
			return
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func (c *Conn) Close() {
	c.CloseWith(websocket.StatusNormalClosure, "")
}

func (c *Conn) CloseWith(code websocket.StatusCode, reason string) {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(code, reason)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
