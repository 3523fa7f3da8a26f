package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	appcart "github.com/satyaprakrati/cozico/internal/application/cart"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SSEMessage is one server-sent event
type SSEMessage struct {
	Event string
	Data  string
	ID    string
}

// CartStreamHandler pushes the shopper's cart over server-sent events
// after every change, so open tabs stay in sync.
type CartStreamHandler struct {
	BaseHandler
	carts      *appcart.CartService
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int64
	clients    atomic.Int64
}

// CartStreamOption configures a CartStreamHandler
type CartStreamOption func(*CartStreamHandler)

// WithStreamLogger sets the logger
func WithStreamLogger(logger *zap.Logger) CartStreamOption {
	return func(h *CartStreamHandler) {
		h.logger = logger
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) CartStreamOption {
	return func(h *CartStreamHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithStreamMaxClients caps concurrent streams; zero means no cap
func WithStreamMaxClients(n int) CartStreamOption {
	return func(h *CartStreamHandler) {
		h.maxClients = int64(n)
	}
}

// NewCartStreamHandler creates a new CartStreamHandler
func NewCartStreamHandler(carts *appcart.CartService, opts ...CartStreamOption) *CartStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &CartStreamHandler{
		carts:      carts,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 10000,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Stop ends every open stream. http.Server.Shutdown waits for open
// requests, so call Stop before it.
func (h *CartStreamHandler) Stop() {
	h.cancel()
	h.logger.Info("cart stream handler stopped")
}

// ClientCount returns the number of open streams
func (h *CartStreamHandler) ClientCount() int {
	return int(h.clients.Load())
}

// Stream GET /api/v1/cart/stream
//
// Events: "cart" with the cart payload (sent on connect and after each
// change) and "heartbeat".
func (h *CartStreamHandler) Stream(c *gin.Context) {
	if n := h.clients.Add(1); h.maxClients > 0 && n > h.maxClients {
		h.clients.Add(-1)
		h.Fail(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Maximum number of cart streams reached")
		return
	}
	defer h.clients.Add(-1)

	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	reqCtx := c.Request.Context()
	updates, stop, err := h.carts.Watch(reqCtx, sid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer stop()

	current, err := h.carts.Get(reqCtx, sid)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	log := h.logger.With(zap.String("session_id", sid.String()))

	// The server write timeout would cut the stream; liveness is covered by
	// heartbeats instead.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("cannot clear write deadline", zap.Error(err))
	}
	log.Debug("cart stream opened")

	var seq uint64
	send := func(msg SSEMessage) {
		seq++
		msg.ID = strconv.FormatUint(seq, 10)
		writeEvent(c.Writer, msg)
		c.Writer.Flush()
	}
	sendCart := func(resp *appcart.CartResponse) {
		data, err := json.Marshal(resp)
		if err != nil {
			log.Error("failed to marshal cart event", zap.Error(err))
			return
		}
		send(SSEMessage{Event: "cart", Data: string(data)})
	}

	sendCart(current)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			log.Debug("cart stream closed by client")
			return
		case <-h.ctx.Done():
			log.Debug("cart stream closed by server")
			return
		case <-ticker.C:
			send(SSEMessage{Event: "heartbeat", Data: fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix())})
		case resp := <-updates:
			sendCart(resp)
		}
	}
}

func writeEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
