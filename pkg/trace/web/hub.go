// Package web streams the instructions executed by the CPU to
// websocket clients. Events are encoded into fixed size records,
// batched, optionally brotli compressed and broadcast to every
// connected client.
package web

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	defaultBatchSize     = 256
	defaultQueueSize     = 4096
	defaultCacheSize     = 64
	defaultFlushInterval = 50 * time.Millisecond
	defaultInfoInterval  = time.Second

	// noCacheIndex is sent in place of a cache index when caching is
	// disabled.
	noCacheIndex = 0xFFFF
)

// Hub collects trace events from the CPU and broadcasts them to the
// connected clients. Run must be running for clients to connect.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan cpu.Event
	done       chan struct{}
	currentID  uint8

	compression      bool
	compressionLevel int
	batchSize        int
	queueSize        int
	flushInterval    time.Duration
	infoInterval     time.Duration
	cacheSize        int
	cache            *cache

	traced  atomic.Uint64
	dropped atomic.Uint64

	log log.Logger
}

var _ cpu.Tracer = (*Hub)(nil)

// Opt configures a Hub.
type Opt func(h *Hub)

// WithCompression brotli compresses every batch at the given level.
func WithCompression(level int) Opt {
	return func(h *Hub) {
		h.compression = true
		h.compressionLevel = min(max(level, brotli.BestSpeed), brotli.BestCompression)
	}
}

// WithBatchSize sets the number of events sent in a single message.
func WithBatchSize(n int) Opt {
	return func(h *Hub) {
		h.batchSize = max(n, 1)
	}
}

// WithFlushInterval sets how often a partial batch is sent.
func WithFlushInterval(d time.Duration) Opt {
	return func(h *Hub) {
		h.flushInterval = d
	}
}

// WithInfoInterval sets how often the hub statistics are broadcast.
func WithInfoInterval(d time.Duration) Opt {
	return func(h *Hub) {
		h.infoInterval = d
	}
}

// WithQueueSize sets the number of events that can be queued before
// Trace starts dropping them.
func WithQueueSize(n int) Opt {
	return func(h *Hub) {
		h.queueSize = max(n, 1)
	}
}

// WithCacheSize sets the number of batches remembered for repeats,
// 0 disables caching.
func WithCacheSize(n int) Opt {
	return func(h *Hub) {
		h.cacheSize = max(n, 0)
	}
}

// WithLogger sets the logger used by the hub.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.log = l
	}
}

// NewHub returns a new Hub.
func NewHub(opts ...Opt) *Hub {
	h := &Hub{
		clients:       make(map[*client]bool),
		register:      make(chan *client),
		unregister:    make(chan *client),
		done:          make(chan struct{}),
		batchSize:     defaultBatchSize,
		queueSize:     defaultQueueSize,
		cacheSize:     defaultCacheSize,
		flushInterval: defaultFlushInterval,
		infoInterval:  defaultInfoInterval,
		log:           log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.events = make(chan cpu.Event, h.queueSize)
	h.cache = newCache(h.cacheSize)

	return h
}

// Trace queues the event for broadcasting. It never blocks, events
// that do not fit in the queue are dropped and counted.
func (h *Hub) Trace(e cpu.Event) {
	select {
	case h.events <- e:
		h.traced.Add(1)
	default:
		h.dropped.Add(1)
	}
}

// Dropped returns the number of events dropped because the queue
// was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Run batches and broadcasts the queued events until the context is
// done, then disconnects every client. Run must only be called once.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	flush := time.NewTicker(h.flushInterval)
	defer flush.Stop()
	info := time.NewTicker(h.infoInterval)
	defer info.Stop()

	batch := make([]byte, 0, h.batchSize*RecordSize)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.removeClient(c)
			}
			return nil
		case c := <-h.register:
			h.currentID++
			c.id = h.currentID
			h.clients[c] = true

			// every client must see a full payload before its index
			h.cache = newCache(h.cacheSize)
			c.send <- h.clientInfo(c)
			h.log.Infof("trace client %d connected from %s (%s)", c.id, c.remoteAddr, c.userAgent)
		case c := <-h.unregister:
			if h.clients[c] {
				h.removeClient(c)
				h.log.Infof("trace client %d disconnected after %s", c.id, time.Since(c.connectedAt).Round(time.Millisecond))
			}
		case e := <-h.events:
			batch = AppendRecord(batch, e)
			if len(batch) >= h.batchSize*RecordSize {
				h.flush(batch)
				batch = batch[:0]
			}
		case <-flush.C:
			if len(batch) > 0 {
				h.flush(batch)
				batch = batch[:0]
			}
		case <-info.C:
			if len(h.clients) > 0 {
				h.broadcast(h.serverInfo())
			}
		}
	}
}

// ListenAndServe serves the hub on addr until the context is done.
// Run must be called separately.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.log.Infof("serving trace on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ServeHTTP upgrades the request to a websocket connection and
// registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := newClient(h, conn, r)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// flush encodes the batch and broadcasts it.
func (h *Hub) flush(batch []byte) {
	if len(h.clients) == 0 {
		return
	}

	message, err := h.encode(batch)
	if err != nil {
		h.log.Errorf("encoding trace batch: %v", err)
		return
	}
	h.broadcast(message)
}

func (h *Hub) encode(batch []byte) ([]byte, error) {
	idx := uint16(noCacheIndex)
	if h.cache.enabled() {
		if i := h.cache.index(batch); i != -1 {
			return binary.LittleEndian.AppendUint16([]byte{BatchCache}, uint16(i)), nil
		}
		idx = uint16(h.cache.add(batch))
	}

	messageType, payload := Batch, batch
	if h.compression {
		var err error
		if payload, err = compress(batch, h.compressionLevel); err != nil {
			return nil, err
		}
		messageType = BatchCompressed
	}

	message := make([]byte, 0, 3+len(payload))
	message = append(message, messageType)
	message = binary.LittleEndian.AppendUint16(message, idx)
	return append(message, payload...), nil
}

// broadcast sends the message to every client, disconnecting those
// that cannot keep up.
func (h *Hub) broadcast(message []byte) {
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			h.log.Warnf("trace client %d is too slow, disconnecting", c.id)
			h.removeClient(c)
		}
	}
}

func (h *Hub) removeClient(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) unregisterClient(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// clientInfo builds the message sent to a client after it connects.
//
//	0   ClientInfo
//	1   client ID
//	2   info bits (InfoCompression, InfoCaching)
//	3   compression level
//	4-5 batch size
//	6-7 cache size
func (h *Hub) clientInfo(c *client) []byte {
	var info uint8
	if h.compression {
		info |= InfoCompression
	}
	if h.cache.enabled() {
		info |= InfoCaching
	}

	message := []byte{ClientInfo, c.id, info, uint8(h.compressionLevel)}
	message = binary.LittleEndian.AppendUint16(message, uint16(h.batchSize))
	return binary.LittleEndian.AppendUint16(message, uint16(h.cacheSize))
}

// serverInfo builds the periodic statistics message.
//
//	0     ServerInfo
//	1     connected clients
//	2-9   events traced
//	10-17 events dropped
func (h *Hub) serverInfo() []byte {
	message := []byte{ServerInfo, uint8(len(h.clients))}
	message = binary.LittleEndian.AppendUint64(message, h.traced.Load())
	return binary.LittleEndian.AppendUint64(message, h.dropped.Load())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 4,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
