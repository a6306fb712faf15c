package web

// Type is the first byte of every message sent by the hub.
type Type = uint8

const (
	// Batch carries a cache index (uint16) followed by encoded records.
	Batch Type = iota
	// BatchCompressed is a Batch whose records are brotli compressed.
	BatchCompressed
	// BatchCache repeats the batch stored at the given cache index.
	BatchCache
	// ClientInfo is sent once to every client after it connects.
	ClientInfo
	// ServerInfo is broadcast periodically with the hub statistics.
	ServerInfo
	// Closing is sent by a client that is about to disconnect.
	Closing Type = 255
)

// Info bits of the ClientInfo message.
const (
	InfoCompression uint8 = 1 << iota
	InfoCaching
)
