package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often an idle stream gets a ping
const KeepaliveInterval = 30 * time.Second

// Event types sent over the stream
const (
	// EventTypeRedemption carries one of the caller's own redemption outcomes
	EventTypeRedemption = "redemption"

	// EventTypeMemberJoined is sent to everyone when a new profile is created
	EventTypeMemberJoined = "member.joined"

	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Stream response headers
const (
	ContentTypeEventStream = "text/event-stream"
	CacheControlNoCache    = "no-cache"
	ConnectionKeepAlive    = "keep-alive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, dropping event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered"
	LogMsgBadPayload         = "Unexpected event payload for SSE"
	ErrMsgStreamUnsupported  = "Streaming not supported"
	ErrMsgSignInRequired     = "Sign in to follow your redemptions"
)
