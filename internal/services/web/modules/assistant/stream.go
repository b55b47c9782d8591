package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/tabletop/internal/platform/timeouts"
	webi18n "github.com/louisbranch/tabletop/internal/services/web/i18n"
	"github.com/louisbranch/tabletop/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

const (
	frameTypeMessage  = "transcript.message"
	frameTypeRendered = "transcript.rendered"
	frameTypeError    = "error"

	maxFramePayloadBytes   = 64 * 1024
	maxFrameBytes          = maxFramePayloadBytes + 4*1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3
	renderTimeout          = 30 * time.Second
)

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type wsRendered struct {
	MessageID string `json:"message_id"`
	HTML      string `json:"html"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

type wsError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageID string `json:"message_id,omitempty"`
}

type wsPeer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSPeer(conn *websocket.Conn) *wsPeer {
	return &wsPeer{conn: conn}
}

// writeFrame sends one frame; a client that stops reading fails the write
// after timeouts.StreamWrite instead of blocking render goroutines.
func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(timeouts.StreamWrite)); err != nil {
		return err
	}
	return websocket.JSON.Send(p.conn, frame)
}

func writeWSError(peer *wsPeer, requestID, messageID, code, message string) error {
	return peer.writeFrame(wsFrame{
		Type:      frameTypeError,
		RequestID: requestID,
		Payload:   mustJSON(wsErrorEnvelope{Error: wsError{Code: code, Message: message, MessageID: messageID}}),
	})
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return data
}

// messageTracker is the per-connection render bookkeeping. Unchanged content
// is never re-rendered, and only the newest render for a message is
// delivered.
type messageTracker struct {
	mu         sync.Mutex
	content    map[string]string
	generation map[string]uint64
}

func newMessageTracker() *messageTracker {
	return &messageTracker{content: make(map[string]string), generation: make(map[string]uint64)}
}

// begin records content for messageID. It returns the generation to render
// under, or false when content matches the last seen content.
func (t *messageTracker) begin(messageID, content string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.content[messageID]; ok && prev == content {
		return 0, false
	}
	t.content[messageID] = content
	t.generation[messageID]++
	return t.generation[messageID], true
}

// deliver runs write only while gen is the newest render for messageID, so a
// superseded result can never land after its replacement. failed also clears
// the recorded content so a retry with the same content renders again.
func (t *messageTracker) deliver(messageID string, gen uint64, failed bool, write func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generation[messageID] != gen {
		return false
	}
	if failed {
		delete(t.content, messageID)
	}
	write()
	return true
}

func (h handlers) handleStream(conn *websocket.Conn) {
	defer conn.Close()
	var renders sync.WaitGroup
	defer renders.Wait()

	req := conn.Request()
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	loc, _ := webi18n.ResolveLocalizer(nil, req)

	peer := newWSPeer(conn)
	tracker := newMessageTracker()

	// Oversized frames are refused by the transport before they are buffered.
	conn.MaxPayloadBytes = maxFrameBytes
	decodeErrors := 0
	windowStart := time.Now()
	framesInWindow := 0

	for {
		var frame wsFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			if errors.Is(err, websocket.ErrFrameTooLarge) {
				_ = writeWSError(peer, "", "", "INVALID_ARGUMENT", "payload too large")
				continue
			}
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
				return
			}
			decodeErrors++
			_ = writeWSError(peer, "", "", "INVALID_ARGUMENT", "invalid json frame")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = writeWSError(peer, frame.RequestID, "", "INVALID_ARGUMENT", "payload too large")
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeWSError(peer, frame.RequestID, "", "RESOURCE_EXHAUSTED", "rate limit exceeded")
			return
		}

		switch frame.Type {
		case frameTypeMessage:
			h.handleMessageFrame(ctx, peer, tracker, &renders, loc, frame)
		default:
			_ = writeWSError(peer, frame.RequestID, "", "INVALID_ARGUMENT", "unknown frame type")
		}
	}
}

func (h handlers) handleMessageFrame(ctx context.Context, peer *wsPeer, tracker *messageTracker, renders *sync.WaitGroup, loc webtemplates.Localizer, frame wsFrame) {
	var in messageInput
	if err := json.Unmarshal(frame.Payload, &in); err != nil {
		_ = writeWSError(peer, frame.RequestID, "", "INVALID_ARGUMENT", "invalid message payload")
		return
	}
	in, err := in.normalized()
	if err == nil && in.MessageID == "" {
		_ = writeWSError(peer, frame.RequestID, "", "INVALID_ARGUMENT", "message_id is required")
		return
	}
	if err != nil {
		_ = writeWSError(peer, frame.RequestID, in.MessageID, "INVALID_ARGUMENT", err.Error())
		return
	}
	if h.renderer == nil {
		_ = writeWSError(peer, frame.RequestID, in.MessageID, "UNAVAILABLE", webtemplates.T(loc, "error.unavailable"))
		return
	}
	gen, changed := tracker.begin(in.MessageID, in.Content)
	if !changed {
		return
	}

	renders.Add(1)
	go func() {
		defer renders.Done()
		renderCtx, cancel := context.WithTimeout(ctx, renderTimeout)
		defer cancel()

		fragment, err := renderMessage(renderCtx, h.renderer, in, loc)
		delivered := tracker.deliver(in.MessageID, gen, err != nil, func() {
			if err != nil {
				_ = writeWSError(peer, frame.RequestID, in.MessageID, "INTERNAL", weberror.PublicMessage(loc, err))
				return
			}
			_ = peer.writeFrame(wsFrame{
				Type:      frameTypeRendered,
				RequestID: frame.RequestID,
				Payload:   mustJSON(wsRendered{MessageID: in.MessageID, HTML: fragment}),
			})
		})
		if err != nil && delivered {
			h.Logger().WarnContext(ctx, "render transcript message", "message_id", in.MessageID, "error", err)
		}
	}()
}
