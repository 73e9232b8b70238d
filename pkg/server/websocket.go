package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/liveroute/pkg/protocol"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// HandleWebSocket upgrades the connection and serves the session's live
// channel until the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	var header http.Header
	sess := s.session(r)
	if sess == nil {
		sess = s.sessions.Create("")
		header = http.Header{}
		header.Add("Set-Cookie", s.cookie(sess).String())
	}

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxMessageSize)

	logger := s.logger.With("session_id", sess.ID)
	logger.Debug("live channel opened")

	// Patches queued between the page render and the upgrade.
	if err := s.flush(conn, sess, nil); err != nil {
		logger.Debug("write failed", "error", err)
		return
	}

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("live channel closed", "error", err)
			}
			return
		}
		if mt != websocket.BinaryMessage {
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			logger.Warn("bad frame", "error", err)
			continue
		}
		if frame.Type != protocol.FrameEvent {
			continue
		}
		event, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			logger.Warn("bad event", "error", err)
			continue
		}

		tree, err := s.handleEvent(r.Context(), sess, event)
		if err != nil {
			logger.Error("event failed", "seq", event.Seq, "type", event.Type.String(), "error", err)
			continue
		}
		if err := s.flush(conn, sess, tree); err != nil {
			logger.Debug("write failed", "error", err)
			return
		}
	}
}

// handleEvent applies a client event to the session. Navigation returns
// the new tree; scroll events return nil.
func (s *Server) handleEvent(ctx context.Context, sess *Session, e *protocol.Event) (*vdom.VNode, error) {
	switch e.Type {
	case protocol.EventScroll:
		sess.Surface.ApplyEvent(e)
		return nil, nil

	case protocol.EventNavigate:
		data, ok := e.Payload.(*protocol.NavigateEventData)
		if !ok || data == nil || data.Path == "" {
			return nil, fmt.Errorf("navigate event without path")
		}
		if data.Replace {
			sess.Host.History().Replace(data.Path, nil)
			return sess.Host.Render(ctx)
		}
		return sess.Host.Navigate(ctx, data.Path)
	}
	return nil, fmt.Errorf("unhandled event type %s", e.Type)
}

func (s *Server) flush(conn *websocket.Conn, sess *Session, tree *vdom.VNode) error {
	frame, ok := sess.Flush(tree)
	if !ok {
		return nil
	}
	data, err := frame.Encode()
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
