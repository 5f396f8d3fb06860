package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// wsFetchTimeout bounds one fetch on a websocket. The request context cannot
// be used directly since the server's timeout middleware would end it while
// the socket is still open.
const wsFetchTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type   string            `json:"type"` // "fetch"
	Panel  string            `json:"panel"`
	Params map[string]string `json:"params,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type    string `json:"type"` // "fragment" or "error"
	Panel   string `json:"panel"`
	Content string `json:"content"`
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.logger.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			d.sendError(conn, "", "invalid message format")
			continue
		}

		switch req.Type {
		case "fetch":
			d.handleFetchMessage(conn, r, req)
		default:
			d.sendError(conn, req.Panel, "unknown message type: "+req.Type)
		}
	}
}

func (d *Dashboard) handleFetchMessage(conn *websocket.Conn, r *http.Request, req wsRequest) {
	if req.Panel == "" {
		d.sendError(conn, "", "panel is required")
		return
	}

	p, ok := d.registry.Get(req.Panel)
	if !ok {
		d.sendError(conn, req.Panel, "unknown panel: "+req.Panel)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), wsFetchTimeout)
	defer cancel()

	res, err := d.fetch(ctx, p.ID, paramsFromMap(p, req.Params), history.SourceWebSocket)
	if err != nil {
		if errors.Is(err, panels.ErrUnknownPanel) {
			d.sendError(conn, req.Panel, "unknown panel: "+req.Panel)
			return
		}
		d.sendError(conn, req.Panel, "fetch failed")
		return
	}

	if !res.OK {
		d.sendError(conn, req.Panel, res.Message)
		return
	}
	d.send(conn, wsResponse{Type: "fragment", Panel: req.Panel, Content: string(res.HTML)})
}

func (d *Dashboard) send(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		d.logger.Warn().Err(err).Msg("websocket write")
	}
}

func (d *Dashboard) sendError(conn *websocket.Conn, panel, message string) {
	d.send(conn, wsResponse{Type: "error", Panel: panel, Content: message})
}
