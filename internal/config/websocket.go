package config

import (
	"net/http"
	"os"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS holds a comma
// separated list of hosts.
func NewWebSocket() (*WebSocket, error) {
	var allowed map[string]bool
	if origins := splitList(os.Getenv("WS_ALLOWED_ORIGINS")); len(origins) > 0 {
		allowed = make(map[string]bool, len(origins))
		for _, origin := range origins {
			allowed[origin] = true
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if allowed == nil {
				return true
			}
			return allowed[r.Header.Get("Origin")]
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
