package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/maze-server/internal/maze"
)

// commandNargs lists the accepted argument counts per command.
var commandNargs = map[string][]int{
	"g": {0},
	"d": {0},
	"b": {0},
	"r": {0, 2},
	"s": {0, 1},
}

func parseInts(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		values[i] = v
	}
	return values, nil
}

// execute runs one text command. A non-nil reply is sent back to the client
// only; frame changes reach it through its subscription.
func (h MazeHandler) execute(ctx context.Context, command string) (any, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, nil
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", parts[0])
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return nil, err
	}
	valid := false
	for _, n := range nargs {
		valid = valid || n == len(args)
	}
	if !valid {
		return nil, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return h.driver.Snapshot(), nil
	case "d", "b":
		mode, _ := maze.ParseMode(parts[0])
		if !h.driver.Search(mode) {
			return nil, ErrSearchRejected
		}
		return nil, nil
	case "r":
		rows, cols := h.driver.Dimensions()
		if len(args) == 2 {
			rows, cols = args[0], args[1]
		}
		if err := h.cfg.ValidateDimensions(rows, cols); err != nil {
			return nil, err
		}
		_, err := h.driver.Reset(rows, cols)
		return nil, err
	case "s":
		steps := 1
		if len(args) == 1 {
			steps = args[0]
		}
		if steps < 1 || steps > maxStepsPerRequest {
			return nil, ErrBadSteps
		}
		_, err := h.driver.Step(ctx, steps)
		return nil, err
	}
	return nil, fmt.Errorf("invalid command")
}

// Connect upgrades to a WebSocket that streams frames and accepts newline
// separated commands:
//
//	g          current frame
//	d, b       start a depth-first or breadth-first search
//	r [r c]    rebuild, optionally with new dimensions
//	s [n]      advance n ticks
func (h MazeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	frames, unsubscribe := h.driver.Subscribe()
	defer unsubscribe()

	replies := make(chan any)
	quit := make(chan struct{})
	done := make(chan struct{})
	defer close(quit)

	go func() {
		defer close(done)
		h.readCommands(r.Context(), c, replies, quit)
	}()

	if err := c.WriteJSON(h.driver.Snapshot()); err != nil {
		h.logger.Error("unable to write json", slog.Any("error", err))
		return
	}

	for {
		var msg any
		select {
		case <-done:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			msg = frame
		case msg = <-replies:
		}
		if err := c.WriteJSON(msg); err != nil {
			h.logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}

func (h MazeHandler) readCommands(
	ctx context.Context,
	c *websocket.Conn,
	replies chan<- any,
	quit <-chan struct{},
) {
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		text := strings.TrimSpace(string(message))
		h.logger.Debug(fmt.Sprintf("\t> %s", text))

		for _, command := range strings.Split(text, "\n") {
			reply, err := h.execute(ctx, command)
			if err != nil {
				reply = wrapError(err)
			}
			if reply == nil {
				continue
			}
			select {
			case replies <- reply:
			case <-quit:
				return
			}
		}
	}
}
