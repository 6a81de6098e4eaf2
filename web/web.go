package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
	"github.com/nelhage/isolation/rpc"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type evaluation struct {
	Over    bool   `json:"over"`
	Winner  string `json:"winner,omitempty"`
	ToMove  string `json:"to_move"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// analysis and searchUpdate are the JSON forms of the rpc messages.
// Scores are strings ("+inf", "-inf", or a number) because JSON has
// no infinities.
type analysis struct {
	Move      string `json:"move"`
	Score     string `json:"score"`
	Depth     int32  `json:"depth"`
	Visited   uint64 `json:"visited"`
	Evaluated uint64 `json:"evaluated"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type searchUpdate struct {
	Move  string `json:"move"`
	Score string `json:"score"`
	Depth int32  `json:"depth"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// NewRouter serves the analyzer over HTTP. Every endpoint takes the
// position and search parameters as query arguments:
//
//	GET /api/evaluate?position=...
//	GET /api/analyze?position=...&depth=6&limit_ms=1000&reference=true
//	GET /ws/search?position=...&depth=6
//
// /ws/search upgrades to a websocket and sends one "update" message
// per completed search depth, then "done".
func NewRouter(a *rpc.Server) http.Handler {
	evaluate := ai.DefaultEvaluate
	if a.Weights != nil {
		evaluate = ai.MakeEvaluator(a.Weights)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/evaluate", func(w http.ResponseWriter, r *http.Request) {
		p, err := notation.ParsePosition(r.URL.Query().Get("position"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorPayload{err.Error()})
			return
		}
		over, winner := p.GameOver()
		ev := evaluation{Over: over, ToMove: p.ToMove().String()}
		if over {
			ev.Winner = winner.String()
			ev.Player1 = ai.FormatScore(p.Utility(isolation.Player1))
			ev.Player2 = ai.FormatScore(p.Utility(isolation.Player2))
		} else {
			ev.Player1 = ai.FormatScore(evaluate(p, isolation.Player1))
			ev.Player2 = ai.FormatScore(evaluate(p, isolation.Player2))
		}
		writeJSON(w, http.StatusOK, ev)
	})

	r.Get("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorPayload{err.Error()})
			return
		}
		resp, err := a.Analyze(r.Context(), req)
		if err != nil {
			writeJSON(w, httpStatus(err), errorPayload{errorMessage(err)})
			return
		}
		writeJSON(w, http.StatusOK, analysis{
			Move:      resp.Move,
			Score:     ai.FormatScore(resp.Score),
			Depth:     resp.Depth,
			Visited:   resp.Visited,
			Evaluated: resp.Evaluated,
			ElapsedMs: resp.ElapsedMs,
		})
	})

	r.Get("/ws/search", func(w http.ResponseWriter, r *http.Request) {
		serveSearch(a, w, r)
	})
	return r
}

func serveSearch(a *rpc.Server, w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{err.Error()})
		return
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// The client never speaks; a read error means it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = a.Stream(ctx, req, func(u *rpc.SearchUpdate) error {
		return writeMessage(conn, "update", searchUpdate{
			Move:  u.Move,
			Score: ai.FormatScore(u.Score),
			Depth: u.Depth,
		})
	})
	if err != nil {
		log.Debug().Err(err).Str("position", req.Position).Msg("search stream")
		err = writeMessage(conn, "error", errorPayload{errorMessage(err)})
	} else {
		err = writeMessage(conn, "done", nil)
	}
	if err != nil {
		log.Debug().Err(err).Msg("websocket write")
	}
}

func parseRequest(r *http.Request) (*rpc.AnalyzeRequest, error) {
	q := r.URL.Query()
	req := &rpc.AnalyzeRequest{Position: q.Get("position")}
	if req.Position == "" {
		return nil, errors.New("missing position")
	}
	var err error
	if s := q.Get("depth"); s != "" {
		d, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, errors.New("bad depth")
		}
		req.Depth = int32(d)
	}
	if s := q.Get("limit_ms"); s != "" {
		if req.LimitMs, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, errors.New("bad limit_ms")
		}
	}
	if s := q.Get("reference"); s != "" {
		if req.Reference, err = strconv.ParseBool(s); err != nil {
			return nil, errors.New("bad reference")
		}
	}
	return req, nil
}

func httpStatus(err error) int {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}

// writeMessage sends one typed message. A nil payload is omitted.
func writeMessage(conn *websocket.Conn, typ string, payload interface{}) error {
	msg := wsMessage{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		msg.Payload = data
	}
	return conn.WriteJSON(msg)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
