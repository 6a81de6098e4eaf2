package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/rpc"
)

const testPosition = "...../..2../...../.1.../..... 2"

func get(t *testing.T, srv *httptest.Server, path string, q url.Values, out interface{}) int {
	resp, err := http.Get(srv.URL + path + "?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestEvaluate(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&rpc.Server{}))
	defer srv.Close()

	var ev evaluation
	code := get(t, srv, "/api/evaluate",
		url.Values{"position": {"....2/...../...../...../1.... 2"}}, &ev)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, evaluation{
		ToMove:  "player1",
		Player1: "-12",
		Player2: "-12",
	}, ev)

	code = get(t, srv, "/api/evaluate",
		url.Values{"position": {".../.1./2.. 2"}}, &ev)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, evaluation{
		Over:    true,
		Winner:  "player2",
		ToMove:  "player1",
		Player1: "-inf",
		Player2: "+inf",
	}, ev)

	var e errorPayload
	code = get(t, srv, "/api/evaluate", url.Values{"position": {"nope"}}, &e)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, e.Error)
}

func TestAnalyze(t *testing.T) {
	a := &rpc.Server{MaxDepth: 5}
	srv := httptest.NewServer(NewRouter(a))
	defer srv.Close()

	var got analysis
	code := get(t, srv, "/api/analyze",
		url.Values{"position": {testPosition}, "depth": {"3"}}, &got)
	require.Equal(t, http.StatusOK, code)

	want, err := a.Analyze(context.Background(), &rpc.AnalyzeRequest{Position: testPosition, Depth: 3})
	require.NoError(t, err)
	assert.Equal(t, want.Move, got.Move)
	assert.Equal(t, ai.FormatScore(want.Score), got.Score)
	assert.Equal(t, int32(3), got.Depth)

	cases := []struct {
		q    url.Values
		code int
	}{
		{url.Values{}, http.StatusBadRequest},
		{url.Values{"position": {testPosition}, "depth": {"x"}}, http.StatusBadRequest},
		{url.Values{"position": {testPosition}, "depth": {"9"}}, http.StatusBadRequest},
		{url.Values{"position": {".../.1./2.. 2"}}, http.StatusConflict},
	}
	for _, tc := range cases {
		var e errorPayload
		assert.Equal(t, tc.code, get(t, srv, "/api/analyze", tc.q, &e), "%v", tc.q)
		assert.NotEmpty(t, e.Error)
	}
}

func dial(t *testing.T, srv *httptest.Server, q url.Values) *websocket.Conn {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search?" + q.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSearchSocket(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&rpc.Server{}))
	defer srv.Close()

	conn := dial(t, srv, url.Values{"position": {testPosition}, "depth": {"3"}})
	var updates []searchUpdate
	for {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "done" {
			break
		}
		require.Equal(t, "update", msg.Type)
		var u searchUpdate
		require.NoError(t, json.Unmarshal(msg.Payload, &u))
		updates = append(updates, u)
	}
	require.Len(t, updates, 3)
	for i, u := range updates {
		assert.Equal(t, int32(i+1), u.Depth)
	}
}

func TestSearchSocketError(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&rpc.Server{}))
	defer srv.Close()

	conn := dial(t, srv, url.Values{"position": {".../.1./2.. 2"}})
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	var e errorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &e))
	assert.Equal(t, "game is over", e.Error)
}

func TestSearchSocketDecided(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&rpc.Server{}))
	defer srv.Close()

	conn := dial(t, srv, url.Values{"position": {"2../..x/.x1 2"}, "depth": {"2"}})
	var last searchUpdate
	for {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "done" {
			break
		}
		require.Equal(t, "update", msg.Type)
		require.NoError(t, json.Unmarshal(msg.Payload, &last))
	}
	assert.Equal(t, "+inf", last.Score)
}
