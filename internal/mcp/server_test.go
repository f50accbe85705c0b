package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/countdown/internal/clock"
	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
	"github.com/rpggio/countdown/internal/memstore"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	clock   *clock.Manual
	events  *event.Service
	session *sdkmcp.ClientSession
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	c := clock.NewManual(testNow)
	svc := event.NewService(memstore.NewEventRepository(), nil)
	server := NewServer(Config{
		Events:        svc,
		Engine:        countdown.NewEngine(c, nil),
		Mode:          countdown.ModeNumeric,
		TransportMode: "stdio",
	})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Close()
	})

	return &testEnv{clock: c, events: svc, session: session}
}

func (e *testEnv) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := e.session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

func decodeResult[T any](t *testing.T, res *sdkmcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, "tool error: %s", resultText(res))

	var out T
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func resultText(res *sdkmcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestTools_AddListUpdateRemove(t *testing.T) {
	env := newTestEnv(t)

	added := decodeResult[EventResponse](t, env.call(t, "add_event", map[string]any{
		"title":       "Launch",
		"target_time": testNow.Add(3661 * time.Second).Format(time.RFC3339),
		"color":       "blue",
	}))
	require.NotEmpty(t, added.ID)
	require.Equal(t, "01:01:01", added.Countdown.Label)
	require.Equal(t, countdown.StatusActive, added.Countdown.Status)

	decodeResult[EventResponse](t, env.call(t, "add_event", map[string]any{
		"id":          "early",
		"title":       "Early",
		"target_time": testNow.Add(time.Minute).Format(time.RFC3339),
	}))

	list := decodeResult[ListEventsResponse](t, env.call(t, "list_events", map[string]any{}))
	require.Len(t, list.Events, 2)
	require.Equal(t, "early", list.Events[0].ID)
	require.Equal(t, "black", list.Events[0].Color)
	require.Equal(t, added.ID, list.Events[1].ID)

	updated := decodeResult[EventResponse](t, env.call(t, "update_event", map[string]any{
		"id":          added.ID,
		"title":       "Launch (slipped)",
		"target_time": testNow.Add(48 * time.Hour).Format(time.RFC3339),
		"color":       "red",
	}))
	require.Equal(t, added.ID, updated.ID)
	require.Equal(t, "Launch (slipped)", updated.Title)

	removed := decodeResult[RemoveEventResponse](t, env.call(t, "remove_event", map[string]any{"id": "early"}))
	require.True(t, removed.Removed)

	list = decodeResult[ListEventsResponse](t, env.call(t, "list_events", map[string]any{"mode": "relative"}))
	require.Len(t, list.Events, 1)
	require.Equal(t, "in 2 days", list.Events[0].Countdown.Label)
}

func TestTools_GetCountdownTracksClock(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.events.Add(context.Background(), event.Event{ID: "e1", Title: "Soon", TargetTime: testNow.Add(2 * time.Second)})
	require.NoError(t, err)

	cd := decodeResult[CountdownResponse](t, env.call(t, "get_countdown", map[string]any{"id": "e1"}))
	require.Equal(t, int64(2), cd.RemainingSeconds)

	env.clock.Advance(2 * time.Second)
	cd = decodeResult[CountdownResponse](t, env.call(t, "get_countdown", map[string]any{"id": "e1"}))
	require.Equal(t, countdown.StatusExpired, cd.Status)
	require.Equal(t, countdown.ExpiredLabel, cd.Label)

	cd = decodeResult[CountdownResponse](t, env.call(t, "get_countdown", map[string]any{
		"target_time": env.clock.Now().Add(90 * time.Minute).Format(time.RFC3339),
		"mode":        "relative",
	}))
	require.Equal(t, "in 1 hour", cd.Label)
}

func TestTools_ErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.events.Add(context.Background(), event.Event{ID: "taken", TargetTime: testNow})
	require.NoError(t, err)

	cases := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{"remove unknown", "remove_event", map[string]any{"id": "missing"}, "NOT_FOUND"},
		{"update unknown", "update_event", map[string]any{"id": "missing", "title": "x", "target_time": testNow.Format(time.RFC3339)}, "NOT_FOUND"},
		{"get unknown", "get_event", map[string]any{"id": "missing"}, "NOT_FOUND"},
		{"duplicate add", "add_event", map[string]any{"id": "taken", "title": "x", "target_time": testNow.Format(time.RFC3339)}, "DUPLICATE_ID"},
		{"bad timestamp", "add_event", map[string]any{"title": "x", "target_time": "tomorrow"}, "INVALID_ARGUMENT"},
		{"bad mode", "list_events", map[string]any{"mode": "roman"}, "INVALID_ARGUMENT"},
		{"no target", "get_countdown", map[string]any{}, "INVALID_ARGUMENT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := env.call(t, tc.tool, tc.args)
			require.True(t, res.IsError)
			require.Contains(t, resultText(res), tc.code)
		})
	}
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "NOT_FOUND", MapError(event.ErrEventNotFound).Code)
	require.Equal(t, "INVALID_ARGUMENT", MapError(countdown.ErrInvalidArgument).Code)
	require.Nil(t, MapError(context.Canceled))
}

func TestAuthMiddleware(t *testing.T) {
	var called bool
	next := func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		called = true
		return nil, nil
	}
	handler := authMiddleware("secret")(next)

	request := func(auth string) sdkmcp.Request {
		header := http.Header{}
		if auth != "" {
			header.Set("Authorization", auth)
		}
		return &sdkmcp.CallToolRequest{Extra: &sdkmcp.RequestExtra{Header: header}}
	}

	_, err := handler(context.Background(), "tools/call", request(""))
	require.ErrorContains(t, err, "missing bearer token")

	_, err = handler(context.Background(), "tools/call", request("Bearer wrong"))
	require.ErrorContains(t, err, "invalid bearer token")
	require.False(t, called)

	_, err = handler(context.Background(), "tools/call", request("Bearer secret"))
	require.NoError(t, err)
	require.True(t, called)
}
