package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/pathmatch"
	"github.com/vango-dev/liveroute/pkg/protocol"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

func testRoutes() []liveroute.Route {
	return []liveroute.Route{
		{Name: "list", Path: "/a", LivePath: []string{"/b"}, Render: func(liveroute.Props) *vdom.VNode {
			return vdom.H1("LIST")
		}},
		{Name: "detail", Path: "/b", Render: func(liveroute.Props) *vdom.VNode {
			return vdom.H1("DETAIL")
		}},
	}
}

func newTestServer(t *testing.T) (*Server, *httptest.Server, *http.Client) {
	t.Helper()
	srv := New(&ServerConfig{
		Title:   "test",
		Routes:  testRoutes,
		Matcher: pathmatch.New(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return srv, ts, &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestHandlePage(t *testing.T) {
	srv, ts, client := newTestServer(t)

	status, body := get(t, client, ts.URL+"/a")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}
	for _, want := range []string{"<title>test</title>", `<h1 data-hid="lr-0">LIST</h1>`, "<script>"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
	if srv.Sessions().Len() != 1 {
		t.Fatalf("sessions = %d, want 1", srv.Sessions().Len())
	}

	// Same cookie: the session moves on and keeps the list view hidden.
	_, body = get(t, client, ts.URL+"/b")
	if !strings.Contains(body, `<h1 style="display: none" data-hid="lr-0">LIST</h1>`) {
		t.Errorf("list should be hidden:\n%s", body)
	}
	if !strings.Contains(body, `<h1 data-hid="lr-1">DETAIL</h1>`) {
		t.Errorf("detail missing:\n%s", body)
	}
	if srv.Sessions().Len() != 1 {
		t.Errorf("sessions = %d, want 1", srv.Sessions().Len())
	}

	// A fresh client gets a fresh session where nothing was mounted.
	_, body = get(t, http.DefaultClient, ts.URL+"/b")
	if strings.Contains(body, "LIST") {
		t.Errorf("new session rendered a view it never mounted:\n%s", body)
	}
	if srv.Sessions().Len() != 2 {
		t.Errorf("sessions = %d, want 2", srv.Sessions().Len())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts, client := newTestServer(t)

	get(t, client, ts.URL+"/a")
	get(t, client, ts.URL+"/b")

	_, body := get(t, client, ts.URL+"/metrics")
	for _, want := range []string{
		`liveroute_transitions_total{from="MATCHED",route="list",to="HIDDEN"} 1`,
		`liveroute_hidden_views{route="list"} 1`,
		`liveroute_http_requests_total{method="GET",route="/*",status="200"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q:\n%s", want, body)
		}
	}
}

func sendEvent(t *testing.T, conn *websocket.Conn, e *protocol.Event) {
	t.Helper()
	data, err := protocol.NewFrame(protocol.FrameEvent, protocol.EncodeEvent(e)).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatal(err)
	}
}

func readPatches(t *testing.T, conn *websocket.Conn) (*protocol.Frame, []protocol.Patch) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	frame, err := protocol.DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Type != protocol.FramePatches {
		t.Fatalf("frame type = %v, want Patches", frame.Type)
	}
	pf, err := protocol.DecodePatches(frame.Payload)
	if err != nil {
		t.Fatal(err)
	}
	return frame, pf.Patches
}

func samePatches(t *testing.T, got, want []protocol.Patch) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("patches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("patches[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// dialLive opens the live channel with the session cookie of client.
func dialLive(t *testing.T, srv *Server, ts *httptest.Server, client *http.Client) *websocket.Conn {
	t.Helper()
	var cookie string
	for _, c := range client.Jar.Cookies(mustURL(t, ts.URL)) {
		if c.Name == srv.Config().CookieName {
			cookie = c.Name + "=" + c.Value
		}
	}
	if cookie == "" {
		t.Fatal("no session cookie")
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Cookie": {cookie}})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveChannel(t *testing.T) {
	srv, ts, client := newTestServer(t)
	get(t, client, ts.URL+"/a")
	conn := dialLive(t, srv, ts, client)

	sendEvent(t, conn, &protocol.Event{Seq: 1, Type: protocol.EventScroll, Payload: &protocol.ScrollEventData{ScrollTop: 250}})
	sendEvent(t, conn, &protocol.Event{Seq: 2, Type: protocol.EventNavigate, Payload: &protocol.NavigateEventData{Path: "/b"}})

	frame, patches := readPatches(t, conn)
	if frame.Flags&protocol.FlagReload == 0 {
		t.Error("detail mounted without FlagReload")
	}
	samePatches(t, patches, []protocol.Patch{
		protocol.NewSetStylePatch("lr-0", "display", "none"),
	})

	sendEvent(t, conn, &protocol.Event{Seq: 3, Type: protocol.EventNavigate, Payload: &protocol.NavigateEventData{Path: "/a", Replace: true}})

	_, patches = readPatches(t, conn)
	samePatches(t, patches, []protocol.Patch{
		protocol.NewRemoveStylePatch("lr-0", "display"),
		protocol.NewScrollToPatch("", 0, 250),
	})
}

func TestLiveChannelScrollAfterReload(t *testing.T) {
	srv, ts, client := newTestServer(t)
	get(t, client, ts.URL+"/a")
	conn := dialLive(t, srv, ts, client)

	sendEvent(t, conn, &protocol.Event{Seq: 1, Type: protocol.EventScroll, Payload: &protocol.ScrollEventData{ScrollTop: 500}})
	sendEvent(t, conn, &protocol.Event{Seq: 2, Type: protocol.EventNavigate, Payload: &protocol.NavigateEventData{Path: "/b"}})
	readPatches(t, conn)
	sendEvent(t, conn, &protocol.Event{Seq: 3, Type: protocol.EventNavigate, Payload: &protocol.NavigateEventData{Path: "/a"}})

	frame, patches := readPatches(t, conn)
	if frame.Flags&protocol.FlagReload == 0 {
		t.Fatal("detail unmounted without FlagReload")
	}
	samePatches(t, patches, []protocol.Patch{
		protocol.NewRemoveStylePatch("lr-0", "display"),
		protocol.NewScrollToPatch("", 0, 500),
	})

	// The client reloads: page render, then a new live channel.
	conn.Close()
	if code, body := get(t, client, ts.URL+"/a"); code != http.StatusOK || strings.Contains(body, "display: none") {
		t.Fatalf("reloaded page = %d %s", code, body)
	}
	conn = dialLive(t, srv, ts, client)

	frame, patches = readPatches(t, conn)
	if frame.Flags&protocol.FlagReload != 0 {
		t.Error("replayed scroll frame asks for another reload")
	}
	samePatches(t, patches, []protocol.Patch{
		protocol.NewScrollToPatch("", 0, 500),
	})
}

func TestLiveChannelWithoutSession(t *testing.T) {
	srv, ts, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if len(resp.Cookies()) == 0 {
		t.Error("handshake did not set a session cookie")
	}
	if srv.Sessions().Len() != 1 {
		t.Errorf("sessions = %d, want 1", srv.Sessions().Len())
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "example.com", true},
		{"http://example.com", "example.com", true},
		{"http://evil.com", "example.com", false},
		{"://bad", "example.com", false},
		{"http://example.com", "", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/_live", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := SameOriginCheck(r); got != tt.want {
			t.Errorf("SameOriginCheck(origin=%q, host=%q) = %v, want %v", tt.origin, tt.host, got, tt.want)
		}
	}
}

func TestDefaultServerConfig(t *testing.T) {
	c := (&ServerConfig{Address: ":9000"}).withDefaults()
	if c.Address != ":9000" {
		t.Errorf("Address = %q, want :9000", c.Address)
	}
	if c.CookieName != "liveroute_session" || c.InitialPath != "/" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Registry == nil || c.Matcher == nil || c.Routes == nil {
		t.Error("Registry, Matcher and Routes must be set")
	}
}
