package server

import (
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/findy-network/findy-backchannel/agent/harness"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

type handle string

func (h handle) IssuerDID() string { return string(h) }
func (h handle) Close() error      { return nil }

func TestMain(m *testing.M) {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("v", "5"))
	flag.Parse()
	os.Exit(m.Run())
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string, string) {
	t.Helper()
	resp := try.To1(http.Get(srv.URL + path))
	defer resp.Body.Close()
	body := try.To1(io.ReadAll(resp.Body))
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestCommands_Ready(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	h := harness.New(0)
	try.To(h.Attach(context.Background(), handle("Th7MpTaRZVRYnPiabds81Y")))
	srv := httptest.NewServer(NewMux(h))
	defer srv.Close()

	code, ct, body := get(t, srv, "/command/status")
	assert.Equal(code, http.StatusOK)
	assert.Equal(ct, "application/json")
	assert.Equal(body, `{"status":"ready"}`)

	code, _, body = get(t, srv, "/command/did")
	assert.Equal(code, http.StatusOK)
	assert.Equal(body, `{"did":"Th7MpTaRZVRYnPiabds81Y"}`)

	code, _, body = get(t, srv, "/command/version")
	assert.Equal(code, http.StatusOK)
	assert.Equal(body, "1.0.0")
}

func TestCommands_VersionWithoutAgent(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	h := harness.New(time.Millisecond)
	srv := httptest.NewServer(NewMux(h))
	defer srv.Close()

	code, _, body := get(t, srv, "/command/version")
	assert.Equal(code, http.StatusOK)
	assert.Equal(body, "1.0.0")

	code, _, _ = get(t, srv, "/command/did")
	assert.Equal(code, http.StatusInternalServerError)
}

func TestCommands_Busy(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	h := harness.New(10 * time.Millisecond)
	try.To(h.Attach(context.Background(), handle("Th7MpTaRZVRYnPiabds81Y")))
	srv := httptest.NewServer(NewMux(h))
	defer srv.Close()

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = h.With(context.Background(), func(*harness.State) error {
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding
	defer close(done)

	code, _, _ := get(t, srv, "/command/status")
	assert.Equal(code, http.StatusInternalServerError)
	code, _, _ = get(t, srv, "/command/did")
	assert.Equal(code, http.StatusInternalServerError)

	// version doesn't need the agent
	code, _, body := get(t, srv, "/command/version")
	assert.Equal(code, http.StatusOK)
	assert.Equal(body, "1.0.0")
}

func TestCommands_MethodAndPath(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	srv := httptest.NewServer(NewMux(harness.New(0)))
	defer srv.Close()

	resp := try.To1(http.Post(srv.URL+"/command/status", "application/json", nil))
	resp.Body.Close()
	assert.Equal(resp.StatusCode, http.StatusMethodNotAllowed)

	code, _, _ := get(t, srv, "/command/unknown")
	assert.Equal(code, http.StatusNotFound)
	code, _, _ = get(t, srv, "/status")
	assert.Equal(code, http.StatusNotFound)
}

func TestNewHTTPServer(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	s := NewHTTPServer(harness.New(0), 9020)
	assert.Equal(s.Addr, ":9020")
	assert.INotNil(s.Handler)
}
