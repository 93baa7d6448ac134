package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

func TestNew(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	c, err := New("http://localhost:9000/", 0)
	assert.NoError(err)
	assert.Equal(c.BaseURL(), "http://localhost:9000")

	_, err = New("localhost:9000", 0)
	assert.Error(err)
	_, err = New("", 0)
	assert.Error(err)
}

func TestClient_Register(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	var got SeedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/register" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		try.To(json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"seed":"000000000000000000000000Assigned"}`))
	}))
	defer srv.Close()

	c := try.To1(New(srv.URL, 0))
	seed, err := c.Register(context.Background(), RoleTrustAnchor, "my_seed_000000000000000000123456")
	assert.NoError(err)
	assert.Equal(seed, "000000000000000000000000Assigned")
	assert.Equal(got.Role, RoleTrustAnchor)
	assert.Equal(got.Seed, "my_seed_000000000000000000123456")
}

func TestClient_RegisterErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "no can do", http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}},
		{"empty seed", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"seed":""}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := try.To1(New(srv.URL, 0))
			_, err := c.Register(context.Background(), RoleTrustAnchor, "seed")
			assert.Error(err)
		})
	}
}

func TestClient_Genesis(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	const txn = "{\"reqSignature\":{},\"txn\":{}}\n{\"reqSignature\":{}}\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/genesis" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(txn))
	}))
	defer srv.Close()

	c := try.To1(New(srv.URL, 0))
	data, err := c.Genesis(context.Background())
	assert.NoError(err)
	assert.Equal(string(data), txn)
}

func TestClient_GenesisNotFound(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := try.To1(New(srv.URL, 0))
	_, err := c.Genesis(context.Background())
	assert.Error(err)
}

func TestClient_Timeout(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	defer srv.Close()
	defer close(done)

	c := try.To1(New(srv.URL, 100*time.Millisecond))

	start := time.Now()
	_, err := c.Register(context.Background(), RoleTrustAnchor, "000000000000000000000000Anchor01")
	assert.Error(err)
	_, err = c.Genesis(context.Background())
	assert.Error(err)
	assert.That(time.Since(start) < 5*time.Second, time.Since(start))
}
