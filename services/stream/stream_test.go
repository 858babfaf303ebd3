package stream

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"

	"github.com/darasahq/ubao/core"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func newStreamServer(t *testing.T, lectureID string) (*core.Config, *sse.Server, func()) {
	t.Helper()

	events := sse.New()
	events.CreateStream(lectureID)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/lectures/"+lectureID+"/stream", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("stream", lectureID)
		r.URL.RawQuery = q.Encode()
		events.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(mux)

	conf := &core.Config{}
	conf.API.BaseURL = srv.URL
	return conf, events, func() {
		events.Close()
		srv.Close()
	}
}

func TestOpenDeliversEvents(t *testing.T) {
	conf, events, teardown := newStreamServer(t, "lec1")
	defer teardown()

	refreshed := make(chan struct{}, 16)
	sub := Open(conf, "lec1", "tok123", func() {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	}, nopLogger{})
	if sub == nil {
		t.Fatal("Open() = nil; want subscription")
	}
	defer sub.Close()

	// the subscriber connects asynchronously; publish until it hears us
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-refreshed:
			return
		case <-tick.C:
			events.Publish("lec1", &sse.Event{Data: []byte("refresh")})
		case <-deadline:
			t.Fatal("no refresh within 5s")
		}
	}
}

func TestOpenWithoutToken(t *testing.T) {
	conf := &core.Config{}
	conf.API.BaseURL = "http://localhost:0"

	sub := Open(conf, "lec1", "", func() {
		t.Error("onRefresh fired without a channel")
	}, nopLogger{})
	if sub != nil {
		t.Fatal("Open() without token; want nil")
	}
	sub.Close() // nil-safe
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	conf, _, teardown := newStreamServer(t, "lec1")
	defer teardown()

	sub := Open(conf, "lec1", "tok123", func() {}, nopLogger{})
	if sub == nil {
		t.Fatal("Open() = nil; want subscription")
	}
	sub.Close()
	sub.Close()
}
