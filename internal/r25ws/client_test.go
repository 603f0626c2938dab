package r25ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/roomtimes/internal/schedule"
)

const reservationsXML = `<?xml version="1.0" encoding="UTF-8"?>
<r25:space_reservations xmlns:r25="http://www.collegenet.com/r25">
  <r25:space_reservation>
    <r25:event_name>ATM S 103 A</r25:event_name>
    <r25:reservation_start_dt>2018-04-18T12:30:00-07:00</r25:reservation_start_dt>
    <r25:reservation_end_dt>2018-04-18T13:20:00-07:00</r25:reservation_end_dt>
  </r25:space_reservation>
  <r25:space_reservation>
    <r25:event_name>MATH 124 A</r25:event_name>
    <r25:reservation_start_dt>2018-04-18T09:30:00-07:00</r25:reservation_start_dt>
    <r25:reservation_end_dt>2018-04-18T10:20:00-07:00</r25:reservation_end_dt>
  </r25:space_reservation>
</r25:space_reservations>`

func TestClient_Reservations(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches and maps the reservation list", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "wsuser" || pass != "wspass" {
				t.Errorf("expected basic auth credentials, got %q/%q (%v)", user, pass, ok)
			}
			gotQuery = map[string]string{
				"space_id": r.URL.Query().Get("space_id"),
				"start_dt": r.URL.Query().Get("start_dt"),
				"end_dt":   r.URL.Query().Get("end_dt"),
			}
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(reservationsXML))
		}))
		defer server.Close()

		client := NewClient(Config{
			BaseURL:  server.URL,
			Username: "wsuser",
			Password: "wspass",
		}, nil)

		events, err := client.Reservations(ctx, "6063", "+1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotQuery["space_id"] != "6063" {
			t.Fatalf("expected space_id 6063, got %q", gotQuery["space_id"])
		}
		if gotQuery["start_dt"] != "+1" || gotQuery["end_dt"] != "+1" {
			t.Fatalf("expected day delta on both date params, got %+v", gotQuery)
		}

		want := []schedule.Event{
			{Name: "MATH 124 A", StartTime: "09:30:00", EndTime: "10:20:00"},
			{Name: "ATM S 103 A", StartTime: "12:30:00", EndTime: "13:20:00"},
		}
		if len(events) != len(want) {
			t.Fatalf("expected %d events, got %d", len(want), len(events))
		}
		for i := range want {
			if events[i] != want[i] {
				t.Fatalf("event %d: expected %+v, got %+v", i, want[i], events[i])
			}
		}
		if !schedule.Ordered(events) {
			t.Fatal("expected events in start time order")
		}
	})

	t.Run("omits date params for today", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("start_dt") || r.URL.Query().Has("end_dt") {
				t.Errorf("expected no date params for today, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(reservationsXML))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL}, nil)
		if _, err := client.Reservations(ctx, "6063", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad status is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL}, nil)
		if _, err := client.Reservations(ctx, "6063", ""); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("unreachable upstream is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(Config{BaseURL: server.URL}, nil)
		if _, err := client.Reservations(ctx, "6063", ""); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("malformed body is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<not-xml"))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL}, nil)
		if _, err := client.Reservations(ctx, "6063", ""); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestClient_Cache(t *testing.T) {
	ctx := context.Background()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(reservationsXML))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:   server.URL,
		CacheSize: 8,
		CacheTTL:  time.Minute,
	}, nil)

	first, err := client.Reservations(ctx, "6063", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.Reservations(ctx, "6063", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected one upstream hit, got %d", hits.Load())
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical cached results, got %d and %d events", len(first), len(second))
	}

	// A different day offset is a different cache key.
	if _, err := client.Reservations(ctx, "6063", "+1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected a second upstream hit for the offset query, got %d", hits.Load())
	}
}
