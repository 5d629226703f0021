package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"servicelink/models"
	"servicelink/utils"
)

// switchGeo answers from whatever Coord and Err currently hold.
type switchGeo struct {
	Coord models.Coordinates
	Err   error
}

func (g *switchGeo) Locate(context.Context, string) (models.Coordinates, error) {
	if g.Err != nil {
		return models.Coordinates{}, g.Err
	}
	return g.Coord, nil
}

func TestService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bangalore := models.Coordinates{Latitude: 12.9716, Longitude: 77.5946}

	t.Run("failed detection keeps the previous coordinate", func(t *testing.T) {
		t.Parallel()
		geo := &switchGeo{Coord: bangalore}
		svc := NewService(geo, nil)

		if _, err := svc.GetCurrentLocation(ctx, "s1", ""); err != nil {
			t.Fatalf("GetCurrentLocation failed: %v", err)
		}
		geo.Err = errors.New("permission denied")
		if _, err := svc.GetCurrentLocation(ctx, "s1", ""); err == nil {
			t.Fatal("expected detection error")
		}

		coord, lastErr := svc.Current("s1")
		if coord == nil || *coord != bangalore {
			t.Fatalf("expected previous coordinate kept, got %v", coord)
		}
		if lastErr != "permission denied" {
			t.Fatalf("expected recorded error, got %q", lastErr)
		}
	})

	t.Run("manual override clears the error", func(t *testing.T) {
		t.Parallel()
		svc := NewService(FixedGeolocator{Err: errors.New("timeout")}, nil)
		_, _ = svc.GetCurrentLocation(ctx, "s1", "")
		if coord, lastErr := svc.Current("s1"); coord != nil || lastErr != "timeout" {
			t.Fatalf("expected no coordinate and an error, got %v %q", coord, lastErr)
		}

		if err := svc.SetLocation("s1", bangalore); err != nil {
			t.Fatalf("SetLocation failed: %v", err)
		}
		coord, lastErr := svc.Current("s1")
		if coord == nil || lastErr != "" {
			t.Fatalf("expected coordinate without error, got %v %q", coord, lastErr)
		}
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		t.Parallel()
		svc := NewService(FixedGeolocator{}, nil)
		if err := svc.SetLocation("s1", models.Coordinates{Latitude: 91}); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("sessions are independent", func(t *testing.T) {
		t.Parallel()
		svc := NewService(FixedGeolocator{Coord: bangalore}, nil)
		_, _ = svc.GetCurrentLocation(ctx, "s1", "")
		if coord, _ := svc.Current("s2"); coord != nil {
			t.Fatalf("expected no coordinate for s2, got %v", coord)
		}
		svc.Forget("s1")
		if coord, _ := svc.Current("s1"); coord != nil {
			t.Fatal("expected state dropped after Forget")
		}
	})
}

func TestIPGeolocator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("private address", func(t *testing.T) {
		t.Parallel()
		g := NewIPGeolocator("http://unused/%s", nil)
		_, err := g.Locate(ctx, "192.168.1.10")
		var pe *utils.PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("looks up and caches", func(t *testing.T) {
		t.Parallel()
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			if !strings.Contains(r.URL.Path, "8.8.8.8") {
				t.Errorf("expected ip in path, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ip":"8.8.8.8","city":"Bangalore","latitude":12.97,"longitude":77.59}`))
		}))
		defer srv.Close()

		g := NewIPGeolocator(srv.URL+"/%s/json/", nil)
		for i := 0; i < 2; i++ {
			coord, err := g.Locate(ctx, "8.8.8.8")
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}
			if coord.Latitude != 12.97 || coord.Longitude != 77.59 {
				t.Fatalf("unexpected coordinate %+v", coord)
			}
		}
		if n := atomic.LoadInt32(&hits); n != 1 {
			t.Fatalf("expected 1 upstream call, got %d", n)
		}
	})

	t.Run("upstream refusal", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":true,"reason":"Reserved IP Address"}`))
		}))
		defer srv.Close()

		g := NewIPGeolocator(srv.URL+"/%s/json/", nil)
		_, err := g.Locate(ctx, "8.8.4.4")
		var pe *utils.PermissionError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := NewIPGeolocator(srv.URL+"/%s/json/", nil)
		if _, err := g.Locate(ctx, "1.1.1.1"); err == nil {
			t.Fatal("expected error for 429")
		}
	})
}
