package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"servicelink/models"
	"servicelink/utils"

	"go.uber.org/zap"
)

// Geolocator resolves the caller's position. hint is transport specific (the client IP
// for IPGeolocator).
type Geolocator interface {
	Locate(ctx context.Context, hint string) (models.Coordinates, error)
}

// ipapiResponse is the subset of the ipapi.co payload we read.
type ipapiResponse struct {
	IP        string  `json:"ip"`
	City      string  `json:"city"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

// IPGeolocator looks coordinates up from the client IP and caches results per IP.
type IPGeolocator struct {
	// URLFormat takes the IP as its only verb, e.g. "https://ipapi.co/%s/json/".
	URLFormat string
	Client    *http.Client
	Logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string]models.Coordinates
}

func NewIPGeolocator(urlFormat string, logger *zap.Logger) *IPGeolocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IPGeolocator{
		URLFormat: urlFormat,
		Client:    &http.Client{Timeout: 5 * time.Second},
		Logger:    logger,
		cache:     make(map[string]models.Coordinates),
	}
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

func (g *IPGeolocator) Locate(ctx context.Context, hint string) (models.Coordinates, error) {
	ip := net.ParseIP(hint)
	if ip == nil || isPrivateIP(ip) {
		return models.Coordinates{}, &utils.PermissionError{Msg: "location unavailable for this network address"}
	}

	g.mu.RLock()
	if c, ok := g.cache[hint]; ok {
		g.mu.RUnlock()
		return c, nil
	}
	g.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(g.URLFormat, hint), nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to build geolocation request: %w", err)
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		g.Logger.Error("Failed to query external geolocation API", zap.String("ip", hint), zap.Error(err))
		return models.Coordinates{}, fmt.Errorf("geolocation lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.Logger.Error("External geolocation API returned non-OK status", zap.String("ip", hint), zap.Int("status", resp.StatusCode))
		return models.Coordinates{}, fmt.Errorf("geolocation lookup returned status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if body.Error {
		return models.Coordinates{}, &utils.PermissionError{Msg: "location unavailable: " + body.Reason}
	}
	coord := models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude}
	if err := coord.Validate(); err != nil {
		return models.Coordinates{}, err
	}

	g.mu.Lock()
	g.cache[hint] = coord
	g.mu.Unlock()

	g.Logger.Debug("Geolocation retrieved from external API", zap.String("ip", hint), zap.String("city", body.City))
	return coord, nil
}

// FixedGeolocator always answers with the same coordinate or error.
type FixedGeolocator struct {
	Coord models.Coordinates
	Err   error
}

func (f FixedGeolocator) Locate(context.Context, string) (models.Coordinates, error) {
	if f.Err != nil {
		return models.Coordinates{}, f.Err
	}
	return f.Coord, nil
}
