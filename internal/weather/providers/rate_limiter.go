package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// sharedSearchTimeout bounds a coalesced lookup that no longer follows its
// first caller's context.
const sharedSearchTimeout = 15 * time.Second

// RateLimitedGeocoder wraps a weather.Geocoder with a token bucket and
// coalesces identical in-flight searches, since suggestions are requested
// on every keystroke.
type RateLimitedGeocoder struct {
	geocoder weather.Geocoder
	limiter  *rate.Limiter
	group    singleflight.Group
	name     string
}

// NewRateLimitedGeocoder allows rps searches per second with bursts of burst.
func NewRateLimitedGeocoder(g weather.Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: g,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", g.Name()),
	}
}

func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

// Search waits for the limiter, then forwards to the wrapped geocoder. The
// shared lookup is detached from any single caller, so one caller giving up
// does not fail the others; each caller still stops waiting on its own ctx.
func (r *RateLimitedGeocoder) Search(ctx context.Context, query string, limit int) ([]weather.RawLocation, error) {
	key := strconv.Itoa(limit) + "|" + query
	ch := r.group.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedSearchTimeout)
		defer cancel()

		if err := r.limiter.Wait(sharedCtx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
		return r.geocoder.Search(sharedCtx, query, limit)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]weather.RawLocation)
		out := make([]weather.RawLocation, len(shared))
		copy(out, shared)
		return out, nil
	}
}

var _ weather.Geocoder = (*RateLimitedGeocoder)(nil)
