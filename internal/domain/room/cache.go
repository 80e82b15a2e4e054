package room

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const statusCacheTTL = 5 * time.Minute

// StatusSnapshot is the cached derived status of a single room.
type StatusSnapshot struct {
	Status    DerivedStatus `json:"status"`
	Color     string        `json:"color"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StatusCache stores derived room statuses in Redis. A nil client
// makes every operation a no-op so the service degrades to computing
// statuses inline.
type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

func statusKey(roomID uuid.UUID) string {
	return fmt.Sprintf("room:status:%s", roomID)
}

func (c *StatusCache) Get(ctx context.Context, roomID uuid.UUID) (*StatusSnapshot, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, statusKey(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap StatusSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *StatusCache) Set(ctx context.Context, roomID uuid.UUID, snap StatusSnapshot) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKey(roomID), raw, statusCacheTTL).Err()
}

func (c *StatusCache) Delete(ctx context.Context, roomID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, statusKey(roomID)).Err()
}

// Poller periodically recomputes every room's derived status and
// refreshes the cache. Clients re-fetch on an interval instead of
// receiving pushes, so the cache only has to stay fresher than the
// client poll period.
type Poller struct {
	service  *Service
	interval time.Duration
}

func NewPoller(service *Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{service: service, interval: interval}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.service.RefreshStatuses(ctx); err != nil {
		log.Warn().Err(err).Msg("room status refresh failed")
	}
}
