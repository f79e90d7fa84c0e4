package streaming

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

// FeedsCache is the slice of the Redis client the stream invalidates
// when prices move. Nil disables invalidation.
type FeedsCache interface {
	InvalidateFeeds(ctx context.Context) error
}

// PriceStream watches the price feed collection and pushes a full
// snapshot of all feeds to the hub whenever anything changes. The change
// stream is only a wake-up signal: every wake triggers a complete reload,
// so the last snapshot delivered always reflects the whole collection.
type PriceStream struct {
	feeds repositories.PriceFeedRepository
	hub   *Hub
	cache FeedsCache

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// ReconnectWait spaces out watch attempts after a stream failure.
	ReconnectWait time.Duration
}

func NewPriceStream(feeds repositories.PriceFeedRepository, hub *Hub, feedsCache FeedsCache) *PriceStream {
	return &PriceStream{
		feeds:         feeds,
		hub:           hub,
		cache:         feedsCache,
		ReconnectWait: 5 * time.Second,
	}
}

// Start launches the watch loop. An initial snapshot is pushed before the
// first change arrives so new subscribers never wait for a price move.
func (s *PriceStream) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the watch loop and waits for it to exit.
func (s *PriceStream) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *PriceStream) run(ctx context.Context) {
	defer s.wg.Done()

	s.publishSnapshot(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		stream, err := s.feeds.Watch(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Price feed watch failed, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.ReconnectWait):
				continue
			}
		}

		for stream.Next(ctx) {
			// The event payload is ignored on purpose. Partial updates
			// would need ordering guarantees the snapshot reload gives
			// for free.
			s.publishSnapshot(ctx)
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logrus.WithError(err).Warn("Price feed stream interrupted")
		}
		stream.Close(ctx)
	}
}

type feedSnapshot struct {
	Feeds []models.PriceFeed `json:"feeds"`
	At    time.Time          `json:"at"`
}

func (s *PriceStream) publishSnapshot(ctx context.Context) {
	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load feeds for snapshot")
		return
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFeeds(ctx); err != nil {
			logrus.WithError(err).Debug("Feeds cache invalidation failed")
		}
	}

	payload, err := json.Marshal(feedSnapshot{
		Feeds: feeds,
		At:    time.Now().UTC(),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal feed snapshot")
		return
	}

	s.hub.Broadcast(payload)
	logrus.WithField("feeds", len(feeds)).Debug("Feed snapshot broadcast")
}
