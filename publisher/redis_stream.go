// Package publisher forwards season change notifications to Redis streams.
package publisher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/warp/matchday/season"
)

const queueSize = 64

// RedisStream publishes every season.Change to a Redis stream. Notify only
// queues the change; a background goroutine performs the XADD so the
// command loop never waits on the network.
type RedisStream struct {
	client *redis.Client
	stream string
	logger zerolog.Logger

	queue chan event
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

type event struct {
	change season.Change
	at     time.Time
}

var _ season.Notifier = (*RedisStream)(nil)

// NewRedisStream connects to redisURL and verifies the connection.
func NewRedisStream(redisURL, stream string, logger zerolog.Logger) (*RedisStream, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisStreamFromClient(client, stream, logger), nil
}

// NewRedisStreamFromClient wraps an existing client.
func NewRedisStreamFromClient(client *redis.Client, stream string, logger zerolog.Logger) *RedisStream {
	return &RedisStream{
		client: client,
		stream: stream,
		logger: logger.With().Str("component", "redis_stream").Str("stream", stream).Logger(),
		queue:  make(chan event, queueSize),
		done:   make(chan struct{}),
	}
}

// Notify queues change for publishing. When the queue is full the change
// is dropped; subscribers re-read full state on the next one anyway.
func (rs *RedisStream) Notify(change season.Change) {
	select {
	case rs.queue <- event{change: change, at: time.Now()}:
	default:
		rs.logger.Warn().Str("change", change.String()).Msg("publish queue full, dropping change")
	}
}

// Start launches the publishing goroutine.
func (rs *RedisStream) Start() {
	rs.wg.Add(1)
	go rs.run()
}

func (rs *RedisStream) run() {
	defer rs.wg.Done()
	for {
		select {
		case ev := <-rs.queue:
			rs.publish(ev)
		case <-rs.done:
			return
		}
	}
}

func (rs *RedisStream) publish(ev event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := rs.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rs.stream,
		Values: streamValues(ev.change, ev.at),
	}).Err()
	if err != nil {
		rs.logger.Error().Err(err).Str("change", ev.change.String()).Msg("failed to publish change")
	}
}

// Close stops publishing and closes the Redis connection.
func (rs *RedisStream) Close() error {
	rs.once.Do(func() { close(rs.done) })
	rs.wg.Wait()
	return rs.client.Close()
}

// streamValues is the field set of one stream entry.
func streamValues(change season.Change, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"changed":   strings.Join(change.Names(), ","),
		"mask":      int(change),
		"timestamp": at.Unix(),
	}
}
