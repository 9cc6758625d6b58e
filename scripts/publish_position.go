//go:build ignore

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/places-finder/internal/domain"
	redisRepo "github.com/places-finder/internal/repository/redis"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Публикует тестовые позиции устройства в поток.
// Пример: go run scripts/publish_position.go -lat 41.3874 -lng 2.1686 -count 5
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", domain.StreamPositionUpdates, "Position stream")
	lat := flag.Float64("lat", 41.3874, "Latitude")
	lng := flag.Float64("lng", 2.1686, "Longitude")
	step := flag.Float64("step", 0.001, "Latitude shift between positions")
	count := flag.Int("count", 1, "Number of positions")
	interval := flag.Duration("interval", time.Second, "Delay between positions")
	failure := flag.String("fail", "", "Publish a failure instead: permission_denied | unavailable")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	streams := redisRepo.NewStreamRepository(client, zap.NewNop())

	if *failure != "" {
		if err := streams.PublishToStream(ctx, *stream, domain.PositionEvent{Error: *failure}); err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
		log.Printf("Published failure %q to %s", *failure, *stream)
		return
	}

	for i := 0; i < *count; i++ {
		la := *lat + float64(i)*(*step)
		lo := *lng
		event := domain.PositionEvent{Latitude: &la, Longitude: &lo}

		if err := streams.PublishToStream(ctx, *stream, event); err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
		log.Printf("Published position %.6f,%.6f to %s", la, lo, *stream)

		if i < *count-1 {
			time.Sleep(*interval)
		}
	}
}
