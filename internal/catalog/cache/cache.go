// Package cache wraps a catalog source with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nexshop/storefront/internal/catalog"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long cached catalog entries stay fresh.
const DefaultTTL = 5 * time.Minute

const (
	keyAllProducts = "catalog:products"
	keyProduct     = "catalog:product:"
)

// Source caches FetchAll and FetchOne results in Redis. Cache errors are
// logged and the call degrades to the underlying source; the cache can
// never fail a catalog read on its own. Searches are not cached because
// they always resolve against a fresh full set.
type Source struct {
	next catalog.Source
	rdb  *redis.Client
	ttl  time.Duration
}

// New wraps next with a Redis cache. A zero ttl falls back to DefaultTTL.
func New(next catalog.Source, rdb *redis.Client, ttl time.Duration) *Source {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Source{next: next, rdb: rdb, ttl: ttl}
}

// FetchAll returns the cached product set when present, otherwise loads
// from the underlying source and primes the cache.
func (s *Source) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	if cached, ok := s.get(ctx, keyAllProducts); ok {
		var products []catalog.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.next.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.put(ctx, keyAllProducts, products)
	return products, nil
}

// FetchOne returns a cached product when present, otherwise loads it from
// the underlying source.
func (s *Source) FetchOne(ctx context.Context, id string) (catalog.Product, error) {
	key := keyProduct + id
	if cached, ok := s.get(ctx, key); ok {
		var product catalog.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return product, nil
		}
	}

	product, err := s.next.FetchOne(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	s.put(ctx, key, product)
	return product, nil
}

// SearchByKeyword passes through to the underlying source.
func (s *Source) SearchByKeyword(ctx context.Context, query string) ([]catalog.Product, error) {
	return s.next.SearchByKeyword(ctx, query)
}

func (s *Source) get(ctx context.Context, key string) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("catalog cache read %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

func (s *Source) put(ctx context.Context, key string, value any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("catalog cache encode %s: %v", key, err)
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("catalog cache write %s: %v", key, err)
	}
}

// Ping verifies the Redis connection. Callers may treat a failure as a
// reason to run without the cache.
func (s *Source) Ping(ctx context.Context) error {
	if s.rdb == nil {
		return fmt.Errorf("redis client is not configured")
	}
	return s.rdb.Ping(ctx).Err()
}
