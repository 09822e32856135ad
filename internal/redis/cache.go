package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// ListingCacheTTL is deliberately short; listings change rarely but price
// edits should show up quickly.
const ListingCacheTTL = 60 * time.Second

const listingCachePrefix = "cache:listing:"

// CachedListing represents a cached listing entity.
type CachedListing struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
}

// GetListing retrieves a listing from cache. A nil result is a cache miss.
func (s *CacheStore) GetListing(ctx context.Context, listingID string) (*CachedListing, error) {
	key := listingCachePrefix + listingID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var listing CachedListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// SetListing stores a listing in cache.
func (s *CacheStore) SetListing(ctx context.Context, listing *CachedListing) error {
	key := listingCachePrefix + listing.ID
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ListingCacheTTL).Err()
}

// InvalidateListing drops a listing from cache after an update or delete.
func (s *CacheStore) InvalidateListing(ctx context.Context, listingID string) error {
	return s.client.Del(ctx, listingCachePrefix+listingID).Err()
}
