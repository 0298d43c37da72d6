// Package cache provides the in-memory expiring cache used for currency data.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	portscache "github.com/SscSPs/currency_purchase_api/internal/core/ports/cache"
)

// ExpiringCache is an unbounded, time-expiring key/value cache.
type ExpiringCache struct {
	lru *expirable.LRU[string, any]
}

// NewExpiringCache returns a cache whose entries live for ttl.
func NewExpiringCache(ttl time.Duration) *ExpiringCache {
	// size 0 disables the capacity bound; entries leave only by expiry or Delete.
	return &ExpiringCache{lru: expirable.NewLRU[string, any](0, nil, ttl)}
}

var _ portscache.Cache = (*ExpiringCache)(nil)

func (c *ExpiringCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *ExpiringCache) Set(key string, value any) {
	c.lru.Add(key, value)
}

func (c *ExpiringCache) Delete(key string) {
	c.lru.Remove(key)
}

// Len returns the number of unexpired entries.
func (c *ExpiringCache) Len() int {
	return c.lru.Len()
}
