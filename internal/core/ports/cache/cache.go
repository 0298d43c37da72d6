// Package cache defines the key/value cache the services share.
package cache

// Cache is a process-wide key/value store whose entries expire after the
// duration the implementation was built with. It has no capacity bound.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}
