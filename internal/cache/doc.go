// Package cache provides a generic LRU cache with explicit invalidation.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Capacity is a hard limit: inserting into a full cache evicts the least
// recently used entry and reports it to the OnEvict callback, if any.
// Delete and Purge also report removed entries, so owners can release
// whatever the values hold.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
