package inventory

import (
	"slices"
	"time"
)

// DefaultTTL vigencia de una colección en caché.
const DefaultTTL = 5 * time.Minute

// CacheMetadata metadatos de una colección cacheada.
type CacheMetadata struct {
	LastFetched *time.Time
	IsStale     bool
	IsFetching  bool
	WarehouseID string // bodega para la que se trajo la colección
}

// IsStale true si nunca se trajo la colección o si pasó más de ttl desde lastFetched.
func IsStale(lastFetched *time.Time, now time.Time, ttl time.Duration) bool {
	if lastFetched == nil {
		return true
	}
	return now.Sub(*lastFetched) > ttl
}

type collection[T any] struct {
	items []T
	meta  CacheMetadata
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: []T{}, meta: CacheMetadata{IsStale: true}}
}

// servible: vigente, no vacía y de la misma bodega.
func (c *collection[T]) servable(warehouseID string, now time.Time, ttl time.Duration) bool {
	return !c.meta.IsStale &&
		!IsStale(c.meta.LastFetched, now, ttl) &&
		len(c.items) > 0 &&
		c.meta.WarehouseID == warehouseID
}

func (c *collection[T]) replace(items []T, warehouseID string, now time.Time) {
	if items == nil {
		items = []T{}
	}
	c.items = items
	fetched := now
	c.meta.LastFetched = &fetched
	c.meta.IsStale = false
	c.meta.WarehouseID = warehouseID
}

func (c *collection[T]) invalidate() {
	c.meta.IsStale = true
	c.meta.LastFetched = nil
}

// view copia de items y metadatos; IsStale refleja también el vencimiento del TTL.
func (c *collection[T]) view(now time.Time, ttl time.Duration) ([]T, CacheMetadata) {
	meta := c.meta
	if meta.LastFetched != nil {
		t := *meta.LastFetched
		meta.LastFetched = &t
	}
	meta.IsStale = meta.IsStale || IsStale(meta.LastFetched, now, ttl)
	return slices.Clone(c.items), meta
}
