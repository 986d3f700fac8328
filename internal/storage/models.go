package storage

// CacheStats summarizes the extraction cache.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"` // Total cache hits across all entries
}
