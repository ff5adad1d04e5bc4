package models

import "time"

// MetricsSnapshot summarises process counters for the admin dashboard.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	StoreQueryCount          uint64    `json:"storeQueryCount"`
	AverageStoreQueryMs      float64   `json:"averageStoreQueryMs"`
	SeededRecords            uint64    `json:"seededRecords"`
	UploadsTotal             uint64    `json:"uploadsTotal"`
	UploadFailures           uint64    `json:"uploadFailures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
