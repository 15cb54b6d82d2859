// Package storage provisions the three artifact buckets: raw uploads,
// processed text, and index snapshots. Every bucket gets versioning, KMS
// encryption with the storage key, and a full public access block. The raw
// bucket additionally grants the document analysis service read access so
// asynchronous jobs can fetch uploads directly.
package storage
