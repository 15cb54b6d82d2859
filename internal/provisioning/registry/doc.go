// Package registry provisions one image repository per service: the
// ingestor, the indexer, the query API, and the web client. Repositories
// scan on push and encrypt layers with the storage key.
package registry
