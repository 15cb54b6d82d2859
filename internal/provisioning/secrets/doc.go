// Package secrets provisions the placeholder credential entries the
// workloads read at runtime. Values are created as "unset" and are expected
// to be overwritten out-of-band; existing entries are never touched.
package secrets
