// Package kms provisions the three customer-managed encryption keys: the
// storage key (buckets and image repositories), the secrets key, and the
// logs key. Key policies grant account administration to the account root
// and scope service access to this account's resources only.
package kms
