package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// alreadyExistsCodes are the per-service "resource exists" error codes the
// provisioners tolerate: re-applying a config converges instead of failing.
var alreadyExistsCodes = map[string]bool{
	"AlreadyExistsException":           true,
	"BucketAlreadyOwnedByYou":          true,
	"BucketAlreadyExists":              true,
	"RepositoryAlreadyExistsException": true,
	"ResourceInUseException":           true,
	"EntityAlreadyExists":              true,
	"ResourceExistsException":          true,
	"InvalidPermission.Duplicate":      true,
	"RouteAlreadyExists":               true,
	"DuplicateRecordException":         true,
}

var notFoundCodes = map[string]bool{
	"NotFound":                    true,
	"NoSuchBucket":                true,
	"NoSuchEntity":                true,
	"ResourceNotFoundException":   true,
	"ResourceNotFoundFault":       true,
	"RepositoryNotFoundException": true,
	"NotFoundException":           true,
	"InvalidVpcID.NotFound":       true,
	"InvalidGroup.NotFound":       true,
}

// IsAlreadyExists reports whether err means the resource already exists.
func IsAlreadyExists(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return alreadyExistsCodes[apiErr.ErrorCode()]
	}
	return false
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return notFoundCodes[apiErr.ErrorCode()]
	}
	return false
}
