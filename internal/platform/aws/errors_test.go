package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "test"}
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(apiError("BucketAlreadyOwnedByYou")))
	assert.True(t, IsAlreadyExists(apiError("EntityAlreadyExists")))
	assert.True(t, IsAlreadyExists(apiError("RepositoryAlreadyExistsException")))
	assert.True(t, IsAlreadyExists(fmt.Errorf("wrapped: %w", apiError("ResourceExistsException"))))

	assert.False(t, IsAlreadyExists(apiError("AccessDenied")))
	assert.False(t, IsAlreadyExists(errors.New("plain error")))
	assert.False(t, IsAlreadyExists(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(apiError("NoSuchEntity")))
	assert.True(t, IsNotFound(apiError("ResourceNotFoundException")))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", apiError("NoSuchBucket"))))

	assert.False(t, IsNotFound(apiError("Throttling")))
	assert.False(t, IsNotFound(nil))
}
