package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

func TestDestroy_PassesForceFlag(t *testing.T) {
	injectApply(t, nil)

	var gotForce bool
	var ran []string
	origDestroy := newDestroyProvisioner
	newDestroyProvisioner = func(force bool) provisioning.Phase {
		gotForce = force
		return &fakePhase{name: "destroy", ran: &ran}
	}
	t.Cleanup(func() { newDestroyProvisioner = origDestroy })

	require.NoError(t, Destroy(context.Background(), "govrag.yaml", true))

	assert.True(t, gotForce)
	assert.Equal(t, []string{"destroy"}, ran)
}

func TestDestroy_DefaultRetainsData(t *testing.T) {
	injectApply(t, nil)

	var gotForce bool
	origDestroy := newDestroyProvisioner
	newDestroyProvisioner = func(force bool) provisioning.Phase {
		gotForce = force
		return &fakePhase{name: "destroy", ran: new([]string)}
	}
	t.Cleanup(func() { newDestroyProvisioner = origDestroy })

	require.NoError(t, Destroy(context.Background(), "govrag.yaml", false))
	assert.False(t, gotForce)
}
