package provisioning

import (
	"context"

	"github.com/AayushV4/gov-doc-rag/internal/config"
	awsplatform "github.com/AayushV4/gov-doc-rag/internal/platform/aws"
)

// Context wraps all dependencies and state needed by a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	AWS      *awsplatform.Clients
	Observer Observer
}

// NewContext creates a provisioning context with an empty state and the
// default console observer.
func NewContext(ctx context.Context, cfg *config.Config, clients *awsplatform.Clients) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		AWS:      clients,
		Observer: NewConsoleObserver(),
	}
}
