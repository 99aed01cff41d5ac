// Package toolsrv implements the assistant's domain tools: weather,
// currency conversion, loyalty member lookup, flight and movie search
// and booking, plus session context retrieval. Each tool wraps the mock
// services API and returns a plain-text result for the model.
package toolsrv

import (
	"context"
	"reflect"

	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	"github.com/omniagent-io/omniagent/pkg/schema"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/store"
	"github.com/omniagent-io/omniagent/tools"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "toolsrv")

// Session context keys written by member_lookup.
const (
	SessionKeyMemberID   = "member_id"
	SessionKeyMemberName = "member_name"
	SessionKeyMemberTier = "member_tier"
)

// Toolset holds the shared dependencies of the domain tools:
// the services client and the per-conversation context store.
type Toolset struct {
	client    *services.Client
	store     store.ContextStore
	sessionID string
	validate  *validator.Validate
}

// New returns a toolset bound to a conversation session.
func New(client *services.Client, ctxStore store.ContextStore, sessionID string) *Toolset {
	return &Toolset{
		client:    client,
		store:     ctxStore,
		sessionID: sessionID,
		validate:  validator.New(),
	}
}

// Tools returns all domain tools in catalog order.
func (ts *Toolset) Tools() []tools.ITool {
	return []tools.ITool{
		&weatherTool{ts: ts},
		&currencyTool{ts: ts},
		&memberTool{ts: ts},
		&flightSearchTool{ts: ts},
		&bookFlightTool{ts: ts},
		&movieSearchTool{ts: ts},
		&bookMovieTool{ts: ts},
		&sessionContextTool{ts: ts},
	}
}

func (ts *Toolset) setSessionValue(ctx context.Context, key, value string) {
	if err := ts.store.Set(ctx, ts.sessionID, key, value); err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "session_store",
			"key", key,
			"err", err.Error())
	}
}

func parameters(t any) any {
	sc, _ := schema.New(reflect.TypeOf(t))
	return sc.Parameters
}
