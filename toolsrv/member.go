package toolsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/tools"
)

const MemberToolName = "member_lookup"

// MemberRequest is the input of the member_lookup tool.
type MemberRequest struct {
	Email string `json:"email" yaml:"email" validate:"required" jsonschema:"title=email,description=The member's email address (e.g. test@email.com)."`
}

type memberTool struct {
	ts *Toolset
}

var _ tools.Tool[MemberRequest, services.MemberResponse] = (*memberTool)(nil)

func (t *memberTool) Name() string {
	return MemberToolName
}

func (t *memberTool) Description() string {
	return "Look up a loyalty program member by their email address. " +
		"Retrieves the member's name, ID, tier (Gold/Silver/Platinum), and reward points. " +
		"The member_id from this result should be used in subsequent booking calls."
}

func (t *memberTool) Parameters() any {
	return parameters(MemberRequest{})
}

func (t *memberTool) Run(ctx context.Context, req *MemberRequest) (*services.MemberResponse, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	res, err := t.ts.client.LookupMember(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	// Found members are remembered for cross-tool context.
	if res.MemberID != "N/A" {
		t.ts.setSessionValue(ctx, SessionKeyMemberID, res.MemberID)
		t.ts.setSessionValue(ctx, SessionKeyMemberName, res.Name)
		t.ts.setSessionValue(ctx, SessionKeyMemberTier, res.Tier)
	}
	return res, nil
}

func (t *memberTool) Call(ctx context.Context, input string) (string, error) {
	var req MemberRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Member Profile:\n"+
		"  Name: %s\n"+
		"  Email: %s\n"+
		"  Member ID: %s\n"+
		"  Tier: %s\n"+
		"  Points: %d",
		res.Name, res.Email, res.MemberID, res.Tier, res.Points), nil
}
