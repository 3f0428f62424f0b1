package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/coach-core-poc/server/internal/agent/model"
	"github.com/coach-core-poc/server/internal/agent/profile"
)

//go:embed template/coach_prompt.txt
var coachSystemPrompt string

// RenderCoachSystem renders the coach system prompt for one turn. Unset
// profile fields are interpolated as "unknown" and an empty missing list as
// "none" so the model always sees every slot spelled out.
func RenderCoachSystem(ctx context.Context, config model.CoachPromptConfig, p model.Profile, missing []model.Field) (string, error) {
	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coachSystemPrompt),
	)
	vars := map[string]any{
		"CoachName":     config.CoachName,
		"Gender":        profile.ValueOrUnknown(p.Gender),
		"Age":           profile.ValueOrUnknown(p.Age),
		"FitnessLevel":  profile.ValueOrUnknown(p.FitnessLevel),
		"Goals":         profile.ValueOrUnknown(p.Goals),
		"MissingFields": profile.FormatMissing(missing),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("coach prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("coach prompt render: empty result")
	}
	return msgs[0].Content, nil
}
