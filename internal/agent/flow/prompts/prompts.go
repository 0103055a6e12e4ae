// Package prompts renders the system instructions for each generated
// stage reply. Templates are Go templates rendered through the eino
// prompt component so prompt callbacks stay available.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/tdh-assistant/server/internal/agent/model"
)

//go:embed template/welcome_prompt.txt
var welcomePrompt string

//go:embed template/basic_info_prompt.txt
var basicInfoPrompt string

//go:embed template/clarify_prompt.txt
var clarifyPrompt string

//go:embed template/summary_prompt.txt
var summaryPrompt string

//go:embed template/final_prompt.txt
var finalPrompt string

func render(ctx context.Context, tplText string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func personaVars(p model.PersonaConfig) map[string]any {
	return map[string]any{
		"AssistantName":   p.AssistantName,
		"AgencyName":      p.AgencyName,
		"SubmissionEmail": p.SubmissionEmail,
	}
}

// orNotProvided substitutes a placeholder for empty applicant fields.
func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}

// RenderWelcomeSystem renders the greeting instructions.
func RenderWelcomeSystem(ctx context.Context, p model.PersonaConfig) (string, error) {
	return render(ctx, welcomePrompt, personaVars(p))
}

// RenderBasicInfoSystem renders the basic-info collection instructions
// with the fields gathered so far.
func RenderBasicInfoSystem(ctx context.Context, p model.PersonaConfig, info model.ApplicantInfo) (string, error) {
	vars := personaVars(p)
	vars["Name"] = orNotProvided(info.Name)
	vars["Email"] = orNotProvided(info.Email)
	vars["Phone"] = orNotProvided(info.Phone)
	vars["Spotlight"] = orNotProvided(info.Spotlight)
	vars["Complete"] = info.HasBasics()
	return render(ctx, basicInfoPrompt, vars)
}

// RenderClarifySystem renders the role clarification instructions.
func RenderClarifySystem(ctx context.Context, p model.PersonaConfig) (string, error) {
	return render(ctx, clarifyPrompt, personaVars(p))
}

// RenderSummarySystem renders the application summary instructions from
// the completed session.
func RenderSummarySystem(ctx context.Context, p model.PersonaConfig, s *model.Session) (string, error) {
	collected := make([]string, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		if r.Collected {
			collected = append(collected, strings.ReplaceAll(r.Key, "_", " "))
		}
	}

	vars := personaVars(p)
	vars["RoleType"] = string(s.RoleType)
	vars["Name"] = orNotProvided(s.ApplicantInfo.Name)
	vars["Email"] = orNotProvided(s.ApplicantInfo.Email)
	vars["Phone"] = orNotProvided(s.ApplicantInfo.Phone)
	vars["Spotlight"] = orNotProvided(s.ApplicantInfo.Spotlight)
	vars["Materials"] = strings.Join(collected, ", ")
	return render(ctx, summaryPrompt, vars)
}

// RenderFinalSystem renders the closing instructions.
func RenderFinalSystem(ctx context.Context, p model.PersonaConfig) (string, error) {
	return render(ctx, finalPrompt, personaVars(p))
}
