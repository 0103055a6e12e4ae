package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdh-assistant/server/internal/agent/model"
)

func persona() model.PersonaConfig {
	return model.PersonaConfig{
		AssistantName:   "Emily",
		AgencyName:      "TDH Agency",
		SubmissionEmail: "info@tdhagency.com",
	}
}

func TestRenderWelcomeSystem(t *testing.T) {
	out, err := RenderWelcomeSystem(context.Background(), persona())
	require.NoError(t, err)
	assert.Contains(t, out, "Emily")
	assert.Contains(t, out, "TDH Agency")
	assert.NotContains(t, out, "{{", "all template variables must be substituted")
}

func TestRenderBasicInfoSystem(t *testing.T) {
	t.Run("partial info shows placeholders", func(t *testing.T) {
		out, err := RenderBasicInfoSystem(context.Background(), persona(), model.ApplicantInfo{Name: "Jane Smith"})
		require.NoError(t, err)
		assert.Contains(t, out, "Name: Jane Smith")
		assert.Contains(t, out, "Email: Not provided")
		assert.NotContains(t, out, "All basic information is collected")
	})

	t.Run("complete info switches instruction", func(t *testing.T) {
		info := model.ApplicantInfo{Name: "Jane Smith", Email: "jane@example.com", Phone: "+44 7700 900123"}
		out, err := RenderBasicInfoSystem(context.Background(), persona(), info)
		require.NoError(t, err)
		assert.Contains(t, out, "All basic information is collected")
	})
}

func TestRenderSummarySystem(t *testing.T) {
	s := model.NewSession("t1")
	s.RoleType = model.RoleDancer
	s.ApplicantInfo = model.ApplicantInfo{Name: "Jane Smith", Email: "jane@example.com", Phone: "+44 7700 900123"}
	s.Requirements = model.RequirementsForRole(model.RoleDancer)
	s.Requirements.MarkCollected(model.ReqCV)
	s.Requirements.MarkCollected(model.ReqDanceReel)

	out, err := RenderSummarySystem(context.Background(), persona(), s)
	require.NoError(t, err)
	assert.Contains(t, out, "Role: Dancer")
	assert.Contains(t, out, "cv, dance reel")
	assert.Contains(t, out, "Spotlight Link: Not provided")
	assert.Contains(t, out, "info@tdhagency.com")
}

func TestRenderFinalSystem(t *testing.T) {
	out, err := RenderFinalSystem(context.Background(), persona())
	require.NoError(t, err)
	assert.Contains(t, out, "info@tdhagency.com")
}
