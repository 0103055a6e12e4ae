package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdh-assistant/server/internal/agent/model"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		text string
		want model.RoleType
	}{
		{"I'm a dancer", model.RoleDancer},
		{"I am a Dancer who sings", model.RoleDancerWhoSings},
		{"dancer who sings, mostly", model.RoleDancerWhoSings},
		{"singer here", model.RoleSingerActor},
		{"I'm an actor and mover", model.RoleSingerActor},
		{"I like music", model.RoleUnset},
		{"", model.RoleUnset},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyRole(tt.text))
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		text string
		want model.TriState
	}{
		{"Yes", model.TriYes},
		{"yeah I do", model.TriYes},
		{"Sure", model.TriYes},
		{"No", model.TriNo},
		{"nope", model.TriNo},
		{"No I don't", model.TriNo},
		{"I haven't got one", model.TriNo},
		{"maybe", model.TriUnknown},
		{"yes and no", model.TriUnknown},
		{"", model.TriUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parseYesNo(tt.text))
		})
	}
}

func TestParseWorkPreferences(t *testing.T) {
	t.Run("named preferences", func(t *testing.T) {
		got := parseWorkPreferences("Musical theatre and cruises please, no TV")
		assert.True(t, got["theatre"])
		assert.True(t, got["cruises"])
		assert.True(t, got["tv_film"])
		assert.False(t, got["abroad"])
		assert.False(t, got["commercial"])
	})

	t.Run("yes to everything", func(t *testing.T) {
		got := parseWorkPreferences("Yes to all of them")
		for key, v := range got {
			assert.True(t, v, key)
		}
		assert.Len(t, got, 5)
	})

	t.Run("all five keys always present", func(t *testing.T) {
		got := parseWorkPreferences("none of those")
		assert.Len(t, got, 5)
		for key, v := range got {
			assert.False(t, v, key)
		}
	})
}

func TestFirstMissingBasic(t *testing.T) {
	assert.Equal(t, "full name", firstMissingBasic(model.ApplicantInfo{}))
	assert.Equal(t, "email address", firstMissingBasic(model.ApplicantInfo{Name: "Jane Smith"}))
	assert.Equal(t, "phone number", firstMissingBasic(model.ApplicantInfo{Name: "Jane Smith", Email: "j@e.com"}))
}
