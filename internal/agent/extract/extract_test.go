package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdh-assistant/server/internal/agent/model"
)

func TestInfo_Name(t *testing.T) {
	t.Run("name is pattern", func(t *testing.T) {
		got := Info("My name is Jane Smith", model.ApplicantInfo{})
		assert.Equal(t, "Jane Smith", got.Name)
	})

	t.Run("I'm pattern", func(t *testing.T) {
		got := Info("I'm Alex Garcia and I'd like to apply", model.ApplicantInfo{})
		assert.Equal(t, "Alex Garcia", got.Name)
	})

	t.Run("single token names are not recognized", func(t *testing.T) {
		got := Info("I'm Cher", model.ApplicantInfo{})
		assert.Empty(t, got.Name)
	})

	t.Run("first write wins", func(t *testing.T) {
		got := Info("My name is Jane Smith", model.ApplicantInfo{Name: "Ada Lovelace"})
		assert.Equal(t, "Ada Lovelace", got.Name)
	})
}

func TestInfo_Email(t *testing.T) {
	got := Info("you can reach me at jane.smith@email.com thanks", model.ApplicantInfo{})
	assert.Equal(t, "jane.smith@email.com", got.Email)

	got = Info("another@example.org", got)
	assert.Equal(t, "jane.smith@email.com", got.Email, "first write wins")
}

func TestInfo_Phone(t *testing.T) {
	t.Run("labeled pattern preferred", func(t *testing.T) {
		got := Info("my phone number is +44 7700 900123", model.ApplicantInfo{})
		assert.Equal(t, "+44 7700 900123", got.Phone)
	})

	t.Run("bare digit run", func(t *testing.T) {
		got := Info("+1 555-123-4567", model.ApplicantInfo{})
		assert.NotEmpty(t, got.Phone)
	})

	t.Run("short runs ignored", func(t *testing.T) {
		got := Info("call me at 12345", model.ApplicantInfo{})
		assert.Empty(t, got.Phone)
	})

	t.Run("trailing whitespace trimmed", func(t *testing.T) {
		got := Info("my phone number is +44 7700 900123 \nthanks", model.ApplicantInfo{})
		assert.Equal(t, "+44 7700 900123", got.Phone)
	})
}

func TestInfo_Spotlight(t *testing.T) {
	t.Run("requires cue word", func(t *testing.T) {
		got := Info("https://www.spotlight.com/1234-5678", model.ApplicantInfo{})
		assert.Empty(t, got.Spotlight)
	})

	t.Run("cue plus url", func(t *testing.T) {
		got := Info("my spotlight profile is https://www.spotlight.com/1234-5678", model.ApplicantInfo{})
		assert.Equal(t, "https://www.spotlight.com/1234-5678", got.Spotlight)
	})
}

func TestInfo_NonDestructive(t *testing.T) {
	current := model.ApplicantInfo{
		Name:  "Jane Smith",
		Email: "jane@example.com",
		Phone: "+44 7700 900123",
	}

	got := Info("nothing useful here", current)
	assert.Equal(t, current, got, "unmatched message must leave info unchanged")
}

func TestInfo_Idempotent(t *testing.T) {
	text := "My name is Jane Smith, email jane@example.com, phone is +44 7700 900123"

	first := Info(text, model.ApplicantInfo{})
	second := Info(text, model.ApplicantInfo{})
	assert.Equal(t, first, second)

	again := Info(text, first)
	assert.Equal(t, first, again, "re-extraction over populated info is a no-op")
}
