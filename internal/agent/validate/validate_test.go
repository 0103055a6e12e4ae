package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdh-assistant/server/internal/agent/model"
)

func TestMaterial_CV(t *testing.T) {
	t.Run("pdf accepted", func(t *testing.T) {
		ok, _ := Material(model.ReqCV, "here's my_cv.pdf")
		assert.True(t, ok)
	})

	t.Run("word accepted", func(t *testing.T) {
		ok, _ := Material(model.ReqCV, "I have it as a Word document")
		assert.True(t, ok)
	})

	t.Run("attachment cue accepted", func(t *testing.T) {
		ok, _ := Material(model.ReqCV, "I've attached my cv")
		assert.True(t, ok)
	})

	t.Run("txt rejected", func(t *testing.T) {
		ok, feedback := Material(model.ReqCV, "my_cv.txt")
		assert.False(t, ok)
		assert.Contains(t, feedback, "PDF or Word")
	})
}

func TestMaterial_Reels(t *testing.T) {
	t.Run("youtube accepted with platform named", func(t *testing.T) {
		ok, feedback := Material(model.ReqDanceReel, "https://youtube.com/watch?v=abcd1234")
		assert.True(t, ok)
		assert.Contains(t, feedback, "YouTube")
	})

	t.Run("short youtube link accepted", func(t *testing.T) {
		ok, _ := Material(model.ReqVocalReel, "https://youtu.be/abcd1234")
		assert.True(t, ok)
	})

	t.Run("vimeo accepted with platform named", func(t *testing.T) {
		ok, feedback := Material(model.ReqActingReel, "https://vimeo.com/123456789")
		assert.True(t, ok)
		assert.Contains(t, feedback, "Vimeo")
	})

	t.Run("other platforms rejected, both alternatives offered", func(t *testing.T) {
		ok, feedback := Material(model.ReqDanceReel, "https://tiktok.com/@me/video/1")
		assert.False(t, ok)
		assert.Contains(t, feedback, "YouTube")
		assert.Contains(t, feedback, "Vimeo")
	})
}

func TestMaterial_Spotlight(t *testing.T) {
	ok, _ := Material("spotlight", "https://www.spotlight.com/1234-5678")
	assert.True(t, ok)

	ok, _ = Material("spotlight", "https://portal.spotlight.com/profile/1234")
	assert.True(t, ok)

	ok, feedback := Material("spotlight", "https://example.com/me")
	assert.False(t, ok)
	assert.Contains(t, feedback, "Spotlight")
}

func TestMaterial_UnknownKey(t *testing.T) {
	ok, feedback := Material("headshot", "anything")
	assert.False(t, ok)
	assert.NotEmpty(t, feedback)
}

func TestSkippable(t *testing.T) {
	assert.True(t, Skippable(model.ReqMovementReel, "I don't have a movement reel yet"))
	assert.True(t, Skippable(model.ReqMovementReel, "can we skip that one?"))
	assert.False(t, Skippable(model.ReqMovementReel, "here it is: https://vimeo.com/1"))

	// Only the movement reel is optional.
	assert.False(t, Skippable(model.ReqDanceReel, "I don't have one"))
	assert.False(t, Skippable(model.ReqCV, "skip"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Dance Reel", DisplayName(model.ReqDanceReel))
	assert.Equal(t, "CV", DisplayName(model.ReqCV), "the abbreviation keeps its casing")
	assert.Equal(t, "Movement Reel", DisplayName(model.ReqMovementReel))
}
