package learnkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	learnkit "github.com/skillhub/learnkit"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty error", func(t *testing.T) {
		t.Parallel()

		e := learnkit.NewValidationError()
		assert.True(t, e.IsEmpty())
		assert.Equal(t, "validation failed", e.Error())
		assert.Empty(t, e.Get("email"))
		assert.False(t, e.Has("email"))
	})

	t.Run("accumulates messages per field", func(t *testing.T) {
		t.Parallel()

		e := learnkit.NewValidationError()
		e.Add("email", "already taken")
		e.Add("email", "must be lowercase")
		e.Add("name", "required")

		assert.False(t, e.IsEmpty())
		assert.True(t, e.Has("email"))
		assert.Equal(t, "already taken", e.Get("email"))
		assert.Equal(t, []string{"already taken", "must be lowercase"}, e["email"])
		assert.Equal(t, []string{"email", "name"}, e.Fields())
	})

	t.Run("deterministic message", func(t *testing.T) {
		t.Parallel()

		e := learnkit.NewValidationError()
		e.Add("name", "required")
		e.Add("email", "already taken")

		assert.Equal(t, "validation failed: email: already taken; name: required", e.Error())
	})
}
