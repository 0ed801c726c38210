package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required,max=10"`
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		msgs := Struct(sample{Name: "Alice", Email: "alice@example.com", Age: 30})
		assert.Nil(t, msgs)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		msgs := Struct(sample{Age: -1})
		assert.Len(t, msgs, 3)
		assert.Contains(t, msgs, "field name is required")
		assert.Contains(t, msgs, "field email is required")
		assert.Contains(t, msgs, "field age must be >= 0")
	})

	t.Run("email rule", func(t *testing.T) {
		msgs := Struct(sample{Name: "Alice", Email: "not-an-email"})
		assert.Equal(t, []string{"field email must be a valid email address"}, msgs)
	})

	t.Run("max rule", func(t *testing.T) {
		msgs := Struct(sample{Name: "a very long name", Email: "a@b.co"})
		assert.Equal(t, []string{"field name must be at most 10"}, msgs)
	})
}
