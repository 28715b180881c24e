package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("book: %w", ErrScheduleFull)))
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound))
	assert.Equal(t, KindValidation, KindOf(NewValidation("email", "geçersiz")))
	assert.Equal(t, KindInternal, KindOf(errors.New("db down")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestValidationError(t *testing.T) {
	ve := NewValidation("name", "kısa").Add("age", "küçük").Add("name", "zorunlu")
	assert.Equal(t, []string{"kısa", "zorunlu"}, ve.FieldErrors["name"])
	assert.Equal(t, "validation failed: age, name", ve.Error())
}
