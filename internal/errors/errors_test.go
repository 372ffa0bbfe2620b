package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "client configuration not found")
	assert.Equal(t, "config (fatal): client configuration not found", err.Error())

	wrapped := Wrap(errors.New("boom"), CategoryFileSystem, SeverityError, "output write failed")
	assert.Equal(t, "filesystem (error): output write failed: boom", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := OutputError("write page", cause)
	require.ErrorIs(t, err, cause)
}

func TestIsCategory(t *testing.T) {
	err := ClientConfigNotFound("acme", "configs/acme.yaml")
	assert.True(t, IsCategory(err, CategoryConfig))
	assert.False(t, IsCategory(err, CategoryTemplate))

	// Category survives fmt.Errorf wrapping.
	outer := fmt.Errorf("generate: %w", err)
	assert.True(t, IsCategory(outer, CategoryConfig))
	assert.False(t, IsCategory(nil, CategoryConfig))
}

func TestWithContext(t *testing.T) {
	err := TemplateNotFound("template/TEMPLATE.html")
	require.NotNil(t, err.Context)
	assert.Equal(t, "template/TEMPLATE.html", err.Context["path"])
}
