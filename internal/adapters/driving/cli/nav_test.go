package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

func TestNavCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "nav", "en")

	require.NoError(t, err)
	assert.Contains(t, out, "MARL Docs · en (en-US)")
	assert.Contains(t, out, "Navigation\n  Games  /en/games/tag")
	assert.Contains(t, out, "Sidebar /en/games/")
	assert.Contains(t, out, "    Predator-prey  /en/games/tag")
}

func TestNavCmd_DefaultsToRootLocale(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "nav")

	require.NoError(t, err)
	assert.Contains(t, out, "MARL Docs · zh (zh-CN)")
	assert.Contains(t, out, "No navigation")
}

func TestNavCmd_UnknownLocale(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "nav", "fr")

	assert.ErrorIs(t, err, domain.ErrUnknownLocale)
}

func TestNavCmd_TooManyArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "nav", "en", "zh")

	assert.Error(t, err)
}

func TestOutputStyles_PlainForBuffers(t *testing.T) {
	s := outputStyles(new(bytes.Buffer))

	assert.Equal(t, "text", s.Title.Render("text"))
}
