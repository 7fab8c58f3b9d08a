package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maplepath/api/internal/logger"
	"github.com/maplepath/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cv.json")
	out := filepath.Join(dir, "out.pdf")

	cv := models.UserCV{
		ID:       42,
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "416-555-0100",
		Location: "Toronto, ON",
		Summary:  "Analyst.",
		Skills:   []string{"SQL"},
	}
	b, err := json.Marshal(cv)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, b, 0o600))

	var stdout bytes.Buffer
	cmd := newRootCmd(logger.Discard())
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"render", in, "--out", out, "--format", "minimal"})
	require.NoError(t, cmd.Execute())

	pdf, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, stdout.String(), "out.pdf")
}

func TestRenderCommand_BadInput(t *testing.T) {
	cmd := newRootCmd(logger.Discard())
	cmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, cmd.Execute())
}
