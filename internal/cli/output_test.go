package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/outline/internal/engine"
)

func TestExitErrorMessage(t *testing.T) {
	err := NewExitError(ExitCommandError, "database not found")
	assert.Equal(t, "database not found", err.Error())

	wrapped := WrapExitError(ExitFailure, "mutation rejected", errors.New("boom"))
	assert.Equal(t, "mutation rejected: boom", wrapped.Error())
	assert.Equal(t, "boom", wrapped.Unwrap().Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad args")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestFormatterSuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success("✓ done"))
	assert.Equal(t, "✓ done\n", buf.String())
}

func TestFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]interface{}{"id": "r1"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterMutationFailureCarriesCode(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	rejection := &engine.MutationError{
		Code:    engine.ErrCodeIllogicalNumber,
		Message: "insert at number 9 rejected",
	}
	err := f.MutationFailure(rejection)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ILLOGICAL_NUMBER", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "insert at number 9 rejected")
}

func TestFormatterMutationFailureText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	err := f.MutationFailure(errors.New("something broke"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "✗ something broke")
}
