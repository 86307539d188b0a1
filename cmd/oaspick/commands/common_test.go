package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/pipeline"
)

const petstoreJSON = `{
  "openapi": "3.0.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pet": {
      "put": {"operationId": "updatePet", "summary": "Update an existing pet"},
      "post": {"operationId": "addPet", "summary": "Add a new pet", "deprecated": true}
    },
    "/user/{username}": {
      "get": {"operationId": "getUserByName", "summary": "Get user by user name"}
    }
  },
  "components": {"schemas": {"Pet": {"type": "object"}}}
}`

const petstoreYAML = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /pet:
    put:
      operationId: updatePet
    post:
      operationId: addPet
`

// writeTempFile writes content to name inside a fresh temp directory.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// captureStdout runs fn while capturing os.Stdout and returns the output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

// captureStderr runs fn while capturing os.Stderr and returns the output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

func captureFile(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	old := *target
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*target = w
	defer func() {
		_ = w.Close()
		*target = old
	}()

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	*target = old
	return <-done
}

// withStdin replaces the stdin reader for the duration of the test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	old := stdin
	stdin = strings.NewReader(content)
	t.Cleanup(func() { stdin = old })
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.json", FormatSpecPath("api.json"))
}

func TestReadSource(t *testing.T) {
	path := writeTempFile(t, "api.json", petstoreJSON)

	raw, err := readSource(path)
	require.NoError(t, err)
	assert.Equal(t, petstoreJSON, raw)

	withStdin(t, "from stdin")
	raw, err = readSource(StdinFilePath)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", raw)

	_, err = readSource(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadSourceLimit(t *testing.T) {
	t.Setenv("OASPICK_MAX_DOCUMENT_SIZE", "10")
	path := writeTempFile(t, "api.json", petstoreJSON)

	_, err := readSource(path)
	var limitErr *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, int64(10), limitErr.Limit)

	_, libErr := document.ReadLimited(strings.NewReader(petstoreJSON), 10)
	require.Error(t, libErr)
	assert.Equal(t, libErr.Error(), err.Error(), "the CLI reports the same limit error as the library")
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		path    string
		want    document.Format
		wantErr bool
	}{
		{"json extension", "", "api.json", document.FormatJSON, false},
		{"yaml extension", "", "api.yaml", document.FormatYAML, false},
		{"yml extension", "", "api.yml", document.FormatYAML, false},
		{"unknown extension is strict json", "", "api.txt", document.FormatJSON, false},
		{"stdin is strict json", "", StdinFilePath, document.FormatJSON, false},
		{"flag wins", "auto", "api.json", document.FormatAuto, false},
		{"invalid flag", "xml", "api.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inputFormat(tt.flag, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayError(t *testing.T) {
	inner := &oaserrors.InputError{Input: "selector", Message: pipeline.MsgMissingSelector}
	err := &displayError{err: inner}
	assert.Equal(t, pipeline.MsgMissingSelector, err.Error())
	assert.True(t, errors.Is(err, oaserrors.ErrInputMissing))
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, writeOutput(path, []byte("{}")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data), "a trailing newline is added")

	out := captureStdout(t, func() {
		require.NoError(t, writeOutput("", []byte("hello\n")))
	})
	assert.Equal(t, "hello\n", out)
}

func TestWriteOutputRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o600))
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	err := writeOutput(link, []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
