// pkg/scripts/executor_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: /bin/sh, real filesystem (t.TempDir)
// PURPOSE: Test script execution, permission fixing and output capture

package scripts_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/scripts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), perm))
	return path
}

func TestShellRun(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		name       string
		body       string
		perm       os.FileMode
		args       []string
		wantCode   int
		wantStdout string
		wantErr    errors.ErrorCode
	}{
		{
			name:       "shebang script with args",
			body:       "#!/bin/sh\necho \"hello $1 $DOTF_PLATFORM\"\n",
			perm:       0755,
			args:       []string{"world"},
			wantStdout: "hello world linux\n",
		},
		{
			name:       "not executable gets fixed",
			body:       "#!/bin/sh\necho fixed\n",
			perm:       0644,
			wantStdout: "fixed\n",
		},
		{
			name:       "no shebang runs through sh",
			body:       "echo plain\n",
			perm:       0644,
			wantStdout: "plain\n",
		},
		{
			name:     "non-zero exit",
			body:     "#!/bin/sh\necho oops >&2\nexit 3\n",
			perm:     0755,
			wantCode: 3,
			wantErr:  errors.ErrScriptExecute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.body, tt.perm)
			var live bytes.Buffer
			shell := scripts.NewShell(filesystem.NewOS(), scripts.Options{
				Env:    map[string]string{"DOTF_PLATFORM": "linux"},
				Stdout: &live,
			})

			result, err := shell.Run(context.Background(), path, tt.args)

			assert.Equal(t, tt.wantCode, result.ExitCode)
			assert.Equal(t, tt.wantStdout, result.Stdout)
			assert.Equal(t, tt.wantStdout, live.String())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				assert.Contains(t, result.Stderr, "oops")
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Succeeded())

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.NotZero(t, info.Mode().Perm()&0100)
		})
	}
}

func TestShellRunMissingScript(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	shell := scripts.NewShell(filesystem.NewOS(), scripts.Options{})
	_, err := shell.Run(context.Background(), filepath.Join(t.TempDir(), "absent.sh"), nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingScript))
}
