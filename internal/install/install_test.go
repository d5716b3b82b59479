package install

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
)

func TestRun_Success(t *testing.T) {
	cr := exec.NewMockCommandRunner(gomock.NewController(t))
	cr.EXPECT().
		Run(gomock.Any(), "npm", []string{"install"}, exec.RunOpts{Dir: "/project"}).
		Return(exec.CmdResult{Stdout: "added 12 packages"}, nil)

	assert.Equal(t, Result{OK: true}, Run(context.Background(), cr, "/project"))
}

func TestRun_NonZeroExitTruncatesStderr(t *testing.T) {
	cr := exec.NewMockCommandRunner(gomock.NewController(t))
	cr.EXPECT().
		Run(gomock.Any(), "npm", []string{"install"}, exec.RunOpts{Dir: "/project"}).
		Return(exec.CmdResult{ExitCode: 1, Stderr: strings.Repeat("e", 2000)}, nil)

	res := Run(context.Background(), cr, "/project")
	assert.False(t, res.OK)
	assert.Equal(t, "npm install exited with code 1", res.Reason)
	assert.Len(t, res.Stderr, StderrLimit)
}

func TestRun_ExecFailure(t *testing.T) {
	cr := exec.NewMockCommandRunner(gomock.NewController(t))
	cr.EXPECT().
		Run(gomock.Any(), "npm", []string{"install"}, gomock.Any()).
		Return(exec.CmdResult{}, context.Canceled)

	res := Run(context.Background(), cr, "/project")
	assert.False(t, res.OK)
	assert.Equal(t, "context canceled", res.Reason)
	assert.Empty(t, res.Stderr)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	// "é" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "ab", truncate("abé", 3))
}
