package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/lock"
	"github.com/NielsdaWheelz/vaultsetup/internal/render"
)

type mapEnv map[string]string

func (m mapEnv) Get(key string) string { return m[key] }

func testEnv(t *testing.T) Env {
	t.Helper()
	return Env{
		Vars: mapEnv{
			"VAULTSETUP_CONFIG_DIR": t.TempDir(),
			"VAULTSETUP_CACHE_DIR":  t.TempDir(),
			"USER":                  "alice",
		},
		HomeDir: t.TempDir(),
	}
}

func newProjectTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, dst := range map[string]string{
		"package.json": "package.json",
		"README.md":    "README.md",
		"build.js":     filepath.Join("site", "src", "build.js"),
	} {
		data, err := os.ReadFile(filepath.Join("..", "mutate", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.Dir(dst)), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, dst), data, 0o644))
	}
	return root
}

// toolchain answers every command like a machine with git, node and npm.
// Commands named in missing fail to start.
func toolchain(t *testing.T, missing ...string) (*exec.MockCommandRunner, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cr := exec.NewMockCommandRunner(ctrl)
	var calls []string
	cr.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string, args []string, _ exec.RunOpts) (exec.CmdResult, error) {
			cmd := strings.Join(append([]string{name}, args...), " ")
			calls = append(calls, cmd)
			for _, m := range missing {
				if name == m {
					return exec.CmdResult{}, os.ErrNotExist
				}
			}
			switch cmd {
			case "git --version":
				return exec.CmdResult{Stdout: "git version 2.43.0\n"}, nil
			case "node --version":
				return exec.CmdResult{Stdout: "v20.11.0\n"}, nil
			case "npm --version":
				return exec.CmdResult{Stdout: "10.2.4\n"}, nil
			case "git remote get-url origin":
				return exec.CmdResult{ExitCode: 2}, nil
			}
			return exec.CmdResult{}, nil
		}).AnyTimes()
	return cr, &calls
}

func TestSetup_YesWithAnswersFile(t *testing.T) {
	root := newProjectTree(t)
	answers := "site_name: My Blog\ngithub_username: alice\ncategories: [posts, notes]\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "vaultsetup.yaml"), []byte(answers), 0o644))

	cr, calls := toolchain(t)
	var stdout, stderr bytes.Buffer
	st, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root, Yes: true}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	require.NoError(t, err)

	assert.Equal(t, "my-blog", st.Record.GitHubRepo)
	assert.Equal(t, []string{"posts", "notes"}, st.Record.Categories)
	assert.FileExists(t, filepath.Join(root, "content", "posts", "welcome-to-posts.md"))
	assert.Contains(t, *calls, "git remote add origin https://github.com/alice/my-blog.git")
	assert.Contains(t, stdout.String(), Banner)
	assert.Contains(t, stdout.String(), "Site Name: My Blog")
}

func TestSetup_YesWithoutUsernameFails(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t)

	var stdout, stderr bytes.Buffer
	_, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root, Yes: true}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.ERequiredAnswer, errors.GetCode(err))
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestSetup_LineAnswers(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t)

	// Site name, description, author, username, repo, branch, URL,
	// categories, personas, plugins, proceed, clean, npm install.
	input := "My Blog\n\n\nalice\n\n\n\nposts, notes\n\n\n\n\nn\n"
	var stdout, stderr bytes.Buffer
	st, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root}, IO{In: strings.NewReader(input), Out: &stdout, Err: &stderr})
	require.NoError(t, err)
	assert.Equal(t, "alice", st.Record.GitHubUsername)
	assert.Equal(t, "https://my-blog.vercel.app", st.Record.SiteURL)
	assert.False(t, st.Installed)
}

func TestSetup_EOFCancels(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t)

	var stdout, stderr bytes.Buffer
	_, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root}, IO{In: strings.NewReader("My Blog\n"), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.ECancelled, errors.GetCode(err))
	assert.Equal(t, 0, errors.ExitCode(err))
}

// cancelOnRead cancels the run when the first answer is read, then blocks
// like a terminal nobody is typing into.
type cancelOnRead struct {
	cancel  context.CancelFunc
	release chan struct{}
}

func (r *cancelOnRead) Read([]byte) (int, error) {
	r.cancel()
	<-r.release
	return 0, io.EOF
}

func TestSetup_InterruptReleasesLock(t *testing.T) {
	root := newProjectTree(t)
	env := testEnv(t)
	cr, _ := toolchain(t)

	ctx, cancel := context.WithCancel(context.Background())
	in := &cancelOnRead{cancel: cancel, release: make(chan struct{})}
	t.Cleanup(func() { close(in.release) })

	var stdout, stderr bytes.Buffer
	_, err := Setup(ctx, cr, fs.NewRealFS(), env,
		SetupOpts{Dir: root}, IO{In: in, Out: &stdout, Err: &stderr})
	require.Error(t, err)
	assert.Equal(t, errors.ECancelled, errors.GetCode(err))
	assert.Equal(t, 0, errors.ExitCode(err))
	assert.NoDirExists(t, filepath.Join(root, "content"))

	cacheDir := env.Vars.Get("VAULTSETUP_CACHE_DIR")
	assert.NoFileExists(t, filepath.Join(cacheDir, "locks", lock.Key(root)+".lock.json"))
	unlock, err := lock.NewProjectLock(cacheDir).Lock(root, "setup")
	require.NoError(t, err)
	require.NoError(t, unlock())

	var printed bytes.Buffer
	errors.Print(&printed, err)
	assert.Equal(t, "\nSetup cancelled by user.\n", printed.String())
}

func TestSetup_MissingGit(t *testing.T) {
	root := newProjectTree(t)
	cr, calls := toolchain(t, "git")

	var stdout, stderr bytes.Buffer
	_, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root, Yes: true}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.EToolMissing, errors.GetCode(err))
	assert.Equal(t, []string{"git --version"}, *calls)
	assert.NoDirExists(t, filepath.Join(root, "content"))
}

func TestSetup_Locked(t *testing.T) {
	root := newProjectTree(t)
	env := testEnv(t)
	cr, calls := toolchain(t)

	unlock, err := lock.NewProjectLock(env.Vars.Get("VAULTSETUP_CACHE_DIR")).Lock(root, "setup")
	require.NoError(t, err)
	defer unlock()

	var stdout, stderr bytes.Buffer
	_, err = Setup(context.Background(), cr, fs.NewRealFS(), env,
		SetupOpts{Dir: root, Yes: true}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.ELocked, errors.GetCode(err))
	assert.Empty(t, *calls)
}

func TestSetup_InvalidLogLevel(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t)

	var stdout, stderr bytes.Buffer
	_, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: root, LogLevel: "loud"}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestSetup_MissingDir(t *testing.T) {
	cr, _ := toolchain(t)
	var stdout, stderr bytes.Buffer
	_, err := Setup(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		SetupOpts{Dir: filepath.Join(t.TempDir(), "nope")}, IO{In: strings.NewReader(""), Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
}

func TestDoctor_Text(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t)

	var stdout, stderr bytes.Buffer
	err := Doctor(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		DoctorOpts{Dir: root}, IO{Out: &stdout, Err: &stderr})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "project_root: "+root+"\n")
	assert.Contains(t, out, "git_repo: no\n")
	assert.Contains(t, out, "node: v20.11.0\n")
	assert.Contains(t, out, "status: ok\n")
}

func TestDoctor_JSONReportsOrigin(t *testing.T) {
	root := newProjectTree(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	ctrl := gomock.NewController(t)
	cr := exec.NewMockCommandRunner(ctrl)
	cr.EXPECT().Run(gomock.Any(), "git", []string{"remote", "get-url", "origin"}, gomock.Any()).
		Return(exec.CmdResult{Stdout: "https://github.com/alice/my-blog.git\n"}, nil)
	cr.EXPECT().Run(gomock.Any(), "git", []string{"--version"}, gomock.Any()).
		Return(exec.CmdResult{Stdout: "git version 2.43.0\n"}, nil)
	cr.EXPECT().Run(gomock.Any(), "node", []string{"--version"}, gomock.Any()).
		Return(exec.CmdResult{Stdout: "v16.20.0\n"}, nil)
	cr.EXPECT().Run(gomock.Any(), "npm", []string{"--version"}, gomock.Any()).
		Return(exec.CmdResult{Stdout: "8.19.4\n"}, nil)

	var stdout, stderr bytes.Buffer
	err := Doctor(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		DoctorOpts{Dir: root, JSON: true}, IO{Out: &stdout, Err: &stderr})
	require.NoError(t, err)

	var env render.DoctorJSONEnvelope
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &env))
	assert.Equal(t, "1.0", env.SchemaVersion)
	assert.True(t, env.Data.IsRepo)
	assert.Equal(t, "alice", env.Data.GitHubOwner)
	assert.Equal(t, "my-blog", env.Data.GitHubRepo)
	require.Len(t, env.Data.Tools, 3)
	assert.True(t, env.Data.Tools[1].BelowMinimum)
}

func TestDoctor_MissingToolStillReports(t *testing.T) {
	root := newProjectTree(t)
	cr, _ := toolchain(t, "npm")

	var stdout, stderr bytes.Buffer
	err := Doctor(context.Background(), cr, fs.NewRealFS(), testEnv(t),
		DoctorOpts{Dir: root}, IO{Out: &stdout, Err: &stderr})
	assert.Equal(t, errors.EToolMissing, errors.GetCode(err))
	assert.Contains(t, stdout.String(), "npm: missing (")
	assert.Contains(t, stdout.String(), "status: missing tools\n")
}
