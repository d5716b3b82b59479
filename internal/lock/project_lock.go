// Package lock provides a per-project advisory lock so two setup runs cannot
// mutate the same project at once.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// keyLen is the number of hex characters of the path hash used in lock names.
const keyLen = 16

// LockInfo is written next to the lock file for diagnostics.
type LockInfo struct {
	PID         int       `json:"pid"`
	CreatedAt   time.Time `json:"created_at"`
	Cmd         string    `json:"cmd,omitempty"`
	ProjectRoot string    `json:"project_root"`
}

// ErrLocked indicates the lock is held by another process.
type ErrLocked struct {
	ProjectRoot string
	Info        *LockInfo // nil if the info file is unreadable
	Path        string
}

func (e *ErrLocked) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("project %s is locked by pid %d since %s (lock file: %s)",
			e.ProjectRoot, e.Info.PID, e.Info.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("project %s is locked (lock file: %s)", e.ProjectRoot, e.Path)
}

// ProjectLock hands out locks stored under CacheDir/locks. The operating
// system releases a lock when its holder exits, so there is no staleness check.
type ProjectLock struct {
	CacheDir string
	Now      func() time.Time
}

// NewProjectLock returns a ProjectLock using the wall clock.
func NewProjectLock(cacheDir string) ProjectLock {
	return ProjectLock{CacheDir: cacheDir, Now: time.Now}
}

// Key returns the lock name for an absolute project root.
func Key(projectRoot string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(projectRoot)))
	return hex.EncodeToString(sum[:])[:keyLen]
}

func (l ProjectLock) lockPath(projectRoot string) string {
	return filepath.Join(l.CacheDir, "locks", Key(projectRoot)+".lock")
}

func infoPath(lockPath string) string {
	return lockPath + ".json"
}

// Lock acquires the lock for projectRoot without blocking and returns an
// unlock function. cmd is recorded for diagnostics (may be empty).
// If the lock is held elsewhere, returns *ErrLocked.
func (l ProjectLock) Lock(projectRoot, cmd string) (unlock func() error, err error) {
	path := l.lockPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, &ErrLocked{ProjectRoot: projectRoot, Info: readInfo(infoPath(path)), Path: path}
	}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	info := LockInfo{PID: os.Getpid(), CreatedAt: now(), Cmd: cmd, ProjectRoot: projectRoot}
	data, _ := json.Marshal(info)
	if err := os.WriteFile(infoPath(path), data, 0o600); err != nil {
		fl.Unlock()
		return nil, fmt.Errorf("failed to write lock info: %w", err)
	}

	return func() error {
		if err := os.Remove(infoPath(path)); err != nil && !os.IsNotExist(err) {
			return err
		}
		return fl.Unlock()
	}, nil
}

func readInfo(path string) *LockInfo {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}
