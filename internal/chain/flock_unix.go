//go:build unix

package chain

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const flockPollInterval = 5 * time.Millisecond

// acquireFileLock takes an advisory flock on path, polling with LOCK_NB so a
// cancelled context stops the wait. Locks are held per open file description,
// so two Logs in one process exclude each other as well.
func acquireFileLock(ctx context.Context, path string, exclusive bool) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o640)
	if err != nil {
		return nil, storageError("open lock file", err)
	}
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	fd := int(f.Fd())
	for {
		err := unix.Flock(fd, how|unix.LOCK_NB)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = f.Close()
			return nil, storageError("flock", err)
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, storageError("wait for lock", ctx.Err())
		case <-time.After(flockPollInterval):
		}
	}
	return func() error {
		unlockErr := unix.Flock(fd, unix.LOCK_UN)
		closeErr := f.Close()
		return errors.Join(unlockErr, closeErr)
	}, nil
}
