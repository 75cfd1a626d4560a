//go:build !unix

package chain

import "context"

func acquireFileLock(context.Context, string, bool) (func() error, error) {
	return nil, ErrLockUnsupported
}
