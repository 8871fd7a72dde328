package methodcatalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
)

var ErrLocked = errors.New("a payment method sync for these credentials is already running")

// Locker provides at most one concurrent sync per credential set.
type Locker interface {
	// TryLock acquires the lock for key without waiting. It returns ErrLocked if held.
	TryLock(ctx context.Context, key string) (release func(), err error)
}

// LockKey hashes the credential key so no account names end up in lock stores.
func LockKey(credentialKey string) string {
	sum := sha256.Sum256([]byte(credentialKey))
	return hex.EncodeToString(sum[:])
}

type localLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker serializes syncs within this process only.
func NewLocalLocker() Locker {
	return &localLocker{
		held: make(map[string]struct{}),
	}
}

func (l *localLocker) TryLock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLocked
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

// SyncLocked runs Sync while holding the lock of the credential set. It returns ErrLocked
// without syncing when another run holds it.
func (s *Synchronizer) SyncLocked(ctx context.Context, locker Locker, creds providerapi.Credentials) (SyncResult, error) {
	release, err := locker.TryLock(ctx, LockKey(creds.Key()))
	if err != nil {
		logging.LoggerFromContext(ctx).Warn("skipping payment method sync for %s: %v", creds.Key(), err)
		return SyncResult{}, err
	}
	defer release()

	return s.Sync(ctx, creds)
}
