package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionClosed       = errors.New("session closed")
	ErrStaleResponse       = errors.New("response arrived after the view was left")
	ErrSelectionIncomplete = errors.New("date and time must be selected")
	ErrMissingContext      = errors.New("checkout opened without a booking context")
	ErrPromoInProgress     = errors.New("promo code validation already in progress")
)

// Session is a server-held view. Events on one session are serialized by its
// mutex; network calls run outside it and are checked against the
// generation when they return.
type Session interface {
	ID() string
	Close()
	IdleSince() time.Time
}

type base struct {
	id       string
	mu       sync.Mutex
	lastSeen atomic.Int64

	// generation changes when the view is left; results from an older
	// generation are discarded
	generation uint64
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
}

func (b *base) init() {
	b.id = uuid.New().String()
	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.lastSeen.Store(time.Now().UnixNano())
}

func (b *base) ID() string {
	return b.id
}

func (b *base) IdleSince() time.Time {
	return time.Unix(0, b.lastSeen.Load())
}

func (b *base) touch() {
	b.lastSeen.Store(time.Now().UnixNano())
}

// Close leaves the view: in-flight calls are cancelled and their results dropped
func (b *base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.generation++
	b.cancel()
}

// opContext derives a context that ends with either the request or the session
func (b *base) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(b.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// currentLocked reports whether a result started at gen may still be applied
func (b *base) currentLocked(gen uint64) bool {
	return !b.closed && b.generation == gen
}
