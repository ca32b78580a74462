package host

import (
	"sync"

	"github.com/resolver-cli/resolver/source"
)

// lease counts the requests using an adapter. An evicted adapter is closed
// once the last of them is done.
type lease struct {
	src source.Source

	mu      sync.Mutex
	users   int
	evicted bool
	closed  bool
}

// acquire registers a user. It fails once the adapter has been closed.
func (l *lease) acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}
	l.users++
	return true
}

func (l *lease) release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.users--
	l.closeIfIdle()
}

func (l *lease) evict() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evicted = true
	l.closeIfIdle()
}

func (l *lease) closeIfIdle() {
	if l.evicted && l.users == 0 && !l.closed {
		l.closed = true
		source.Close(l.src)
	}
}
