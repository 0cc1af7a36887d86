package session

import (
	"sync"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// Listener is notified whenever the signed-in identity changes.
// signedIn is false after SignOut, in which case id is the zero Identity.
type Listener func(id domain.Identity, signedIn bool)

// Context holds the identity of the user signed in on one device.
// It replaces any process-wide "current user": consumers read it through
// Current or observe it through Subscribe.
type Context struct {
	mu        sync.RWMutex
	current   domain.Identity
	signedIn  bool
	listeners map[uint64]Listener
	nextID    uint64
}

// New creates a signed-out Context.
func New() *Context {
	return &Context{listeners: make(map[uint64]Listener)}
}

// NewSignedIn creates a Context already holding id.
func NewSignedIn(id domain.Identity) *Context {
	c := New()
	c.current = id
	c.signedIn = true
	return c
}

// Current returns the signed-in identity, if any.
func (c *Context) Current() (domain.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.signedIn
}

// SignIn replaces the current identity and notifies listeners.
func (c *Context) SignIn(id domain.Identity) {
	c.mu.Lock()
	c.current = id
	c.signedIn = id.UserID != ""
	listeners := c.snapshot()
	signedIn := c.signedIn
	c.mu.Unlock()

	notify(listeners, id, signedIn)
}

// SignOut clears the current identity and notifies listeners.
func (c *Context) SignOut() {
	c.mu.Lock()
	c.current = domain.Identity{}
	c.signedIn = false
	listeners := c.snapshot()
	c.mu.Unlock()

	notify(listeners, domain.Identity{}, false)
}

// Subscribe registers fn and immediately calls it with the current state.
// Listeners run on the goroutine that changed the state, outside any lock.
func (c *Context) Subscribe(fn Listener) *Subscription {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current, signedIn := c.current, c.signedIn
	c.mu.Unlock()

	fn(current, signedIn)

	return &Subscription{cancel: func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}}
}

// Listeners returns the number of active subscriptions.
func (c *Context) Listeners() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}

func (c *Context) snapshot() []Listener {
	out := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, id domain.Identity, signedIn bool) {
	for _, l := range listeners {
		l(id, signedIn)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe stops further notifications. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}
