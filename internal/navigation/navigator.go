// Package navigation keeps the screen back-stack and decides which screen
// may follow which.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var (
	ErrUnknownRoute         = errors.New("unknown route")
	ErrTransitionNotAllowed = errors.New("transition not allowed")
)

// Listener is called after every change of the active route.
type Listener func(from, to Route)

type navOptions struct {
	popUpTo   Route
	inclusive bool
}

type NavOption func(*navOptions)

// PopUpTo pops entries above the topmost occurrence of route before
// pushing the destination, and that entry too when inclusive is set. If
// route is not on the stack nothing is popped.
func PopUpTo(route Route, inclusive bool) NavOption {
	return func(o *navOptions) {
		o.popUpTo = Canonical(route)
		o.inclusive = inclusive
	}
}

// Navigator is safe for concurrent use.
type Navigator struct {
	graph Graph

	mu        sync.Mutex
	stack     []Route
	listeners []Listener
}

// NewNavigator validates graph and opens start.
func NewNavigator(graph Graph, start Route) (*Navigator, error) {
	if err := graph.validate(); err != nil {
		return nil, err
	}
	start = Canonical(start)
	if _, ok := graph[start]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, start)
	}
	return &Navigator{graph: graph, stack: []Route{start}}, nil
}

// Subscribe registers l for route changes.
func (n *Navigator) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// BackStack returns a copy of the stack, bottom first.
func (n *Navigator) BackStack() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.stack)
}

// Navigate pushes route. On error the stack is left untouched.
func (n *Navigator) Navigate(route Route, opts ...NavOption) error {
	route = Canonical(route)

	var o navOptions
	for _, opt := range opts {
		opt(&o)
	}

	n.mu.Lock()
	if _, ok := n.graph[route]; !ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	from := n.stack[len(n.stack)-1]
	if !n.graph.allows(from, route) {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, route)
	}

	if o.popUpTo != "" {
		if i := lastIndex(n.stack, o.popUpTo); i >= 0 {
			if o.inclusive {
				n.stack = n.stack[:i]
			} else {
				n.stack = n.stack[:i+1]
			}
		}
	}
	n.stack = append(n.stack, route)
	listeners := slices.Clone(n.listeners)
	n.mu.Unlock()

	n.notify(listeners, from, route)
	return nil
}

// PopBackStack returns to the previous screen. With a single entry left it
// reports false and changes nothing; the host decides whether to exit.
func (n *Navigator) PopBackStack() bool {
	n.mu.Lock()
	if len(n.stack) <= 1 {
		n.mu.Unlock()
		return false
	}
	from := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	to := n.stack[len(n.stack)-1]
	listeners := slices.Clone(n.listeners)
	n.mu.Unlock()

	n.notify(listeners, from, to)
	return true
}

// Reset replaces the whole back-stack with route without consulting the
// transition table. It is meant for state the user cannot navigate out of,
// such as a session that ended underneath an open screen.
func (n *Navigator) Reset(route Route) error {
	route = Canonical(route)

	n.mu.Lock()
	if _, ok := n.graph[route]; !ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	from := n.stack[len(n.stack)-1]
	n.stack = []Route{route}
	listeners := slices.Clone(n.listeners)
	n.mu.Unlock()

	n.notify(listeners, from, route)
	return nil
}

func lastIndex(stack []Route, r Route) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == r {
			return i
		}
	}
	return -1
}

func (n *Navigator) notify(listeners []Listener, from, to Route) {
	for _, l := range listeners {
		l(from, to)
	}
}

// LoginState reports whether a user session is active.
type LoginState interface {
	IsLoggedIn(ctx context.Context) bool
}

// Startup shows the splash screen for delay, then replaces it with home or
// the login screen.
func Startup(ctx context.Context, n *Navigator, state LoginState, delay time.Duration) error {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	next := Auth
	if state.IsLoggedIn(ctx) {
		next = Home
	}
	return n.Navigate(next, PopUpTo(Splash, true))
}

// RequiresLogin reports whether route is only shown to a logged-in user.
func RequiresLogin(route Route) bool {
	switch Canonical(route) {
	case Splash, Auth, Register:
		return false
	}
	return true
}

// Logout returns to the login screen and drops everything from home up.
func Logout(n *Navigator) error {
	return n.Navigate(Auth, PopUpTo(Home, true))
}
