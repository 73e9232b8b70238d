// Package history models browser-style session history for live routes.
//
// A History hands out Locations and notifies listeners on every transition.
// MemoryHistory keeps its entries in memory, which is what the server keeps
// per session and what tests drive directly.
package history

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Action is the kind of transition that produced the current location.
type Action string

const (
	ActionPush    Action = "PUSH"
	ActionReplace Action = "REPLACE"
	ActionPop     Action = "POP"
)

// Location is one history entry.
type Location struct {
	Pathname string
	Search   string
	Hash     string
	State    any
	Key      string
}

// Path returns pathname, search and hash joined back together.
func (l Location) Path() string {
	return l.Pathname + l.Search + l.Hash
}

// ParsePath splits a path into pathname, search ("?...") and hash ("#...").
// An empty pathname becomes "/".
func ParsePath(path string) Location {
	var loc Location
	if i := strings.IndexByte(path, '#'); i >= 0 {
		loc.Hash = path[i:]
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		loc.Search = path[i:]
		path = path[:i]
	}
	if loc.Search == "?" {
		loc.Search = ""
	}
	if loc.Hash == "#" {
		loc.Hash = ""
	}
	if path == "" {
		path = "/"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	loc.Pathname = path
	return loc
}

// Listener is notified after every transition.
type Listener func(loc Location, action Action)

// History is the navigation surface live routes receive in their props.
type History interface {
	Location() Location
	Action() Action
	Len() int
	Push(path string, state any)
	Replace(path string, state any)
	Go(n int)
	Back()
	Forward()
	Listen(fn Listener) (unlisten func())
}

// MemoryHistory is a History backed by an in-memory entry stack.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []Location
	index     int
	action    Action
	listeners map[int]Listener
	nextID    int
}

// NewMemory creates a history with the given initial entries; the last one
// is current. Without entries it starts at "/".
func NewMemory(initial ...string) *MemoryHistory {
	if len(initial) == 0 {
		initial = []string{"/"}
	}
	h := &MemoryHistory{
		action:    ActionPop,
		listeners: make(map[int]Listener),
	}
	for _, p := range initial {
		h.entries = append(h.entries, newLocation(p, nil))
	}
	h.index = len(h.entries) - 1
	return h
}

func newLocation(path string, state any) Location {
	loc := ParsePath(path)
	loc.State = state
	loc.Key = uuid.NewString()[:8]
	return loc
}

// Location returns the current entry.
func (h *MemoryHistory) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Action returns the action that produced the current entry.
func (h *MemoryHistory) Action() Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.action
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Push discards forward entries and appends a new current entry.
func (h *MemoryHistory) Push(path string, state any) {
	h.mu.Lock()
	loc := newLocation(path, state)
	h.entries = append(h.entries[:h.index+1], loc)
	h.index++
	h.action = ActionPush
	h.mu.Unlock()
	h.notify(loc, ActionPush)
}

// Replace swaps the current entry.
func (h *MemoryHistory) Replace(path string, state any) {
	h.mu.Lock()
	loc := newLocation(path, state)
	h.entries[h.index] = loc
	h.action = ActionReplace
	h.mu.Unlock()
	h.notify(loc, ActionReplace)
}

// Go moves n entries forward (or back when negative), clamped to the stack.
func (h *MemoryHistory) Go(n int) {
	h.mu.Lock()
	next := h.index + n
	if next < 0 {
		next = 0
	}
	if next > len(h.entries)-1 {
		next = len(h.entries) - 1
	}
	if next == h.index {
		h.mu.Unlock()
		return
	}
	h.index = next
	h.action = ActionPop
	loc := h.entries[next]
	h.mu.Unlock()
	h.notify(loc, ActionPop)
}

// Back is Go(-1).
func (h *MemoryHistory) Back() { h.Go(-1) }

// Forward is Go(1).
func (h *MemoryHistory) Forward() { h.Go(1) }

// Listen registers fn and returns a function that removes it.
func (h *MemoryHistory) Listen(fn Listener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

func (h *MemoryHistory) notify(loc Location, action Action) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, h.listeners[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(loc, action)
	}
}
