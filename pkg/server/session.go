package server

import (
	"container/list"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/liveroute/pkg/history"
	"github.com/vango-dev/liveroute/pkg/liveroute"
	"github.com/vango-dev/liveroute/pkg/protocol"
	"github.com/vango-dev/liveroute/pkg/vdom"
)

// Session is one browser's live route state: a history, a host evaluating
// the routes against it, and the patches the host produced since the last
// flush.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// LastActive is when the session was last accessed.
	LastActive time.Time

	Host    *liveroute.Host
	Surface *liveroute.PatchSurface

	// queue is guarded by its own lock: the surface emits while the
	// host lock is held.
	qmu     sync.Mutex
	queue   []protocol.Patch
	seq     uint64
	handles string

	// carry holds the scroll restore of a reload frame. The client
	// reloads before applying patches, so it is replayed after the page
	// render.
	carry []protocol.Patch
}

func newSession(id, initial string, routes []liveroute.Route, opts ...liveroute.HostOption) *Session {
	now := time.Now()
	s := &Session{ID: id, CreatedAt: now, LastActive: now}
	s.Surface = liveroute.NewPatchSurface(s.enqueue)
	opts = append(opts, liveroute.WithHostSurface(s.Surface))
	s.Host = liveroute.NewHost(history.NewMemory(initial), opts...)
	s.Host.Mount(routes...)
	return s
}

func (s *Session) enqueue(p protocol.Patch) {
	s.qmu.Lock()
	s.queue = append(s.queue, p)
	s.qmu.Unlock()
}

// Flush returns the queued patches as a frame and empties the queue.
// The frame carries FlagReload when the set of mounted views differs from
// the previous flush; its scroll restore is kept for the reloaded page.
// ok is false when there is nothing to send.
func (s *Session) Flush(tree *vdom.VNode) (frame *protocol.Frame, ok bool) {
	handles := handleSet(tree)

	s.qmu.Lock()
	defer s.qmu.Unlock()

	reload := tree != nil && handles != s.handles
	if tree != nil {
		s.handles = handles
	}
	if len(s.queue) == 0 && !reload {
		return nil, false
	}

	s.seq++
	payload := protocol.EncodePatches(&protocol.PatchesFrame{Seq: s.seq, Patches: s.queue})
	if reload {
		s.carry = lastScroll(append(s.carry, s.queue...))
	}
	s.queue = nil

	frame = protocol.NewFrame(protocol.FramePatches, payload)
	if reload {
		frame.Flags |= protocol.FlagReload
	}
	return frame, true
}

// Reset records tree as the views the client has and drops queued patches
// except the latest scroll restore, which a page cannot express. Called
// after a full page render, which already carries every other change.
func (s *Session) Reset(tree *vdom.VNode) {
	handles := handleSet(tree)

	s.qmu.Lock()
	s.queue = lastScroll(append(s.carry, s.queue...))
	s.carry = nil
	s.handles = handles
	s.qmu.Unlock()
}

// lastScroll returns the last ScrollTo patch in patches, if any.
func lastScroll(patches []protocol.Patch) []protocol.Patch {
	for i := len(patches) - 1; i >= 0; i-- {
		if patches[i].Op == protocol.PatchScrollTo {
			return []protocol.Patch{patches[i]}
		}
	}
	return nil
}

// Pending returns the number of queued patches.
func (s *Session) Pending() int {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	return len(s.queue)
}

// handleSet returns a canonical string of the view handles in tree.
func handleSet(tree *vdom.VNode) string {
	if tree == nil {
		return ""
	}
	var hids []string
	for _, child := range tree.Children {
		if el := vdom.FirstElement(child); el != nil && el.HID != "" {
			hids = append(hids, el.HID)
		}
	}
	sort.Strings(hids)
	return strings.Join(hids, ",")
}

// SessionManager tracks live sessions. When a limit is set, the least
// recently used session is evicted to make room.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*list.Element
	lru      *list.List // front = most recently used

	limit   int
	initial string
	routes  func() []liveroute.Route
	opts    []liveroute.HostOption
	logger  *slog.Logger
}

// NewSessionManager creates a SessionManager. routes is called once per
// new session; opts are applied to every session host.
func NewSessionManager(limit int, initial string, routes func() []liveroute.Route, logger *slog.Logger, opts ...liveroute.HostOption) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*list.Element),
		lru:      list.New(),
		limit:    limit,
		initial:  initial,
		routes:   routes,
		opts:     opts,
		logger:   logger,
	}
}

// Create starts a new session at initial, or at the manager's initial
// path when initial is empty.
func (m *SessionManager) Create(initial string) *Session {
	if initial == "" {
		initial = m.initial
	}
	m.mu.Lock()
	opts := append([]liveroute.HostOption(nil), m.opts...)
	m.mu.Unlock()

	sess := newSession(uuid.NewString(), initial, m.routes(), opts...)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 {
		for m.lru.Len() >= m.limit {
			m.evictOldestLocked()
		}
	}
	m.sessions[sess.ID] = m.lru.PushFront(sess)

	m.logger.Debug("session created",
		"session_id", sess.ID,
		"total", len(m.sessions))
	return sess
}

// Get returns the session with id and marks it used, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.sessions[id]
	if !ok {
		return nil
	}
	m.lru.MoveToFront(elem)
	sess := elem.Value.(*Session)
	sess.LastActive = time.Now()
	return sess
}

// Remove unmounts and forgets the session with id.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close unmounts every session.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.sessions {
		m.removeLocked(id)
	}
}

func (m *SessionManager) evictOldestLocked() {
	back := m.lru.Back()
	if back == nil {
		return
	}
	sess := back.Value.(*Session)
	m.logger.Debug("session evicted", "session_id", sess.ID)
	m.removeLocked(sess.ID)
}

// removeLocked removes a session (must be called with lock held).
func (m *SessionManager) removeLocked(id string) {
	elem, ok := m.sessions[id]
	if !ok {
		return
	}
	delete(m.sessions, id)
	m.lru.Remove(elem)
	elem.Value.(*Session).Host.Unmount()
}
