package liveroute

import (
	"sync"

	"github.com/vango-dev/liveroute/pkg/protocol"
)

// Handle identifies a rendered view's root node on a Surface.
type Handle string

// ScrollPosition is a document scroll offset.
type ScrollPosition struct {
	Top  int
	Left int
}

// Surface is the display and scroll capability live routes act on.
type Surface interface {
	// Display returns the inline display value of the view.
	Display(h Handle) string

	// SetDisplay sets the inline display value. An empty value removes it.
	SetDisplay(h Handle, display string)

	// ScrollPosition returns the current document scroll offset.
	ScrollPosition() ScrollPosition

	// ScrollTo scrolls the document.
	ScrollTo(pos ScrollPosition)
}

// MemorySurface is an in-process Surface. It is safe for concurrent use.
type MemorySurface struct {
	mu      sync.Mutex
	display map[Handle]string
	scroll  ScrollPosition
}

// NewMemorySurface creates an empty MemorySurface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{display: make(map[Handle]string)}
}

func (s *MemorySurface) Display(h Handle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display[h]
}

func (s *MemorySurface) SetDisplay(h Handle, display string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if display == "" {
		delete(s.display, h)
		return
	}
	s.display[h] = display
}

func (s *MemorySurface) ScrollPosition() ScrollPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll
}

func (s *MemorySurface) ScrollTo(pos ScrollPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = pos
}

// Scroll records a scroll made by the user.
func (s *MemorySurface) Scroll(pos ScrollPosition) {
	s.ScrollTo(pos)
}

// PatchSurface mirrors display and scroll in a MemorySurface and emits a
// protocol patch for every change, so a remote client can follow along.
type PatchSurface struct {
	*MemorySurface
	emit func(protocol.Patch)
}

// NewPatchSurface creates a PatchSurface that passes each patch to emit.
func NewPatchSurface(emit func(protocol.Patch)) *PatchSurface {
	return &PatchSurface{
		MemorySurface: NewMemorySurface(),
		emit:          emit,
	}
}

func (s *PatchSurface) SetDisplay(h Handle, display string) {
	s.MemorySurface.SetDisplay(h, display)
	if display == "" {
		s.emit(protocol.NewRemoveStylePatch(string(h), "display"))
		return
	}
	s.emit(protocol.NewSetStylePatch(string(h), "display", display))
}

func (s *PatchSurface) ScrollTo(pos ScrollPosition) {
	s.MemorySurface.ScrollTo(pos)
	s.emit(protocol.NewScrollToPatch("", pos.Left, pos.Top))
}

// ApplyEvent folds a client event into the mirror. Scroll events update
// the scroll position without emitting a patch. It reports whether the
// event was consumed.
func (s *PatchSurface) ApplyEvent(e *protocol.Event) bool {
	if e == nil || e.Type != protocol.EventScroll {
		return false
	}
	data, ok := e.Payload.(*protocol.ScrollEventData)
	if !ok || data == nil {
		return false
	}
	s.MemorySurface.Scroll(ScrollPosition{Top: data.ScrollTop, Left: data.ScrollLeft})
	return true
}
