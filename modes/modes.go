// Package modes implements the boolean mode table and its save/restore
// and mutual-exclusion semantics.
package modes

// Mode identifies one of the terminal's boolean modes.
type Mode int

const (
	Ansi Mode = iota
	NewLine
	AppCuKeys
	AppKeyPad
	AppScreen
	Mouse1000
	Mouse1001
	Mouse1002
	Mouse1003
	Mouse1005
	Mouse1006
	Mouse1007
	Mouse1015
	Columns132
	Allow132Columns
	BracketedPaste

	// Screen-scoped modes: the core forwards these to both Screens,
	// and keeps a copy in its own current/saved tables so
	// that save/restore is symmetric across an AppScreen switch.
	Cursor
	Insert
	Origin
	Wrap
	ScreenReverse

	modeCount
)

// screenForwarded reports whether m must additionally be forwarded to
// the active Screen's own mode table. This spells out the forwarded
// set directly rather than relying on any ordinal cutoff in the Mode
// enum, since the enum's declaration order is not a meaningful
// invariant.
func screenForwarded(m Mode) bool {
	switch m {
	case Cursor, Insert, Origin, Wrap, ScreenReverse, NewLine:
		return true
	}
	return false
}

// mouseTrackingModes are mutually exclusive: only one can be active.
var mouseTrackingModes = [...]Mode{Mouse1000, Mouse1001, Mouse1002, Mouse1003}

// mouseEncodingModes are mutually exclusive: only one can be active.
var mouseEncodingModes = [...]Mode{Mouse1005, Mouse1006, Mouse1015}

// ScreenModeSetter receives the subset of mode state a Screen owns
// directly; the core keeps its own shadow copy (forwarded via
// SetScreenMode) so restoreMode after a screen switch is symmetric.
type ScreenModeSetter interface {
	SetScreenMode(m Mode, on bool)
}

// Observer receives the side effects attached to mode transitions.
// All methods are called synchronously from SetMode/ResetMode and from
// RestoreMode (which replays the saved value as a transition); SaveMode
// and Reset call none of them.
type Observer interface {
	MouseTrackingRequested(enabled bool)
	AlternateScrollingChanged(enabled bool)
	BracketedPasteChanged(enabled bool)
	ColumnsChanged(columns int)
	AppScreenChanged(enabled bool)
	ScreenModeSetter
}

// Set holds the current and saved values of every mode, plus the
// Observer side-effect sink.
type Set struct {
	current  [modeCount]bool
	saved    [modeCount]bool
	observer Observer
}

// New returns a Set with every mode at its power-on default: Ansi is
// on, everything else off.
func New(observer Observer) *Set {
	s := &Set{observer: observer}
	s.current[Ansi] = true
	return s
}

func (s *Set) Get(m Mode) bool {
	return s.current[m]
}

// SetMode turns mode m on, applying its associated side effects.
func (s *Set) SetMode(m Mode) {
	s.transition(m, true)
}

// ResetMode turns mode m off, applying the same side effects in reverse.
func (s *Set) ResetMode(m Mode) {
	s.transition(m, false)
}

func (s *Set) transition(m Mode, on bool) {
	switch m {
	case Columns132:
		if on && !s.current[Allow132Columns] {
			return // silently no-op on set unless 132-column mode is allowed
		}
		s.current[Columns132] = on
		if s.observer != nil {
			if on {
				s.observer.ColumnsChanged(132)
			} else {
				s.observer.ColumnsChanged(80)
			}
		}
		return

	case Mouse1000, Mouse1001, Mouse1002, Mouse1003:
		for _, mm := range mouseTrackingModes {
			s.current[mm] = false
		}
		if on {
			s.current[m] = true
		}
		if s.observer != nil {
			s.observer.MouseTrackingRequested(on)
		}
		return

	case Mouse1005, Mouse1006, Mouse1015:
		for _, mm := range mouseEncodingModes {
			if mm != m {
				s.current[mm] = false
			}
		}
		s.current[m] = on
		return

	case Mouse1007:
		s.current[m] = on
		if s.observer != nil {
			s.observer.AlternateScrollingChanged(on)
		}
		return

	case BracketedPaste:
		s.current[m] = on
		if s.observer != nil {
			s.observer.BracketedPasteChanged(on)
		}
		return

	case AppScreen:
		s.current[m] = on
		if s.observer != nil {
			s.observer.AppScreenChanged(on)
		}
		return
	}

	s.current[m] = on
	if screenForwarded(m) && s.observer != nil {
		s.observer.SetScreenMode(m, on)
	}
}

// SaveMode snapshots m's current value.
func (s *Set) SaveMode(m Mode) {
	s.saved[m] = s.current[m]
}

// RestoreMode sets m back to its last saved value, regardless of any
// intervening set/reset. Side effects still fire, since restore is
// implemented as transition(m, saved).
func (s *Set) RestoreMode(m Mode) {
	s.transition(m, s.saved[m])
}

// Reset restores power-on defaults: Allow132Columns and Mouse1007
// survive, Ansi is forced on, everything else clears.
func (s *Set) Reset() {
	allow132 := s.current[Allow132Columns]
	mouse1007 := s.current[Mouse1007]
	for i := range s.current {
		s.current[i] = false
	}
	s.current[Ansi] = true
	s.current[Allow132Columns] = allow132
	s.current[Mouse1007] = mouse1007
}
