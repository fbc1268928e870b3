package status

import "sync/atomic"

// MaxStringLen truncates stored labels so HUD columns stay aligned
const MaxStringLen = 24

// AtomicString holds a short label such as the current cast state
type AtomicString struct {
	ptr atomic.Pointer[string]
}

func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
