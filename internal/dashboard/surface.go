package dashboard

import "sync"

// Surface is a chart container. Every render replaces its whole content;
// nothing of the previous chart survives a Replace.
type Surface struct {
	mu         sync.RWMutex
	name       string
	svg        []byte
	generation int
}

func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

// Replace destroys the current chart and installs a freshly built one
func (s *Surface) Replace(svg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.svg = append([]byte(nil), svg...)
	s.generation++
}

// adopt installs the chart rendered into a scratch surface. A scratch
// surface nothing was rendered into leaves s as it is.
func (s *Surface) adopt(from *Surface) {
	if from.Generation() == 0 {
		return
	}
	s.Replace(from.Bytes())
}

// Bytes returns a copy of the current chart document
func (s *Surface) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.svg...)
}

// Generation counts how many times the surface was rebuilt
func (s *Surface) Generation() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Surface) Name() string { return s.name }
