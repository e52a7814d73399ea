package supervisor

import "github.com/marmos91/supercore/pkg/frame"

// labelRequest carries the struct-tag boundary for SetLabel: x, y, and
// size are normalized viewport fractions and must fall in [0, 1].
type labelRequest struct {
	X    float64 `validate:"gte=0,lte=1"`
	Y    float64 `validate:"gte=0,lte=1"`
	Size float64 `validate:"gte=0,lte=1"`
}

// SetLabel sets or replaces the on-screen overlay label with the given
// id. Deferred — rides the next outbound frame alongside queued field
// mutations; no round trip is ever needed since
// the simulator never replies to a label write.
func (s *Supervisor) SetLabel(id uint16, text, font string, x, y, size float64, color uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("set_label") {
		return false
	}
	if err := s.validate.Struct(labelRequest{X: x, Y: y, Size: size}); err != nil {
		diagnostic("set_label", err.Error(), false)
		return false
	}
	s.state.Labels.Set(frame.Label{
		ID:    id,
		Text:  text,
		Font:  font,
		X:     x,
		Y:     y,
		Size:  size,
		Color: color,
	})
	return true
}
