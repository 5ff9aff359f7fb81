package input

// Encoder is a rotary encoder polled once per tick. Implementations must
// never block.
type Encoder interface {
	// Poll returns the detent steps accumulated since the last call
	// (signed, usually -1/0/+1) and whether the button was pressed.
	Poll() (delta int, pressed bool)
}

// ScriptedEncoder replays a fixed sequence of poll results, then reports
// rest. Used by the simulator and in tests.
type ScriptedEncoder struct {
	Steps []ScriptedStep
	pos   int
}

// ScriptedStep is one scripted poll result.
type ScriptedStep struct {
	Delta   int
	Pressed bool
}

func (s *ScriptedEncoder) Poll() (int, bool) {
	if s.pos >= len(s.Steps) {
		return 0, false
	}
	step := s.Steps[s.pos]
	s.pos++
	return step.Delta, step.Pressed
}
