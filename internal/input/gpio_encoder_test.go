package input

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

// fakePin is a settable pin level; only Read is used by Poll.
type fakePin struct {
	gpio.PinIn
	level gpio.Level
}

func (p *fakePin) Read() gpio.Level { return p.level }

func newFakeEncoder(pulsesPerDetent int) (*gpioEncoder, *fakePin, *fakePin, *fakePin) {
	a := &fakePin{level: gpio.Low}
	b := &fakePin{level: gpio.Low}
	btn := &fakePin{level: gpio.High} // active-low, released
	e := &gpioEncoder{
		pinA:            a,
		pinB:            b,
		button:          btn,
		pulsesPerDetent: pulsesPerDetent,
	}
	e.prev = e.readAB()
	return e, a, b, btn
}

// step sets the A/B levels and polls once, returning the detent delta.
func step(e *gpioEncoder, a, b *fakePin, levelA, levelB gpio.Level) int {
	a.level = levelA
	b.level = levelB
	delta, _ := e.Poll()
	return delta
}

func TestQuadratureFullCycleIsOneDetent(t *testing.T) {
	e, a, b, _ := newFakeEncoder(4)

	// Clockwise gray-code cycle: 00 → 10 → 11 → 01 → 00.
	total := 0
	total += step(e, a, b, gpio.High, gpio.Low)
	total += step(e, a, b, gpio.High, gpio.High)
	total += step(e, a, b, gpio.Low, gpio.High)
	total += step(e, a, b, gpio.Low, gpio.Low)
	if total != 1 {
		t.Fatalf("clockwise cycle delta = %d, want 1", total)
	}

	// Counter-clockwise: 00 → 01 → 11 → 10 → 00.
	total = 0
	total += step(e, a, b, gpio.Low, gpio.High)
	total += step(e, a, b, gpio.High, gpio.High)
	total += step(e, a, b, gpio.High, gpio.Low)
	total += step(e, a, b, gpio.Low, gpio.Low)
	if total != -1 {
		t.Fatalf("counter-clockwise cycle delta = %d, want -1", total)
	}
}

func TestQuadraturePulsesAccumulateAcrossPolls(t *testing.T) {
	e, a, b, _ := newFakeEncoder(4)

	// Three valid transitions: pulses build up but stay under a detent.
	if d := step(e, a, b, gpio.High, gpio.Low); d != 0 {
		t.Fatalf("delta after 1 pulse = %d, want 0", d)
	}
	if d := step(e, a, b, gpio.High, gpio.High); d != 0 {
		t.Fatalf("delta after 2 pulses = %d, want 0", d)
	}
	if d := step(e, a, b, gpio.Low, gpio.High); d != 0 {
		t.Fatalf("delta after 3 pulses = %d, want 0", d)
	}
	if d := step(e, a, b, gpio.Low, gpio.Low); d != 1 {
		t.Fatalf("delta after 4 pulses = %d, want 1", d)
	}
}

func TestQuadratureBounceSkippingAStateCountsNothing(t *testing.T) {
	e, a, b, _ := newFakeEncoder(1)

	// 00 → 11 skips a gray-code state: contact bounce, not rotation.
	if d := step(e, a, b, gpio.High, gpio.High); d != 0 {
		t.Fatalf("skipped-state transition delta = %d, want 0", d)
	}
	// And straight back: still nothing.
	if d := step(e, a, b, gpio.Low, gpio.Low); d != 0 {
		t.Fatalf("skipped-state return delta = %d, want 0", d)
	}
}

func TestButtonPressReportsSingleEdge(t *testing.T) {
	e, _, _, btn := newFakeEncoder(4)

	// Press (active-low): first poll is the unstable tick, second reports.
	btn.level = gpio.Low
	if _, pressed := e.Poll(); pressed {
		t.Fatal("press reported before the level was stable")
	}
	if _, pressed := e.Poll(); !pressed {
		t.Fatal("stable press not reported")
	}

	// Held down: no repeat events.
	for i := 0; i < 5; i++ {
		if _, pressed := e.Poll(); pressed {
			t.Fatalf("poll %d: held button reported a second press", i)
		}
	}

	// Release and press again: exactly one more edge.
	btn.level = gpio.High
	e.Poll()
	e.Poll()
	btn.level = gpio.Low
	e.Poll()
	if _, pressed := e.Poll(); !pressed {
		t.Fatal("second press not reported after release")
	}
}

func TestButtonBounceIsIgnored(t *testing.T) {
	e, _, _, btn := newFakeEncoder(4)

	// One low tick followed by high again: never stable, never an event.
	btn.level = gpio.Low
	if _, pressed := e.Poll(); pressed {
		t.Fatal("single-tick glitch reported a press")
	}
	btn.level = gpio.High
	for i := 0; i < 3; i++ {
		if _, pressed := e.Poll(); pressed {
			t.Fatalf("poll %d: bounce produced a press", i)
		}
	}
}
