package gesture

import (
	"testing"

	"github.com/relabs-tech/starrun/internal/filter"
)

var testThresholds = Thresholds{
	DeadAngle:  10,
	Roll:       12,
	Pitch:      18,
	CrossLimit: 15,
}

func att(roll, pitch float64) filter.Attitude {
	return filter.Attitude{Roll: roll, Pitch: pitch}
}

// feed runs n identical updates and returns every confirmed event.
func feed(c *Classifier, a filter.Attitude, n int) []Gesture {
	var events []Gesture
	for i := 0; i < n; i++ {
		if g, ok := c.Update(a); ok {
			events = append(events, g)
		}
	}
	return events
}

func TestBands(t *testing.T) {
	cases := []struct {
		name string
		att  filter.Attitude
		want Gesture
	}{
		{"bank left", att(-20, 0), BankLeft},
		{"bank right", att(20, 0), BankRight},
		{"nose up", att(0, 25), NoseUp},
		{"nose down", att(0, -25), NoseDown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(testThresholds, 2)
			events := feed(c, tc.att, 5)
			if len(events) != 1 || events[0] != tc.want {
				t.Fatalf("events = %v, want exactly one %s", events, tc.want)
			}
		})
	}
}

func TestDebounceSuppressesShortBreach(t *testing.T) {
	c := NewClassifier(testThresholds, 3)

	// Held for two ticks, one short of the window.
	if events := feed(c, att(-20, 0), 2); len(events) != 0 {
		t.Fatalf("short breach produced events: %v", events)
	}
	// Back to an in-between angle: candidate dissolves.
	c.Update(att(-11, 0))
	// Two ticks again must not fire either — the count restarted.
	if events := feed(c, att(-20, 0), 2); len(events) != 0 {
		t.Fatalf("restarted breach produced events: %v", events)
	}
}

func TestDebounceFiresExactlyOnce(t *testing.T) {
	c := NewClassifier(testThresholds, 2)

	// Held well past the window: one event, not one per tick.
	events := feed(c, att(20, 0), 50)
	if len(events) != 1 || events[0] != BankRight {
		t.Fatalf("events = %v, want exactly one BankRight", events)
	}
}

func TestNeutralGating(t *testing.T) {
	c := NewClassifier(testThresholds, 2)

	if events := feed(c, att(0, 25), 10); len(events) != 1 {
		t.Fatalf("first gesture: events = %v", events)
	}

	// Straight into another gesture without returning level: suppressed.
	if events := feed(c, att(-20, 0), 10); len(events) != 0 {
		t.Fatalf("gesture before neutral produced events: %v", events)
	}

	// One level tick re-arms.
	c.Update(att(0, 0))
	if !c.Neutral() {
		t.Fatal("classifier not neutral after level tick")
	}
	if events := feed(c, att(-20, 0), 10); len(events) != 1 || events[0] != BankLeft {
		t.Fatalf("re-armed gesture: events = %v, want one BankLeft", events)
	}
}

func TestDiagonalTiltYieldsNoCandidate(t *testing.T) {
	c := NewClassifier(testThresholds, 1)

	// Both axes past their bands and past the lockout margin.
	if events := feed(c, att(20, 25), 10); len(events) != 0 {
		t.Fatalf("diagonal tilt produced events: %v", events)
	}
}

func TestCandidateSwitchRestartsHold(t *testing.T) {
	c := NewClassifier(testThresholds, 2)

	c.Update(att(20, 0))                       // BankRight, hold 1
	if g, ok := c.Update(att(-20, 0)); ok {    // switch to BankLeft, hold restarts at 1
		t.Fatalf("unexpected event %s on candidate switch", g)
	}
	if g, ok := c.Update(att(-20, 0)); !ok || g != BankLeft {
		t.Fatalf("got (%s, %v), want confirmed BankLeft", g, ok)
	}
}

func TestTightnessWidensBands(t *testing.T) {
	c := NewClassifier(testThresholds, 1)

	// 14° roll confirms at tightness 1.0 (band 12°)...
	if events := feed(c, att(14, 0), 3); len(events) != 1 {
		t.Fatalf("tightness 1.0: events = %v", events)
	}

	c.Update(att(0, 0)) // re-arm
	c.SetTightness(1.5) // hard: band is now 18°
	if events := feed(c, att(14, 0), 10); len(events) != 0 {
		t.Fatalf("tightness 1.5: 14° roll still fires: %v", events)
	}
	if events := feed(c, att(20, 0), 3); len(events) != 1 {
		t.Fatalf("tightness 1.5: 20° roll should fire: %v", events)
	}
}

func TestNeutralOnlyWhenIdleAndLevel(t *testing.T) {
	c := NewClassifier(testThresholds, 2)

	c.Update(att(0, 0))
	if !c.Neutral() {
		t.Fatal("level device should be neutral")
	}

	c.Update(att(20, 0))
	if c.Neutral() {
		t.Fatal("tilted device reported neutral")
	}

	feed(c, att(20, 0), 5) // confirm + consume, now waiting for neutral
	if c.State() != StateWaitNeutral {
		t.Fatalf("state = %v, want StateWaitNeutral", c.State())
	}
	if c.Neutral() {
		t.Fatal("waiting-for-neutral reported neutral")
	}
}
