package accel

import "testing"

func TestParseSampleLine(t *testing.T) {
	cases := []struct {
		line string
		want RawSample
		ok   bool
	}{
		{"0.12,-0.30,9.81\n", RawSample{X: 0.12, Y: -0.3, Z: 9.81}, true},
		{" 1.0 , 2.0 , 3.0 \r\n", RawSample{X: 1, Y: 2, Z: 3}, true},
		{"1.0,2.0", RawSample{}, false},
		{"1.0,2.0,3.0,4.0", RawSample{}, false},
		{"a,b,c", RawSample{}, false},
		{"", RawSample{}, false},
	}

	for _, tc := range cases {
		got, ok := parseSampleLine(tc.line)
		if ok != tc.ok {
			t.Errorf("parseSampleLine(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("parseSampleLine(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}
