package recurrence

import "testing"

func TestFromKind(t *testing.T) {
	tests := []struct {
		kind string
		want string
		ok   bool
	}{
		{"weekly", "FREQ=WEEKLY", true},
		{"biweekly", "FREQ=WEEKLY;INTERVAL=2", true},
		{"monthly", "FREQ=MONTHLY", true},
		{"Weekly", "FREQ=WEEKLY", true},
		{" monthly ", "FREQ=MONTHLY", true},
		{"daily", "", false},
		{"fortnightly", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		rule, ok := FromKind(tt.kind)
		if ok != tt.ok {
			t.Errorf("FromKind(%q) ok = %v, want %v", tt.kind, ok, tt.ok)
			continue
		}
		if ok && rule.String() != tt.want {
			t.Errorf("FromKind(%q).String() = %q, want %q", tt.kind, rule.String(), tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Freq: Weekly, Interval: 1}, "Repeats weekly"},
		{Rule{Freq: Weekly, Interval: 2}, "Repeats every 2 weeks"},
		{Rule{Freq: Monthly, Interval: 1}, "Repeats monthly"},
	}

	for _, tt := range tests {
		if got := tt.rule.Describe(); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}
