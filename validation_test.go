package dkg

import "testing"

func TestParameterValidator(t *testing.T) {
	v := NewDefaultParameterValidator()

	cases := []struct {
		name      string
		threshold int
		count     int
		valid     bool
		level     SecurityLevel
		byzantine bool
	}{
		{"zero threshold", 0, 5, false, SecurityLevelLow, false},
		{"threshold above count", 6, 5, false, SecurityLevelLow, false},
		{"count above maximum", 600, 2000, false, SecurityLevelLow, false},
		{"threshold of one", 1, 5, true, SecurityLevelLow, false},
		{"minority threshold", 2, 10, true, SecurityLevelLow, false},
		{"simple majority", 6, 10, true, SecurityLevelMedium, false},
		{"byzantine tolerant", 7, 10, true, SecurityLevelHigh, true},
		{"near unanimous", 9, 10, true, SecurityLevelHigh, true},
	}
	for _, tc := range cases {
		report := v.Validate(tc.threshold, tc.count)
		if report.Valid != tc.valid {
			t.Fatalf("%s: expected valid=%v, got %v (errors: %v)",
				tc.name, tc.valid, report.Valid, report.Errors)
		}
		if report.SecurityLevel != tc.level {
			t.Fatalf("%s: expected level %s, got %s", tc.name, tc.level, report.SecurityLevel)
		}
		if report.ByzantineFaultTolerant != tc.byzantine {
			t.Fatalf("%s: expected byzantine=%v, got %v",
				tc.name, tc.byzantine, report.ByzantineFaultTolerant)
		}
	}
}

func TestParameterValidatorInvalidReportsCarryErrors(t *testing.T) {
	v := NewDefaultParameterValidator()

	report := v.Validate(0, 0)
	if report.Valid {
		t.Fatal("degenerate parameters accepted")
	}
	if len(report.Errors) == 0 {
		t.Fatal("invalid report carries no errors")
	}
}

func TestParameterValidatorSmallCeremonyWarning(t *testing.T) {
	v := NewDefaultParameterValidator()

	report := v.Validate(2, 2)
	if !report.Valid {
		t.Fatalf("t=n=2 should be valid: %v", report.Errors)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected a warning for a ceremony below the recommended size")
	}
}
