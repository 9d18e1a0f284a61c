package sat

import "testing"

func TestLBool_Opposite(t *testing.T) {
	tests := []struct {
		in, want LBool
	}{
		{True, False},
		{False, True},
		{Unknown, Unknown},
	}
	for _, tc := range tests {
		if got := tc.in.Opposite(); got != tc.want {
			t.Errorf("%s.Opposite() = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestLift(t *testing.T) {
	if got := Lift(true); got != True {
		t.Errorf("Lift(true) = %s, want %s", got, True)
	}
	if got := Lift(false); got != False {
		t.Errorf("Lift(false) = %s, want %s", got, False)
	}
}
