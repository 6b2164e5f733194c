package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Fatalf("Min = %d", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Fatalf("Max = %d", got)
	}
	if got := Abs(-9); got != 9 {
		t.Fatalf("Abs = %d", got)
	}
	if got := Abs(9); got != 9 {
		t.Fatalf("Abs = %d", got)
	}
	if got := Min(2.5, 2.25); got != 2.25 {
		t.Fatalf("Min float = %v", got)
	}
}
