package model

import "testing"

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		10:  "10th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		23:  "23rd",
		101: "101st",
		111: "111th",
		112: "112th",
	}
	for n, want := range cases {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRepr(t *testing.T) {
	if got := Repr("foo"); got != "'foo'" {
		t.Errorf("string repr = %q", got)
	}
	if got := Repr(3); got != "3" {
		t.Errorf("int repr = %q", got)
	}
	if got := Repr(nil); got != "nil" {
		t.Errorf("nil repr = %q", got)
	}
	if got := Repr(true); got != "true" {
		t.Errorf("bool repr = %q", got)
	}
}
