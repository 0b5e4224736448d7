package content

import (
	"testing"

	"github.com/example/jeeprep/internal/domain"
)

func TestNormalize(t *testing.T) {
	e := Entry{
		Subject: domain.Physics,
		Chapter: "  Rotational Motion \r\n",
		Topic:   "Moment OF Inertia",
	}
	want := "physics\nrotational motion\nmoment of inertia"
	if got := Normalize(e); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestFingerprintStability(t *testing.T) {
	a := Entry{Subject: domain.Maths, Chapter: "Calculus", Topic: "Chain rule"}
	b := Entry{Subject: domain.Maths, Chapter: " calculus ", Topic: "CHAIN RULE"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("fingerprint should ignore case and surrounding whitespace")
	}
}

func TestFingerprintIgnoresHints(t *testing.T) {
	a := Entry{Subject: domain.Maths, Chapter: "Calculus", Topic: "Chain rule", Hints: "dy/dx = dy/du * du/dx"}
	b := Entry{Subject: domain.Maths, Chapter: "Calculus", Topic: "Chain rule", Hints: "reworded hint"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("rewording a hint must not change the fingerprint")
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	a := Entry{Subject: domain.Physics, Chapter: "ab", Topic: "c"}
	b := Entry{Subject: domain.Physics, Chapter: "a", Topic: "bc"}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fields running together must not collide")
	}
}
