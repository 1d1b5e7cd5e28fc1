package domain

import "testing"

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		current  PostStatus
		confirms int
		refutes  int
		want     PostStatus
	}{
		{"pending below thresholds", PostStatusPending, 4, 2, PostStatusPending},
		{"fifth confirm publishes", PostStatusPending, 5, 0, PostStatusPublished},
		{"third refute suspects pending", PostStatusPending, 0, 3, PostStatusSuspect},
		{"third refute suspects published", PostStatusPublished, 0, 3, PostStatusSuspect},
		{"refutes win ties", PostStatusPending, 5, 3, PostStatusSuspect},
		{"refutes win even with many confirms", PostStatusPending, 20, 3, PostStatusSuspect},
		{"confirms never promote published", PostStatusPublished, 10, 0, PostStatusPublished},
		{"confirms never rehabilitate suspect", PostStatusSuspect, 10, 0, PostStatusSuspect},
		{"archived sticky under confirms", PostStatusArchived, 10, 0, PostStatusArchived},
		{"archived sticky under refutes", PostStatusArchived, 0, 10, PostStatusArchived},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeriveStatus(tc.current, tc.confirms, tc.refutes); got != tc.want {
				t.Fatalf("DeriveStatus(%s, %d, %d) = %s, want %s", tc.current, tc.confirms, tc.refutes, got, tc.want)
			}
		})
	}
}

func TestVisibilityScope(t *testing.T) {
	t.Parallel()

	if !(VisibilityScope{}).IsUniversityWide() {
		t.Fatalf("empty scope must be university-wide")
	}
	est := EstablishmentFS
	if (VisibilityScope{Establishment: &est}).IsUniversityWide() {
		t.Fatalf("establishment-scoped post must not be university-wide")
	}
}

func TestDepartmentEstablishment(t *testing.T) {
	t.Parallel()

	if got := DepartmentComputerScience.Establishment(); got != EstablishmentFS {
		t.Fatalf("COMPUTER_SCIENCE resolved to %s, want %s", got, EstablishmentFS)
	}
	if !IsValidDepartment("COMPUTER_SCIENCE") {
		t.Fatalf("COMPUTER_SCIENCE must be a valid department")
	}
	if IsValidDepartment("ASTROLOGY") {
		t.Fatalf("unknown department must be rejected")
	}
}
