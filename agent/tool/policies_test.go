package tool

import (
	"testing"

	"github.com/coverwise/advisor-agent/agent/contract"
)

func TestSearchAvailablePoliciesFiltersByAge(t *testing.T) {
	t.Parallel()

	out := SearchAvailablePolicies(35, "life")
	if out.Category != "life" {
		t.Fatalf("unexpected category: %s", out.Category)
	}
	if out.Criteria.Age != 35 {
		t.Fatalf("unexpected criteria age: %d", out.Criteria.Age)
	}
	if out.Found != len(out.Policies) {
		t.Fatalf("found=%d does not match policies len=%d", out.Found, len(out.Policies))
	}
	for _, p := range out.Policies {
		if p.MinAge != nil && 35 < *p.MinAge {
			t.Fatalf("policy %s below min age", p.Name)
		}
		if p.MaxAge != nil && 35 > *p.MaxAge {
			t.Fatalf("policy %s above max age", p.Name)
		}
	}
}

func TestSearchAvailablePoliciesBoundariesInclusive(t *testing.T) {
	t.Parallel()

	// TermShield 20 covers [18, 60].
	for _, age := range []int{18, 60} {
		out := SearchAvailablePolicies(age, "life")
		if !containsPolicy(out.Policies, "TermShield 20") {
			t.Fatalf("TermShield 20 missing at boundary age %d", age)
		}
	}
	if containsPolicy(SearchAvailablePolicies(61, "life").Policies, "TermShield 20") {
		t.Fatal("TermShield 20 present above max age")
	}
}

func TestSearchAvailablePoliciesOutOfAllRanges(t *testing.T) {
	t.Parallel()

	out := SearchAvailablePolicies(110, "life")
	if out.Found != 0 || len(out.Policies) != 0 {
		t.Fatalf("expected empty result at age 110, got %d", out.Found)
	}
	if out.Policies == nil {
		t.Fatal("policies must be an empty list, not nil")
	}
}

func TestSearchAvailablePoliciesHomeUnfiltered(t *testing.T) {
	t.Parallel()

	young := SearchAvailablePolicies(5, "home")
	old := SearchAvailablePolicies(99, "home")
	if young.Found == 0 {
		t.Fatal("home category must not be empty")
	}
	if young.Found != old.Found {
		t.Fatalf("home category must ignore age: %d vs %d", young.Found, old.Found)
	}
}

func TestSearchAvailablePoliciesUnknownCategory(t *testing.T) {
	t.Parallel()

	out := SearchAvailablePolicies(35, "pet")
	if out.Found != 0 {
		t.Fatalf("unknown category must be empty, got %d", out.Found)
	}
}

func containsPolicy(policies []contract.PolicyRecord, name string) bool {
	for _, p := range policies {
		if p.Name == name {
			return true
		}
	}
	return false
}
