package tool

import (
	"strings"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// SearchAvailablePolicies filters the catalog category to entries whose
// inclusive [min_age, max_age] range contains age. Entries without an age
// range (the home category) are returned unfiltered.
func SearchAvailablePolicies(age int, category string) contract.PolicyOptions {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "life"
	}

	out := contract.PolicyOptions{
		Category: category,
		Criteria: contract.PolicyCriteria{Age: age},
		Policies: []contract.PolicyRecord{},
	}

	for _, entry := range catalog.Policies[category] {
		if entry.MinAge != nil && age < *entry.MinAge {
			continue
		}
		if entry.MaxAge != nil && age > *entry.MaxAge {
			continue
		}
		out.Policies = append(out.Policies, contract.PolicyRecord{
			Name:        entry.Name,
			Type:        entry.Type,
			MinAge:      entry.MinAge,
			MaxAge:      entry.MaxAge,
			Description: entry.Description,
		})
	}

	out.Found = len(out.Policies)
	return out
}
