package gtm

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	digitsRE      = regexp.MustCompile(`^[0-9]+$`)
	ga4NameRE     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	accountPathRE = regexp.MustCompile(`^accounts/[0-9]+`)
)

// ValidateAccountID checks that id is a numeric GTM account ID. Real account
// IDs are at least ten digits long.
func ValidateAccountID(id string) error {
	if id == "" {
		return &ValidationError{Field: "account_id", Value: id, Expected: "a non-empty numeric ID"}
	}
	if !digitsRE.MatchString(id) {
		return &ValidationError{Field: "account_id", Value: id, Expected: "digits only"}
	}
	if len(id) < MinAccountIDDigits {
		return &ValidationError{Field: "account_id", Value: id, Expected: fmt.Sprintf("at least %d digits", MinAccountIDDigits)}
	}
	return nil
}

// ValidateContainerID checks that id is a numeric container ID.
func ValidateContainerID(id string) error {
	return validateNumericID(id, "container_id")
}

// ValidateWorkspaceID checks that id is a numeric workspace ID.
func ValidateWorkspaceID(id string) error {
	return validateNumericID(id, "workspace_id")
}

func validateNumericID(id, field string) error {
	if id == "" {
		return &ValidationError{Field: field, Value: id, Expected: "a non-empty numeric ID"}
	}
	if !digitsRE.MatchString(id) {
		return &ValidationError{Field: field, Value: id, Expected: "digits only"}
	}
	return nil
}

// ValidateName checks a display name against GTM's length ceiling. maxLen of
// zero means the default ceiling.
func ValidateName(name, field string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = MaxNameLength
	}
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: field, Value: name, Expected: "a non-empty name"}
	}
	if len(name) > maxLen {
		return &ValidationError{Field: field, Value: name, Expected: fmt.Sprintf("at most %d characters", maxLen)}
	}
	return nil
}

// ValidateNotes checks free-text notes against GTM's length ceiling.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return &ValidationError{Field: "notes", Value: notes[:64] + "...", Expected: fmt.Sprintf("at most %d characters", MaxNotesLength)}
	}
	return nil
}

// ValidateGTMPath checks that path is rooted at an account. When expectedType
// is non-empty the path must also contain that collection segment, e.g.
// expectedType "workspace" requires a "workspaces/" segment.
func ValidateGTMPath(path, expectedType string) error {
	if path == "" {
		return &ValidationError{Field: "path", Value: path, Expected: "a non-empty GTM path"}
	}
	if !accountPathRE.MatchString(path) {
		return &ValidationError{Field: "path", Value: path, Expected: `a path starting with "accounts/{id}"`}
	}
	if expectedType != "" && !strings.Contains(path, "/"+expectedType+"s/") {
		return &ValidationError{Field: "path", Value: path, Expected: fmt.Sprintf("a path containing a %ss segment", expectedType)}
	}
	return nil
}

// ValidateGA4EventName checks a GA4 event name: a letter followed by letters,
// digits or underscores, at most 40 characters.
func ValidateGA4EventName(name string) error {
	return validateGA4Identifier(name, "event_name")
}

// ValidateGA4ParameterName checks a GA4 event parameter name, which follows
// the same naming rules as event names.
func ValidateGA4ParameterName(name string) error {
	return validateGA4Identifier(name, "parameter_name")
}

func validateGA4Identifier(name, field string) error {
	if name == "" {
		return &ValidationError{Field: field, Value: name, Expected: "a non-empty name"}
	}
	if len(name) > MaxGA4EventNameLength {
		return &ValidationError{Field: field, Value: name, Expected: fmt.Sprintf("at most %d characters", MaxGA4EventNameLength)}
	}
	if !ga4NameRE.MatchString(name) {
		return &ValidationError{Field: field, Value: name, Expected: "a letter followed by letters, digits or underscores"}
	}
	return nil
}

// ValidateScrollPercentages checks that every value is within [0,100] and
// returns a deduplicated ascending copy.
func ValidateScrollPercentages(percentages []int) ([]int, error) {
	if len(percentages) == 0 {
		return nil, &ValidationError{Field: "scroll_percentages", Value: "", Expected: "at least one percentage"}
	}
	seen := make(map[int]bool, len(percentages))
	out := make([]int, 0, len(percentages))
	for _, p := range percentages {
		if p < 0 || p > 100 {
			return nil, &ValidationError{Field: "scroll_percentages", Value: fmt.Sprintf("%d", p), Expected: "an integer between 0 and 100"}
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out, nil
}

// ValidateFilterType checks a trigger condition comparison operator.
func ValidateFilterType(filterType string) error {
	if !filterTypes[filterType] {
		return &ValidationError{Field: "filter_type", Value: filterType, Expected: "a known comparison operator such as EQUALS or CONTAINS"}
	}
	return nil
}

// ValidateTriggerType checks a trigger type against the API enum.
func ValidateTriggerType(triggerType string) error {
	if !triggerTypes[triggerType] {
		return &ValidationError{Field: "trigger_type", Value: triggerType, Expected: "a known trigger type such as pageview or customEvent"}
	}
	return nil
}

// ValidateTriggerIDs checks a firing trigger ID list.
func ValidateTriggerIDs(ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "trigger_ids", Value: "", Expected: "at least one trigger ID"}
	}
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: "trigger_ids", Value: "", Expected: "non-empty trigger IDs"}
		}
	}
	return nil
}
