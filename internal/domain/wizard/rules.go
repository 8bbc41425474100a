package wizard

import (
	"strings"
)

// Rule checks one step's required fields. It returns an empty string on
// pass and a user-displayable message on failure, and never mutates state.
type Rule func(s *State) string

func basicInfoRule(s *State) string {
	if s.Category == "" || strings.TrimSpace(s.Title) == "" {
		return "Please select a category and enter a title"
	}
	if !s.Category.Valid() {
		return "Please select a valid category"
	}
	return ""
}

func detailsRule(s *State) string {
	if strings.TrimSpace(s.Description) == "" {
		return "Please describe the issue"
	}
	return ""
}

func locationRule(s *State) string {
	if s.Location == nil {
		return "Please provide the complaint location"
	}
	return ""
}

// reviewRule never gates; failures on the review step come from the
// submission itself.
func reviewRule(s *State) string {
	return ""
}

func RuleFor(step Step) Rule {
	switch step {
	case StepBasicInfo:
		return basicInfoRule
	case StepDetails:
		return detailsRule
	case StepLocation:
		return locationRule
	case StepReview:
		return reviewRule
	}
	return reviewRule
}
