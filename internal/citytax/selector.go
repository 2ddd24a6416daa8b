package citytax

import (
	"time"

	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/samber/lo"
)

// RuleCovers reports whether day falls inside the rule's validity window.
func RuleCovers(rule model.TaxRule, day time.Time) bool {
	day = DateOf(day)
	if day.Before(DateOf(rule.ValidFrom)) {
		return false
	}
	return rule.ValidUntil == nil || !day.After(DateOf(*rule.ValidUntil))
}

// RulesOverlap reports whether two validity windows share at least one day.
func RulesOverlap(a, b model.TaxRule) bool {
	aFrom, bFrom := DateOf(a.ValidFrom), DateOf(b.ValidFrom)
	if a.ValidUntil != nil && DateOf(*a.ValidUntil).Before(bFrom) {
		return false
	}
	if b.ValidUntil != nil && DateOf(*b.ValidUntil).Before(aFrom) {
		return false
	}
	return true
}

// SelectRule returns the single rule of a tenant valid on referenceDate.
// Zero matches fail with ErrNoApplicableRule and several with
// ErrAmbiguousRuleConfiguration; overlapping windows are never resolved
// by picking one of them.
func SelectRule(rules []model.TaxRule, referenceDate time.Time) (*model.TaxRule, error) {
	day := DateOf(referenceDate)

	matches := lo.Filter(rules, func(rule model.TaxRule, _ int) bool {
		return RuleCovers(rule, day)
	})

	switch len(matches) {
	case 0:
		return nil, ierr.NewErrorf("no tax rule valid on %s", day.Format(DateLayout)).
			WithHintf("No tax rule configured for %s, contact your administrator", day.Format(DateLayout)).
			WithReportableDetails(map[string]any{
				"reference_date": day.Format(DateLayout),
				"rules":          len(rules),
			}).
			Mark(ierr.ErrNoApplicableRule)
	case 1:
		rule := matches[0]
		return &rule, nil
	default:
		ids := lo.Map(matches, func(rule model.TaxRule, _ int) string {
			return rule.ID.String()
		})
		return nil, ierr.NewErrorf("%d tax rules valid on %s", len(matches), day.Format(DateLayout)).
			WithHint("Tax rules have overlapping validity periods, an administrator must correct them").
			WithReportableDetails(map[string]any{
				"reference_date": day.Format(DateLayout),
				"rule_ids":       ids,
			}).
			Mark(ierr.ErrAmbiguousRuleConfiguration)
	}
}
