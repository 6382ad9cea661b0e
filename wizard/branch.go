package wizard

import "LeadBot/model"

// Branch names a sub-flow that runs after the contact details.
type Branch int

const (
	BranchNone Branch = iota
	BranchSocial
	BranchAds
	BranchCustom
	BranchReview
	BranchConsent
)

func (b Branch) String() string {
	switch b {
	case BranchNone:
		return "none"
	case BranchSocial:
		return "social"
	case BranchAds:
		return "ads"
	case BranchCustom:
		return "custom"
	case BranchReview:
		return "review"
	case BranchConsent:
		return "consent"
	}
	return "unknown"
}

// Plan lists the sub-flows a services selection runs, in order. It always ends with BranchConsent.
func Plan(services model.Services, v model.Variant) []Branch {
	var plan []Branch
	if services.Has(model.SvcRemove) || services.Has(model.SvcBuild) {
		plan = append(plan, BranchSocial)
	}
	if services.Has(model.SvcAds) {
		plan = append(plan, BranchAds)
	}
	if services.Has(model.SvcOther) {
		plan = append(plan, BranchCustom)
	}
	if !(v.CustomSkipsReview && services.Has(model.SvcOther)) {
		plan = append(plan, BranchReview)
	}
	return append(plan, BranchConsent)
}

// NextBranch returns the sub-flow that follows after in the plan for services.
// BranchNone asks for the first one.
func NextBranch(services model.Services, v model.Variant, after Branch) Branch {
	plan := Plan(services, v)
	if after == BranchNone {
		return plan[0]
	}
	for i, b := range plan {
		if b == after && i+1 < len(plan) {
			return plan[i+1]
		}
	}
	return BranchConsent
}
