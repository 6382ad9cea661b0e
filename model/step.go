package model

// Step identifies the next input a session expects.
type Step string

const (
	StepServiceSelection Step = "service_selection"

	// Contact details
	StepName    Step = "name"
	StepCompany Step = "company"
	StepEmail   Step = "email"
	StepPhone   Step = "phone"

	// Social loop
	StepSocialPlatform Step = "social_platform"
	StepSocialLink     Step = "social_link"

	// Ads flow
	StepAdPlatforms    Step = "ad_platforms"
	StepAdHasAccount   Step = "ad_has_account"
	StepAdAccountID    Step = "ad_account_id"
	StepAdBudget       Step = "ad_budget"
	StepAdHasCreatives Step = "ad_has_creatives"
	StepAdGoal         Step = "ad_goal"

	StepCustomRequest  Step = "custom_request"
	StepReviewLinks    Step = "review_links"
	StepConsent        Step = "consent"
	StepRestartConfirm Step = "restart_confirm"

	// Terminal, never stored
	StepDone Step = "done"
)
