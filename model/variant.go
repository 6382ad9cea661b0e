package model

type RestartPolicy string

const (
	RestartImmediate RestartPolicy = "immediate"
	RestartConfirm   RestartPolicy = "confirm"
)

// Variant captures the differences between flavours of the intake flow.
type Variant struct {
	OfferBoth         bool          `yaml:"offer_both"`
	OfferAds          bool          `yaml:"offer_ads"`
	OfferOther        bool          `yaml:"offer_other"`
	CompanyLast       bool          `yaml:"company_last"`
	CustomSkipsReview bool          `yaml:"custom_skips_review"`
	Restart           RestartPolicy `yaml:"restart"`
	CalendarLink      string        `yaml:"calendar_link"`
}

func DefaultVariant() Variant {
	return Variant{
		OfferBoth:  true,
		OfferAds:   true,
		OfferOther: true,
		Restart:    RestartImmediate,
	}
}

// ContactSteps is the order in which contact details are asked.
func (v Variant) ContactSteps() []Step {
	if v.CompanyLast {
		return []Step{StepName, StepEmail, StepPhone, StepCompany}
	}
	return []Step{StepName, StepCompany, StepEmail, StepPhone}
}

// Offers reports whether a service button is shown for this variant.
func (v Variant) Offers(choice string) bool {
	switch choice {
	case string(ServiceRemove), string(ServiceBuild):
		return true
	case ChoiceBoth:
		return v.OfferBoth
	case string(ServiceAds):
		return v.OfferAds
	case string(ServiceOther):
		return v.OfferOther
	}
	return false
}
