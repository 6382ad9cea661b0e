package model

import "strings"

// Service is a single offering tag a lead can ask for.
type Service string

const (
	ServiceRemove Service = "remove"
	ServiceBuild  Service = "build"
	ServiceAds    Service = "ads"
	ServiceOther  Service = "other"
)

// ChoiceBoth is the composite button that selects remove and build together.
const ChoiceBoth = "both"

// Services is the set of selected service tags.
type Services uint8

const (
	SvcRemove Services = 1 << iota
	SvcBuild
	SvcAds
	SvcOther
)

var serviceOrder = []struct {
	bit   Services
	tag   Service
	label string
}{
	{SvcRemove, ServiceRemove, "Remove Negative Content"},
	{SvcBuild, ServiceBuild, "Build Positive Reputation"},
	{SvcAds, ServiceAds, "Ad Services"},
	{SvcOther, ServiceOther, "Something Else"},
}

// ParseChoice maps a service button payload to the services it selects.
func ParseChoice(choice string) (Services, bool) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case string(ServiceRemove):
		return SvcRemove, true
	case string(ServiceBuild):
		return SvcBuild, true
	case ChoiceBoth:
		return SvcRemove | SvcBuild, true
	case string(ServiceAds):
		return SvcAds, true
	case string(ServiceOther):
		return SvcOther, true
	}
	return 0, false
}

func (s Services) Has(other Services) bool {
	return other != 0 && s&other == other
}

func (s Services) Empty() bool {
	return s == 0
}

// Tags lists the selected tags in a stable order.
func (s Services) Tags() []Service {
	var tags []Service
	for _, o := range serviceOrder {
		if s&o.bit != 0 {
			tags = append(tags, o.tag)
		}
	}
	return tags
}

func (s Services) String() string {
	tags := s.Tags()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Label is the human readable service description used in summaries.
func (s Services) Label() string {
	var parts []string
	for _, o := range serviceOrder {
		if s&o.bit != 0 {
			parts = append(parts, o.label)
		}
	}
	return strings.Join(parts, " + ")
}
