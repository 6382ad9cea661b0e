package model

import (
	"fmt"
	"strings"
)

// ContactFields is what the CRM stores about a lead.
type ContactFields struct {
	LocationID  string `json:"locationId,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	Source      string `json:"source,omitempty"`
}

type CRMContact struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SheetRow is the flattened lead record appended to the spreadsheet log.
type SheetRow struct {
	Timestamp      string `json:"timestamp"`
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Services       string `json:"services"`
	SocialLinks    string `json:"socialLinks"`
	AdPlatforms    string `json:"adPlatforms"`
	AdHasAccount   string `json:"adHasAccount"`
	AdAccountID    string `json:"adAccountId"`
	AdBudget       string `json:"adBudget"`
	AdHasCreatives string `json:"adHasCreatives"`
	AdGoal         string `json:"adGoal"`
	CustomRequest  string `json:"customRequest"`
	Links          string `json:"links"`
	Consent        string `json:"consent"`
}

// SplitName treats the first word as the first name and the rest as the last name.
func SplitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FormatSocialLinks renders one line per link; links that do not look like URLs are flagged.
func FormatSocialLinks(links []SocialLink, indent string) string {
	var b strings.Builder
	for _, l := range links {
		fmt.Fprintf(&b, "%s- %s: %s", indent, l.Platform, l.URL)
		if !l.ValidShape {
			b.WriteString(" (invalid link)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *AdDetails) Format(indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s- Platforms: %s\n", indent, a.Platforms)
	fmt.Fprintf(&b, "%s- Has account: %s\n", indent, YesNo(a.HasAccount))
	if a.HasAccount {
		fmt.Fprintf(&b, "%s- Account ID: %s\n", indent, a.AccountID)
	}
	fmt.Fprintf(&b, "%s- Budget: %s\n", indent, a.Budget)
	fmt.Fprintf(&b, "%s- Has creatives: %s\n", indent, YesNo(a.HasCreatives))
	fmt.Fprintf(&b, "%s- Goal: %s\n", indent, a.Goal)
	return b.String()
}

func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
