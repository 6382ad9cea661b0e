package wizard

import (
	"fmt"
	"strings"

	"LeadBot/model"
)

// Summary is the confirmation a lead receives once their request is submitted.
func Summary(s *model.Session, calendarLink string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks, %s!\n\nHere's what we have:\n\n", s.Contact.Name)
	fmt.Fprintf(&b, "- Service: %s\n", s.Services.Label())
	fmt.Fprintf(&b, "- Company: %s\n", s.Contact.Company)
	fmt.Fprintf(&b, "- Email: %s\n", s.Contact.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", s.Contact.Phone)
	if len(s.SocialLinks) > 0 {
		b.WriteString("- Socials:\n")
		b.WriteString(model.FormatSocialLinks(s.SocialLinks, "  "))
	}
	if s.Ads != nil {
		b.WriteString("- Ads:\n")
		b.WriteString(s.Ads.Format("  "))
	}
	if s.CustomRequest != "" {
		fmt.Fprintf(&b, "- Request: %s\n", s.CustomRequest)
	}
	if s.ReviewLinks != "" {
		fmt.Fprintf(&b, "- Website Links: %s\n", s.ReviewLinks)
	}
	if calendarLink != "" {
		fmt.Fprintf(&b, "\nBook your call here: %s", calendarLink)
	}
	return strings.TrimRight(b.String(), "\n")
}
