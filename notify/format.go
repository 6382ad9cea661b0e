package notify

import (
	"fmt"
	"strings"
	"time"

	"LeadBot/model"
)

// Note is the CRM note body. It carries every collected field.
func Note(lead *model.Session, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Services: %s\n", lead.Services)
	fmt.Fprintf(&b, "Name: %s\n", lead.Contact.Name)
	fmt.Fprintf(&b, "Company: %s\n", lead.Contact.Company)
	fmt.Fprintf(&b, "Email: %s\n", lead.Contact.Email)
	fmt.Fprintf(&b, "Phone: %s\n", lead.Contact.Phone)
	if len(lead.SocialLinks) > 0 {
		b.WriteString("Socials:\n")
		b.WriteString(model.FormatSocialLinks(lead.SocialLinks, ""))
	}
	if lead.Ads != nil {
		b.WriteString("Ads:\n")
		b.WriteString(lead.Ads.Format(""))
	}
	if lead.CustomRequest != "" {
		fmt.Fprintf(&b, "Request: %s\n", lead.CustomRequest)
	}
	fmt.Fprintf(&b, "Links: %s\n", lead.ReviewLinks)
	fmt.Fprintf(&b, "Consent: %s", model.YesNo(lead.ConsentGiven))
	return b.String()
}

// Flatten turns a session into a single spreadsheet row.
func Flatten(lead *model.Session, now time.Time) model.SheetRow {
	socials := make([]string, len(lead.SocialLinks))
	for i, l := range lead.SocialLinks {
		socials[i] = l.Platform + ": " + l.URL
	}
	row := model.SheetRow{
		Timestamp:     now.UTC().Format(time.RFC3339),
		UserID:        lead.UserID,
		Name:          lead.Contact.Name,
		Email:         lead.Contact.Email,
		Phone:         lead.Contact.Phone,
		Company:       lead.Contact.Company,
		Services:      lead.Services.String(),
		SocialLinks:   strings.Join(socials, "; "),
		CustomRequest: lead.CustomRequest,
		Links:         lead.ReviewLinks,
		Consent:       strings.ToLower(model.YesNo(lead.ConsentGiven)),
	}
	if ads := lead.Ads; ads != nil {
		row.AdPlatforms = ads.Platforms
		row.AdHasAccount = model.YesNo(ads.HasAccount)
		row.AdAccountID = ads.AccountID
		row.AdBudget = ads.Budget
		row.AdHasCreatives = model.YesNo(ads.HasCreatives)
		row.AdGoal = ads.Goal
	}
	return row
}

// AuditText summarises a lead for operators, tagged with the delivery outcome.
func AuditText(lead *model.Session, report model.DeliveryReport) string {
	var b strings.Builder
	if report.CRMErr == nil && report.SheetErr == nil {
		b.WriteString("New lead [SUCCESS]\n")
	} else {
		b.WriteString("New lead [FAILED]\n")
		if report.CRMErr != nil {
			fmt.Fprintf(&b, "CRM: %v\n", report.CRMErr)
		}
		if report.SheetErr != nil {
			fmt.Fprintf(&b, "Sheet: %v\n", report.SheetErr)
		}
	}
	if report.ContactID != "" {
		fmt.Fprintf(&b, "Contact ID: %s\n", report.ContactID)
	}
	b.WriteString("\n")
	b.WriteString(Note(lead, "Telegram Bot"))
	return b.String()
}
