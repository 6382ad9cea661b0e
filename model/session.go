package model

import (
	"net/url"
	"strings"
	"time"
)

type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type SocialLink struct {
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	ValidShape bool   `json:"validShape"`
}

type AdDetails struct {
	Platforms    string `json:"platforms"`
	HasAccount   bool   `json:"hasAccount"`
	AccountID    string `json:"accountId,omitempty"`
	Budget       string `json:"budget"`
	HasCreatives bool   `json:"hasCreatives"`
	Goal         string `json:"goal"`
}

// Session is the per-user record of conversation progress and collected answers.
type Session struct {
	UserID int64
	ChatID int64
	Step   Step

	Services      Services
	Contact       Contact
	SocialLinks   []SocialLink
	Ads           *AdDetails
	CustomRequest string
	ReviewLinks   string
	ConsentGiven  bool

	PendingPlatform string // platform picked, waiting for its link
	ResumeStep      Step   // step interrupted by a restart confirmation

	StartedAt time.Time
}

func NewSession(userID, chatID int64, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		ChatID:    chatID,
		Step:      StepServiceSelection,
		StartedAt: now,
	}
}

// Clone returns a deep copy so stored sessions never share slices or pointers with callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.SocialLinks != nil {
		c.SocialLinks = append([]SocialLink(nil), s.SocialLinks...)
	}
	if s.Ads != nil {
		ads := *s.Ads
		c.Ads = &ads
	}
	return &c
}

// LooksLikeURL is a syntactic check only; it never contacts the host.
func LooksLikeURL(text string) bool {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, " \t\n") {
		return false
	}
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if !strings.HasPrefix(lower, "www.") {
			return false
		}
		text = "https://" + text
	}
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}
