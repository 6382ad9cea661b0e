package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"http://fb.com/acme", true},
		{"https://www.linkedin.com/company/acme", true},
		{"www.acme.com", true},
		{"HTTPS://ACME.IO", true},
		{"acme", false},
		{"http://localhost", false},
		{"not a link", false},
		{"https://acme.com/some page", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeURL(tt.text))
		})
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := NewSession(7, 8, time.Now())
	s.SocialLinks = []SocialLink{{Platform: "Facebook", URL: "http://fb.com/a"}}
	s.Ads = &AdDetails{Budget: "100"}

	c := s.Clone()
	c.SocialLinks[0].URL = "changed"
	c.Ads.Budget = "200"

	assert.Equal(t, "http://fb.com/a", s.SocialLinks[0].URL)
	assert.Equal(t, "100", s.Ads.Budget)
	assert.Equal(t, StepServiceSelection, c.Step)
	assert.Nil(t, (*Session)(nil).Clone())
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = SplitName("  Mary Ann van Dyke ")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Ann van Dyke", last)

	first, last = SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}

func TestFormatSocialLinks(t *testing.T) {
	out := FormatSocialLinks([]SocialLink{
		{Platform: "Facebook", URL: "http://fb.com/acme", ValidShape: true},
		{Platform: "X", URL: "acme", ValidShape: false},
	}, "")
	assert.Equal(t, "- Facebook: http://fb.com/acme\n- X: acme (invalid link)\n", out)
}
