package wizard

import (
	"errors"
	"testing"
	"time"

	"LeadBot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *model.Session {
	return model.NewSession(42, 42, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func apply(t *testing.T, m *Machine, s *model.Session, events ...Event) Transition {
	t.Helper()
	var tr Transition
	for _, ev := range events {
		var err error
		tr, err = m.Apply(s, ev)
		require.NoError(t, err, "event %s %q at step %s", ev.Kind, ev.Value, s.Step)
	}
	return tr
}

func contact() []Event {
	return []Event{Text("Jane Doe"), Text("Acme"), Text("j@acme.com"), Text("555-1234")}
}

func TestMachine_BuildScenario(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()

	apply(t, m, s, ServiceChoice("build"))
	apply(t, m, s, contact()...)
	assert.Equal(t, model.StepSocialPlatform, s.Step)

	apply(t, m, s, Text("Facebook"), Text("http://fb.com/acme"), Text(TerminatorLabel))
	assert.Equal(t, model.StepReviewLinks, s.Step)

	apply(t, m, s, Text("none"))
	assert.Equal(t, model.StepConsent, s.Step)
	assert.False(t, s.ConsentGiven)

	tr := apply(t, m, s, Text("yes"))
	assert.True(t, tr.Complete)
	assert.True(t, s.ConsentGiven)
	assert.Equal(t, model.SvcBuild, s.Services)
	assert.Equal(t, model.Contact{Name: "Jane Doe", Company: "Acme", Email: "j@acme.com", Phone: "555-1234"}, s.Contact)
	assert.Equal(t, []model.SocialLink{{Platform: "Facebook", URL: "http://fb.com/acme", ValidShape: true}}, s.SocialLinks)
	assert.Equal(t, "none", s.ReviewLinks)
	assert.Nil(t, s.Ads)
	assert.Empty(t, s.CustomRequest)
}

func TestMachine_RemoveNeverPopulatesAds(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()

	apply(t, m, s, ServiceChoice("remove"))
	apply(t, m, s, contact()...)
	apply(t, m, s, Text("done"), Text("https://bad-article.example.com"))

	assert.Equal(t, model.StepConsent, s.Step)
	assert.Nil(t, s.Ads)
	assert.Empty(t, s.SocialLinks)
	assert.Empty(t, s.CustomRequest)
}

func TestMachine_ConsentGate(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("remove"))
	apply(t, m, s, contact()...)
	apply(t, m, s, Text("done"), Text("none"))
	require.Equal(t, model.StepConsent, s.Step)

	for _, reply := range []string{"no", "maybe", "", "yes!?", "/start now"} {
		tr := apply(t, m, s, Text(reply))
		assert.False(t, tr.Complete, reply)
		assert.False(t, s.ConsentGiven, reply)
		assert.Equal(t, model.StepConsent, s.Step, reply)
		assert.NotEmpty(t, tr.Prompt.Notice, reply)
	}

	tr := apply(t, m, s, Text("  YES "))
	assert.True(t, tr.Complete)
	assert.True(t, s.ConsentGiven)
}

func TestMachine_ConsentAcceptsVariants(t *testing.T) {
	for _, reply := range []string{"y", "Yeah", "yep", "I agree", "OK."} {
		t.Run(reply, func(t *testing.T) {
			m := NewMachine(model.DefaultVariant())
			s := newTestSession()
			s.Step = model.StepConsent
			tr := apply(t, m, s, Text(reply))
			assert.True(t, tr.Complete)
		})
	}
}

func TestMachine_SocialLoopPreservesOrder(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("both"))
	apply(t, m, s, contact()...)

	pairs := [][2]string{
		{"Facebook", "http://fb.com/acme"},
		{"instagram", "instagram.com/acme"},
		{"LinkedIn", "https://linkedin.com/company/acme"},
	}
	for _, p := range pairs {
		apply(t, m, s, Text(p[0]), Text(p[1]))
		assert.Equal(t, model.StepSocialPlatform, s.Step)
	}
	apply(t, m, s, Text(TerminatorLabel))

	require.Len(t, s.SocialLinks, len(pairs))
	assert.Equal(t, "Facebook", s.SocialLinks[0].Platform)
	assert.Equal(t, "Instagram", s.SocialLinks[1].Platform)
	assert.False(t, s.SocialLinks[1].ValidShape)
	assert.Equal(t, "LinkedIn", s.SocialLinks[2].Platform)
	assert.True(t, s.SocialLinks[2].ValidShape)
	assert.Equal(t, model.StepReviewLinks, s.Step)
}

func TestMachine_UnknownPlatformReprompts(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"))
	apply(t, m, s, contact()...)
	apply(t, m, s, Text("Facebook"), Text("http://fb.com/acme"))

	tr := apply(t, m, s, Text("MySpace"))

	assert.Equal(t, model.StepSocialPlatform, s.Step)
	assert.Len(t, s.SocialLinks, 1)
	assert.Empty(t, s.PendingPlatform)
	assert.Equal(t, "Please choose a platform from the keyboard.", tr.Prompt.Notice)
	assert.Equal(t, KeyboardReply, tr.Prompt.Keyboard.Kind)
}

func TestMachine_AdsFlow(t *testing.T) {
	m := NewMachine(model.DefaultVariant())

	t.Run("with account", func(t *testing.T) {
		s := newTestSession()
		apply(t, m, s, ServiceChoice("ads"))
		apply(t, m, s, contact()...)
		require.Equal(t, model.StepAdPlatforms, s.Step)

		apply(t, m, s, Text("Google, Meta"), Text("Yes"), Text("act_123"), Text("$500"), Text("no"), Text("More leads"))

		assert.Equal(t, model.StepReviewLinks, s.Step)
		assert.Equal(t, &model.AdDetails{
			Platforms:    "Google, Meta",
			HasAccount:   true,
			AccountID:    "act_123",
			Budget:       "$500",
			HasCreatives: false,
			Goal:         "More leads",
		}, s.Ads)
		assert.Empty(t, s.SocialLinks)
	})

	t.Run("without account skips the account id", func(t *testing.T) {
		s := newTestSession()
		apply(t, m, s, ServiceChoice("ads"))
		apply(t, m, s, contact()...)
		apply(t, m, s, Text("TikTok"), Text("no"))

		assert.Equal(t, model.StepAdBudget, s.Step)
		assert.False(t, s.Ads.HasAccount)
	})

	t.Run("yes/no steps reject other answers", func(t *testing.T) {
		s := newTestSession()
		apply(t, m, s, ServiceChoice("ads"))
		apply(t, m, s, contact()...)
		apply(t, m, s, Text("Google"))

		tr := apply(t, m, s, Text("perhaps"))

		assert.Equal(t, model.StepAdHasAccount, s.Step)
		assert.Equal(t, "Please answer Yes or No.", tr.Prompt.Notice)
	})
}

func TestMachine_CustomRequest(t *testing.T) {
	t.Run("collects links afterwards by default", func(t *testing.T) {
		m := NewMachine(model.DefaultVariant())
		s := newTestSession()
		apply(t, m, s, ServiceChoice("other"))
		apply(t, m, s, contact()...)
		require.Equal(t, model.StepCustomRequest, s.Step)

		apply(t, m, s, Text("Wikipedia page cleanup"))

		assert.Equal(t, "Wikipedia page cleanup", s.CustomRequest)
		assert.Equal(t, model.StepReviewLinks, s.Step)
	})

	t.Run("goes straight to consent when configured", func(t *testing.T) {
		v := model.DefaultVariant()
		v.CustomSkipsReview = true
		m := NewMachine(v)
		s := newTestSession()
		apply(t, m, s, ServiceChoice("other"))
		apply(t, m, s, contact()...)
		apply(t, m, s, Text("Wikipedia page cleanup"))

		assert.Equal(t, model.StepConsent, s.Step)
	})
}

func TestMachine_ServiceSelection(t *testing.T) {
	t.Run("text is rejected", func(t *testing.T) {
		m := NewMachine(model.DefaultVariant())
		s := newTestSession()
		tr := apply(t, m, s, Text("build please"))
		assert.Equal(t, model.StepServiceSelection, s.Step)
		assert.True(t, s.Services.Empty())
		assert.Equal(t, KeyboardInline, tr.Prompt.Keyboard.Kind)
	})

	t.Run("unknown and unoffered choices are rejected", func(t *testing.T) {
		v := model.DefaultVariant()
		v.OfferBoth = false
		m := NewMachine(v)
		s := newTestSession()

		apply(t, m, s, ServiceChoice("both"), ServiceChoice("everything"))

		assert.Equal(t, model.StepServiceSelection, s.Step)
		assert.True(t, s.Services.Empty())
	})

	t.Run("choice clears previous answers", func(t *testing.T) {
		m := NewMachine(model.DefaultVariant())
		s := newTestSession()
		s.Contact.Name = "stale"
		s.ReviewLinks = "stale"

		apply(t, m, s, ServiceChoice("remove"))

		assert.Equal(t, model.StepName, s.Step)
		assert.Equal(t, model.SvcRemove, s.Services)
		assert.Empty(t, s.Contact.Name)
		assert.Empty(t, s.ReviewLinks)
	})

	t.Run("button press at a later step changes nothing", func(t *testing.T) {
		m := NewMachine(model.DefaultVariant())
		s := newTestSession()
		apply(t, m, s, ServiceChoice("remove"), Text("Jane Doe"))

		tr := apply(t, m, s, ServiceChoice("ads"))

		assert.Equal(t, model.StepCompany, s.Step)
		assert.Equal(t, model.SvcRemove, s.Services)
		assert.Equal(t, "Jane Doe", s.Contact.Name)
		assert.NotEmpty(t, tr.Prompt.Notice)
	})
}

func TestMachine_BlankContactReprompts(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"))

	tr := apply(t, m, s, Text("   "))

	assert.Equal(t, model.StepName, s.Step)
	assert.Empty(t, s.Contact.Name)
	assert.Equal(t, "Please type your answer.", tr.Prompt.Notice)
}

func TestMachine_ContactIsStoredVerbatim(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"), Text("x"), Text("y"), Text("not-an-email"), Text("call me maybe"))

	assert.Equal(t, "not-an-email", s.Contact.Email)
	assert.Equal(t, "call me maybe", s.Contact.Phone)
	assert.Equal(t, model.StepSocialPlatform, s.Step)
}

func TestMachine_CompanyLast(t *testing.T) {
	v := model.DefaultVariant()
	v.CompanyLast = true
	m := NewMachine(v)
	s := newTestSession()

	apply(t, m, s, ServiceChoice("build"), Text("Jane Doe"))
	assert.Equal(t, model.StepEmail, s.Step)
	apply(t, m, s, Text("j@acme.com"), Text("555-1234"))
	assert.Equal(t, model.StepCompany, s.Step)
	apply(t, m, s, Text("Acme"))

	assert.Equal(t, "Acme", s.Contact.Company)
	assert.Equal(t, model.StepSocialPlatform, s.Step)
}

func TestMachine_RestartImmediate(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"), Text("Jane Doe"))

	tr := apply(t, m, s, Menu())

	assert.True(t, tr.Restarted)
	assert.Equal(t, model.StepServiceSelection, s.Step)
	assert.Empty(t, s.Contact.Name)
	assert.True(t, s.Services.Empty())
	assert.Equal(t, int64(42), s.UserID)
}

func TestMachine_RestartConfirm(t *testing.T) {
	v := model.DefaultVariant()
	v.Restart = model.RestartConfirm
	m := NewMachine(v)
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"), Text("Jane Doe"))

	tr := apply(t, m, s, Menu())
	assert.False(t, tr.Restarted)
	assert.Equal(t, model.StepRestartConfirm, s.Step)
	assert.Equal(t, model.StepCompany, s.ResumeStep)

	tr = apply(t, m, s, Text("no"))
	assert.Equal(t, model.StepCompany, s.Step)
	assert.Empty(t, s.ResumeStep)
	assert.Equal(t, "Jane Doe", s.Contact.Name)
	assert.Equal(t, "Okay, let's continue.", tr.Prompt.Notice)

	apply(t, m, s, Menu())
	tr = apply(t, m, s, Text("yes"))
	assert.True(t, tr.Restarted)
	assert.Equal(t, model.StepServiceSelection, s.Step)
	assert.Empty(t, s.Contact.Name)
}

func TestMachine_StartAlwaysResets(t *testing.T) {
	v := model.DefaultVariant()
	v.Restart = model.RestartConfirm
	m := NewMachine(v)
	s := newTestSession()
	apply(t, m, s, ServiceChoice("build"), Text("Jane Doe"))

	tr := apply(t, m, s, Start())

	assert.True(t, tr.Restarted)
	assert.Equal(t, model.StepServiceSelection, s.Step)
}

func TestMachine_UnknownStepErrors(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	s.Step = model.Step("bogus")

	_, err := m.Apply(s, Text("hello"))

	assert.True(t, errors.Is(err, model.ErrUnknownStep))
}

func TestMachine_AdStepWithoutDetailsErrors(t *testing.T) {
	m := NewMachine(model.DefaultVariant())
	s := newTestSession()
	s.Step = model.StepAdBudget

	_, err := m.Apply(s, Text("$100"))

	assert.ErrorIs(t, err, model.ErrUnknownStep)
}
