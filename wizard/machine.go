package wizard

import (
	"fmt"
	"strings"
	"time"

	"LeadBot/model"
)

// Transition is the result of applying one event to a session.
type Transition struct {
	Prompt    Prompt
	Restarted bool // session was reset to service selection
	Complete  bool // consent given, the session is ready for dispatch
}

// Machine applies inbound events to sessions. It performs no I/O.
type Machine struct {
	variant model.Variant
	now     func() time.Time
}

func NewMachine(v model.Variant) *Machine {
	if v.Restart == "" {
		v.Restart = model.RestartImmediate
	}
	return &Machine{variant: v, now: time.Now}
}

func (m *Machine) Variant() model.Variant {
	return m.variant
}

// Apply mutates s according to ev. An error means the session is in a state
// the machine does not know and must be dropped.
func (m *Machine) Apply(s *model.Session, ev Event) (Transition, error) {
	switch ev.Kind {
	case EventStart:
		m.reset(s)
		return Transition{Prompt: m.Prompt(s), Restarted: true}, nil
	case EventMenu:
		return m.applyMenu(s)
	case EventServiceChoice:
		if s.Step != model.StepServiceSelection {
			return m.reprompt(s, "Please answer the question below.")
		}
		return m.selectService(s, ev.Value)
	case EventText:
		return m.applyText(s, strings.TrimSpace(ev.Value))
	}
	return m.reprompt(s, "")
}

func (m *Machine) applyMenu(s *model.Session) (Transition, error) {
	switch s.Step {
	case model.StepServiceSelection:
		return Transition{Prompt: m.Prompt(s)}, nil
	case model.StepRestartConfirm:
		return m.reprompt(s, "")
	}
	if m.variant.Restart == model.RestartConfirm {
		s.ResumeStep = s.Step
		s.Step = model.StepRestartConfirm
		return Transition{Prompt: m.Prompt(s)}, nil
	}
	m.reset(s)
	return Transition{Prompt: m.Prompt(s), Restarted: true}, nil
}

func (m *Machine) selectService(s *model.Session, choice string) (Transition, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	services, ok := model.ParseChoice(choice)
	if !ok || !m.variant.Offers(choice) {
		return m.reprompt(s, "Please pick one of the options using the buttons.")
	}
	m.reset(s)
	s.Services = services
	s.Step = m.variant.ContactSteps()[0]
	return Transition{Prompt: m.Prompt(s)}, nil
}

func (m *Machine) applyText(s *model.Session, text string) (Transition, error) {
	switch s.Step {
	case model.StepServiceSelection:
		return m.reprompt(s, "Please pick one of the options using the buttons.")

	case model.StepName, model.StepCompany, model.StepEmail, model.StepPhone:
		if text == "" {
			return m.reprompt(s, "Please type your answer.")
		}
		switch s.Step {
		case model.StepName:
			s.Contact.Name = text
		case model.StepCompany:
			s.Contact.Company = text
		case model.StepEmail:
			s.Contact.Email = text
		case model.StepPhone:
			s.Contact.Phone = text
		}
		return m.advanceContact(s)

	case model.StepSocialPlatform:
		if isTerminator(text) {
			return m.enterBranch(s, BranchSocial)
		}
		platform, ok := matchPlatform(text)
		if !ok {
			return m.reprompt(s, "Please choose a platform from the keyboard.")
		}
		s.PendingPlatform = platform
		s.Step = model.StepSocialLink
		return Transition{Prompt: m.Prompt(s)}, nil

	case model.StepSocialLink:
		if text == "" {
			return m.reprompt(s, "Please send the link as text.")
		}
		s.SocialLinks = append(s.SocialLinks, model.SocialLink{
			Platform:   s.PendingPlatform,
			URL:        text,
			ValidShape: model.LooksLikeURL(text),
		})
		s.PendingPlatform = ""
		s.Step = model.StepSocialPlatform
		return Transition{Prompt: m.Prompt(s)}, nil

	case model.StepAdPlatforms, model.StepAdAccountID, model.StepAdBudget, model.StepAdGoal,
		model.StepAdHasAccount, model.StepAdHasCreatives:
		return m.applyAds(s, text)

	case model.StepCustomRequest:
		if text == "" {
			return m.reprompt(s, "Please type your request.")
		}
		s.CustomRequest = text
		return m.enterBranch(s, BranchCustom)

	case model.StepReviewLinks:
		if text == "" {
			return m.reprompt(s, "Please type the links, or \"none\".")
		}
		s.ReviewLinks = text
		return m.enterBranch(s, BranchReview)

	case model.StepConsent:
		if !isAffirmative(text) {
			return m.reprompt(s, "We need your consent to contact you.")
		}
		s.ConsentGiven = true
		s.Step = model.StepDone
		return Transition{Complete: true}, nil

	case model.StepRestartConfirm:
		if isAffirmative(text) {
			m.reset(s)
			return Transition{Prompt: m.Prompt(s), Restarted: true}, nil
		}
		s.Step = s.ResumeStep
		s.ResumeStep = ""
		if s.Step == "" || s.Step == model.StepRestartConfirm {
			return Transition{}, fmt.Errorf("%w: nothing to resume", model.ErrUnknownStep)
		}
		p := m.Prompt(s)
		p.Notice = "Okay, let's continue."
		return Transition{Prompt: p}, nil
	}
	return Transition{}, fmt.Errorf("%w: %q", model.ErrUnknownStep, s.Step)
}

func (m *Machine) applyAds(s *model.Session, text string) (Transition, error) {
	if s.Ads == nil {
		return Transition{}, fmt.Errorf("%w: %q without ad details", model.ErrUnknownStep, s.Step)
	}
	switch s.Step {
	case model.StepAdHasAccount, model.StepAdHasCreatives:
		yes, ok := parseYesNo(text)
		if !ok {
			return m.reprompt(s, "Please answer Yes or No.")
		}
		if s.Step == model.StepAdHasAccount {
			s.Ads.HasAccount = yes
			s.Step = model.StepAdBudget
			if yes {
				s.Step = model.StepAdAccountID
			}
		} else {
			s.Ads.HasCreatives = yes
			s.Step = model.StepAdGoal
		}
		return Transition{Prompt: m.Prompt(s)}, nil
	}

	if text == "" {
		return m.reprompt(s, "Please type your answer.")
	}
	switch s.Step {
	case model.StepAdPlatforms:
		s.Ads.Platforms = text
		s.Step = model.StepAdHasAccount
	case model.StepAdAccountID:
		s.Ads.AccountID = text
		s.Step = model.StepAdBudget
	case model.StepAdBudget:
		s.Ads.Budget = text
		s.Step = model.StepAdHasCreatives
	case model.StepAdGoal:
		s.Ads.Goal = text
		return m.enterBranch(s, BranchAds)
	}
	return Transition{Prompt: m.Prompt(s)}, nil
}

func (m *Machine) advanceContact(s *model.Session) (Transition, error) {
	steps := m.variant.ContactSteps()
	for i, step := range steps {
		if step != s.Step {
			continue
		}
		if i+1 < len(steps) {
			s.Step = steps[i+1]
			return Transition{Prompt: m.Prompt(s)}, nil
		}
		return m.enterBranch(s, BranchNone)
	}
	return Transition{}, fmt.Errorf("%w: %q is not a contact step", model.ErrUnknownStep, s.Step)
}

func (m *Machine) enterBranch(s *model.Session, after Branch) (Transition, error) {
	switch NextBranch(s.Services, m.variant, after) {
	case BranchSocial:
		s.Step = model.StepSocialPlatform
	case BranchAds:
		s.Ads = &model.AdDetails{}
		s.Step = model.StepAdPlatforms
	case BranchCustom:
		s.Step = model.StepCustomRequest
	case BranchReview:
		s.Step = model.StepReviewLinks
	default:
		s.Step = model.StepConsent
	}
	return Transition{Prompt: m.Prompt(s)}, nil
}

func (m *Machine) reprompt(s *model.Session, notice string) (Transition, error) {
	p := m.Prompt(s)
	p.Notice = notice
	return Transition{Prompt: p}, nil
}

func (m *Machine) reset(s *model.Session) {
	*s = *model.NewSession(s.UserID, s.ChatID, m.now())
}

func isTerminator(text string) bool {
	switch strings.ToLower(text) {
	case strings.ToLower(TerminatorLabel), "done", "no", "none", "skip":
		return true
	}
	return false
}

func matchPlatform(text string) (string, bool) {
	for _, p := range platforms {
		if strings.EqualFold(p, text) {
			return p, true
		}
	}
	return "", false
}

var affirmatives = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true, "yes please": true,
	"sure": true, "ok": true, "okay": true, "agree": true, "i agree": true,
}

func isAffirmative(text string) bool {
	return affirmatives[strings.Trim(strings.ToLower(strings.TrimSpace(text)), ".!")]
}

func parseYesNo(text string) (bool, bool) {
	if isAffirmative(text) {
		return true, true
	}
	switch strings.Trim(strings.ToLower(text), ".!") {
	case "no", "n", "nope", "not yet":
		return false, true
	}
	return false, false
}
