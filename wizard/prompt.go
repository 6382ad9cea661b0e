package wizard

import (
	"fmt"

	"LeadBot/model"
)

type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardInline
	KeyboardReply
	KeyboardRemove
)

type Button struct {
	Label string
	Data  string
}

type Keyboard struct {
	Kind KeyboardKind
	Rows [][]Button
}

// Prompt is what the presentation layer renders back to the user.
type Prompt struct {
	Notice   string
	Text     string
	Keyboard Keyboard
}

// Message joins the notice and the question into a single message body.
func (p Prompt) Message() string {
	switch {
	case p.Notice == "":
		return p.Text
	case p.Text == "":
		return p.Notice
	}
	return p.Notice + "\n\n" + p.Text
}

const (
	TerminatorLabel = "No more links"
	yesLabel        = "Yes"
	noLabel         = "No"
)

var platforms = []string{"Facebook", "Instagram", "LinkedIn", "TikTok", "X", "YouTube", "Other"}

var (
	removeKeyboard = Keyboard{Kind: KeyboardRemove}
	yesNoKeyboard  = Keyboard{Kind: KeyboardReply, Rows: [][]Button{{{Label: yesLabel}, {Label: noLabel}}}}
)

func platformKeyboard() Keyboard {
	rows := [][]Button{}
	for i := 0; i < len(platforms); i += 2 {
		row := []Button{{Label: platforms[i]}}
		if i+1 < len(platforms) {
			row = append(row, Button{Label: platforms[i+1]})
		}
		rows = append(rows, row)
	}
	rows = append(rows, []Button{{Label: TerminatorLabel}})
	return Keyboard{Kind: KeyboardReply, Rows: rows}
}

func serviceKeyboard(v model.Variant) Keyboard {
	rows := [][]Button{{
		{Label: "Remove Negative Content", Data: string(model.ServiceRemove)},
		{Label: "Build Positive Reputation", Data: string(model.ServiceBuild)},
	}}
	if v.OfferBoth {
		rows = append(rows, []Button{{Label: "Both", Data: model.ChoiceBoth}})
	}
	var extra []Button
	if v.OfferAds {
		extra = append(extra, Button{Label: "Ad Services", Data: string(model.ServiceAds)})
	}
	if v.OfferOther {
		extra = append(extra, Button{Label: "Something Else", Data: string(model.ServiceOther)})
	}
	if len(extra) > 0 {
		rows = append(rows, extra)
	}
	return Keyboard{Kind: KeyboardInline, Rows: rows}
}

// Prompt returns the question for the session's current step.
func (m *Machine) Prompt(s *model.Session) Prompt {
	switch s.Step {
	case model.StepServiceSelection:
		return Prompt{
			Text:     "Hey there! We specialize in removing negative content and building powerful online reputations. What would you like help with today?",
			Keyboard: serviceKeyboard(m.variant),
		}
	case model.StepName:
		return Prompt{Text: "Awesome! I can help with that. First things first, what's your full name?", Keyboard: removeKeyboard}
	case model.StepCompany:
		return Prompt{Text: "What's your company name?", Keyboard: removeKeyboard}
	case model.StepEmail:
		return Prompt{Text: "Your email address?", Keyboard: removeKeyboard}
	case model.StepPhone:
		return Prompt{Text: "Phone number?", Keyboard: removeKeyboard}
	case model.StepSocialPlatform:
		if len(s.SocialLinks) == 0 {
			return Prompt{Text: "Which social media platform are you sharing a link for?", Keyboard: platformKeyboard()}
		}
		return Prompt{
			Text:     fmt.Sprintf("Would you like to add another social media link? Pick a platform or tap \"%s\".", TerminatorLabel),
			Keyboard: platformKeyboard(),
		}
	case model.StepSocialLink:
		return Prompt{Text: fmt.Sprintf("Please send the link for %s:", s.PendingPlatform), Keyboard: removeKeyboard}
	case model.StepAdPlatforms:
		return Prompt{Text: "Which ad platforms are you interested in (for example Google, Meta, TikTok)?", Keyboard: removeKeyboard}
	case model.StepAdHasAccount:
		return Prompt{Text: "Do you already have an ad account on those platforms?", Keyboard: yesNoKeyboard}
	case model.StepAdAccountID:
		return Prompt{Text: "What's the ad account ID?", Keyboard: removeKeyboard}
	case model.StepAdBudget:
		return Prompt{Text: "What's your monthly ad budget?", Keyboard: removeKeyboard}
	case model.StepAdHasCreatives:
		return Prompt{Text: "Do you have creatives (images, videos, copy) ready?", Keyboard: yesNoKeyboard}
	case model.StepAdGoal:
		return Prompt{Text: "What's the main goal of the campaign?", Keyboard: removeKeyboard}
	case model.StepCustomRequest:
		return Prompt{Text: "Tell us briefly what you need help with.", Keyboard: removeKeyboard}
	case model.StepReviewLinks:
		return Prompt{
			Text:     "Do you have any website URLs or article links you'd like us to review for de-indexing or removal? Reply \"none\" if not.",
			Keyboard: removeKeyboard,
		}
	case model.StepConsent:
		return Prompt{Text: "Do we have your consent to contact you about this request? Please reply YES to proceed.", Keyboard: yesNoKeyboard}
	case model.StepRestartConfirm:
		return Prompt{Text: "Start over? Your answers so far will be discarded.", Keyboard: yesNoKeyboard}
	}
	return SomethingWentWrong()
}

func NoSession() Prompt {
	return Prompt{Text: "Please start by typing /start", Keyboard: removeKeyboard}
}

func SomethingWentWrong() Prompt {
	return Prompt{Text: "Something went wrong. Type /start to begin again.", Keyboard: removeKeyboard}
}
