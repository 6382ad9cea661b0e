package wizard

import (
	"context"
	"errors"
	"time"

	"LeadBot/model"

	"github.com/rs/zerolog/log"
)

// Store holds at most one session per user id.
type Store interface {
	Get(ctx context.Context, userID int64) (*model.Session, error)
	Create(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, userID int64) error
}

// Dispatcher delivers a completed session to the outside world. It must not
// return before every delivery has been attempted.
type Dispatcher interface {
	Dispatch(ctx context.Context, lead *model.Session) model.DeliveryReport
}

// Observer is told about session lifecycle changes.
type Observer interface {
	SessionStarted()
	SessionRestarted()
	SessionCompleted()
	SessionDropped()
	StepEntered(step model.Step)
}

type nopObserver struct{}

func (nopObserver) SessionStarted()        {}
func (nopObserver) SessionRestarted()      {}
func (nopObserver) SessionCompleted()      {}
func (nopObserver) SessionDropped()        {}
func (nopObserver) StepEntered(model.Step) {}

// Conversation runs one inbound event through store, machine and dispatcher.
// Events for the same user must be delivered one at a time.
type Conversation struct {
	store      Store
	machine    *Machine
	dispatcher Dispatcher
	observer   Observer
	now        func() time.Time
}

type Option func(*Conversation)

func WithObserver(o Observer) Option {
	return func(c *Conversation) {
		if o != nil {
			c.observer = o
		}
	}
}

func NewConversation(store Store, machine *Machine, dispatcher Dispatcher, opts ...Option) *Conversation {
	c := &Conversation{
		store:      store,
		machine:    machine,
		dispatcher: dispatcher,
		observer:   nopObserver{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Conversation) Handle(ctx context.Context, userID, chatID int64, ev Event) Prompt {
	logger := log.With().Int64("user_id", userID).Str("event", ev.Kind.String()).Logger()

	session, err := c.store.Get(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		logger.Error().Err(err).Msg("error loading session")
		return SomethingWentWrong()
	}

	if session == nil {
		if ev.Kind != EventStart && ev.Kind != EventMenu {
			return NoSession()
		}
		session = model.NewSession(userID, chatID, c.now())
		if err := c.store.Create(ctx, session); err != nil {
			logger.Error().Err(err).Msg("error creating session")
			return SomethingWentWrong()
		}
		c.observer.SessionStarted()
		c.observer.StepEntered(session.Step)
		return c.machine.Prompt(session)
	}

	before := session.Step
	tr, err := c.machine.Apply(session, ev)
	if err != nil {
		logger.Error().Err(err).Str("step", string(before)).Msg("dropping session")
		c.drop(ctx, userID)
		return SomethingWentWrong()
	}

	if tr.Complete {
		return c.complete(ctx, session)
	}

	if tr.Restarted {
		err = c.store.Create(ctx, session)
		c.observer.SessionRestarted()
	} else {
		err = c.store.Update(ctx, session)
	}
	if err != nil {
		logger.Error().Err(err).Msg("error saving session")
		return SomethingWentWrong()
	}

	if session.Step != before || tr.Restarted {
		logger.Debug().Str("from", string(before)).Str("to", string(session.Step)).Msg("step changed")
		c.observer.StepEntered(session.Step)
	}
	return tr.Prompt
}

func (c *Conversation) complete(ctx context.Context, session *model.Session) Prompt {
	logger := log.With().Int64("user_id", session.UserID).Logger()
	if !session.ConsentGiven {
		logger.Error().Msg("completion without consent, dropping session")
		c.drop(ctx, session.UserID)
		return SomethingWentWrong()
	}

	report := c.dispatcher.Dispatch(ctx, session)
	if !report.OK() {
		logger.Warn().
			AnErr("crm_err", report.CRMErr).
			AnErr("sheet_err", report.SheetErr).
			AnErr("audit_err", report.AuditErr).
			Msg("lead delivered with failures")
	}

	if err := c.store.Delete(ctx, session.UserID); err != nil {
		logger.Error().Err(err).Msg("error deleting session")
	}
	c.observer.SessionCompleted()
	logger.Info().Str("services", session.Services.String()).Msg("session completed")

	return Prompt{
		Text:     Summary(session, c.machine.Variant().CalendarLink),
		Keyboard: Keyboard{Kind: KeyboardRemove},
	}
}

func (c *Conversation) drop(ctx context.Context, userID int64) {
	if err := c.store.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error deleting session")
	}
	c.observer.SessionDropped()
}
