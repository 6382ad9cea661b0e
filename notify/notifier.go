package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LeadBot/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotConfigured is reported for a sink that has no collaborator.
var ErrNotConfigured = errors.New("delivery not configured")

const (
	SinkCRM   = "crm"
	SinkSheet = "sheet"
	SinkAudit = "audit"
)

// CRM is a contact store keyed by email.
type CRM interface {
	// LookupByEmail returns nil, model.ErrContactNotFound (or nil, nil) when no contact matches.
	LookupByEmail(ctx context.Context, email string) (*model.CRMContact, error)
	CreateContact(ctx context.Context, fields model.ContactFields) (string, error)
	UpdateContact(ctx context.Context, id string, fields model.ContactFields) error
	TagContact(ctx context.Context, id string, tags []string) error
	AddNote(ctx context.Context, id string, text string) error
}

type Sheet interface {
	AppendRow(ctx context.Context, row model.SheetRow) error
}

type Audit interface {
	PostMessage(ctx context.Context, channelID string, text string) error
}

// Recorder counts delivery outcomes per sink.
type Recorder interface {
	Delivery(sink string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Delivery(string, error) {}

// Notifier delivers completed sessions on a best-effort basis: every delivery
// is attempted once, and a failing delivery never stops the others.
type Notifier struct {
	crm   CRM
	sheet Sheet
	audit Audit

	auditChannel string
	tags         []string
	source       string
	locationID   string
	recorder     Recorder
	now          func() time.Time
}

type Option func(*Notifier)

func WithAuditChannel(channelID string) Option {
	return func(n *Notifier) { n.auditChannel = channelID }
}

func WithTags(tags ...string) Option {
	return func(n *Notifier) { n.tags = tags }
}

func WithSource(source string) Option {
	return func(n *Notifier) { n.source = source }
}

func WithLocationID(id string) Option {
	return func(n *Notifier) { n.locationID = id }
}

func WithRecorder(r Recorder) Option {
	return func(n *Notifier) {
		if r != nil {
			n.recorder = r
		}
	}
}

func New(crm CRM, sheet Sheet, audit Audit, opts ...Option) *Notifier {
	n := &Notifier{
		crm:      crm,
		sheet:    sheet,
		audit:    audit,
		tags:     []string{"telegram lead"},
		source:   "Telegram Bot",
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Dispatch runs the CRM upsert and the sheet append concurrently, then posts
// the audit summary carrying their outcome. It returns once all three were tried.
func (n *Notifier) Dispatch(ctx context.Context, lead *model.Session) model.DeliveryReport {
	var report model.DeliveryReport
	logger := log.With().Int64("user_id", lead.UserID).Str("email", lead.Contact.Email).Logger()

	var g errgroup.Group
	g.Go(func() error {
		report.CRMErr = guard(SinkCRM, func() error {
			var err error
			report.ContactID, report.ContactCreated, err = n.upsert(ctx, lead)
			return err
		})
		return nil
	})
	g.Go(func() error {
		report.SheetErr = guard(SinkSheet, func() error {
			if n.sheet == nil {
				return ErrNotConfigured
			}
			return n.sheet.AppendRow(ctx, Flatten(lead, n.now()))
		})
		return nil
	})
	_ = g.Wait()

	report.AuditErr = guard(SinkAudit, func() error {
		if n.audit == nil {
			return ErrNotConfigured
		}
		return n.audit.PostMessage(ctx, n.auditChannel, AuditText(lead, report))
	})

	for sink, err := range map[string]error{SinkCRM: report.CRMErr, SinkSheet: report.SheetErr, SinkAudit: report.AuditErr} {
		n.recorder.Delivery(sink, err)
		if err != nil {
			logger.Error().Err(err).Str("sink", sink).Msg("delivery failed")
		}
	}
	if report.CRMErr == nil {
		logger.Info().Str("contact_id", report.ContactID).Bool("created", report.ContactCreated).Msg("crm contact upserted")
	}
	return report
}

func (n *Notifier) upsert(ctx context.Context, lead *model.Session) (string, bool, error) {
	if n.crm == nil {
		return "", false, ErrNotConfigured
	}
	fields := n.contactFields(lead)

	existing, err := n.crm.LookupByEmail(ctx, lead.Contact.Email)
	if err != nil && !errors.Is(err, model.ErrContactNotFound) {
		return "", false, fmt.Errorf("error looking up contact: %w", err)
	}

	var id string
	created := false
	if existing != nil {
		id = existing.ID
		if err := n.crm.UpdateContact(ctx, id, fields); err != nil {
			return id, false, fmt.Errorf("error updating contact: %w", err)
		}
	} else {
		fields.LocationID = n.locationID
		fields.Source = n.source
		id, err = n.crm.CreateContact(ctx, fields)
		if err != nil {
			return "", false, fmt.Errorf("error creating contact: %w", err)
		}
		created = true
	}

	if len(n.tags) > 0 {
		if err := n.crm.TagContact(ctx, id, n.tags); err != nil {
			return id, created, fmt.Errorf("error tagging contact: %w", err)
		}
	}
	if err := n.crm.AddNote(ctx, id, Note(lead, n.source)); err != nil {
		return id, created, fmt.Errorf("error adding note: %w", err)
	}
	return id, created, nil
}

func (n *Notifier) contactFields(lead *model.Session) model.ContactFields {
	first, last := model.SplitName(lead.Contact.Name)
	return model.ContactFields{
		FirstName:   first,
		LastName:    last,
		Email:       lead.Contact.Email,
		Phone:       lead.Contact.Phone,
		CompanyName: lead.Contact.Company,
	}
}

// guard keeps a panicking collaborator inside its own delivery.
func guard(sink string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s delivery panicked: %v", sink, r)
		}
	}()
	return fn()
}
