// Package app is the checkout session engine. It owns the create, update and
// complete lifecycle of checkout sessions and is the only writer of the
// session store.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalogdomain "github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/completion"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/discount"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/sessionlog"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/store"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/totals"
	paymentservice "github.com/jcmexdev/ucp-commerce/internal/payment-service/app"
)

const tracerName = "github.com/jcmexdev/ucp-commerce/internal/checkout-service/app"

// Catalog is the product lookup the engine resolves line items against.
type Catalog interface {
	Get(ctx context.Context, id string) (*catalogdomain.Product, error)
}

type Engine struct {
	store     store.SessionStore
	catalog   Catalog
	discounts *discount.Engine
	payments  completion.PaymentHandler
	log       sessionlog.Repository
	now       func() time.Time
	newID     func() string
	tracer    trace.Tracer
}

type Option func(*Engine)

// WithSessionLog records every transition in repo.
func WithSessionLog(repo sessionlog.Repository) Option {
	return func(e *Engine) { e.log = repo }
}

func WithPaymentHandler(h completion.PaymentHandler) Option {
	return func(e *Engine) { e.payments = h }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine wires the engine. A nil discount engine falls back to the default
// code registry and the mock payment handler is used unless one is supplied.
func NewEngine(sessions store.SessionStore, catalog Catalog, discounts *discount.Engine, opts ...Option) *Engine {
	if discounts == nil {
		discounts = discount.NewEngine(nil)
	}
	e := &Engine{
		store:     sessions,
		catalog:   catalog,
		discounts: discounts,
		payments:  paymentservice.NewMockHandler(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create validates the request, prices the cart without discounts and stores
// a new session.
func (e *Engine) Create(ctx context.Context, req domain.CreateRequest) (*domain.CheckoutSession, error) {
	ctx, span := e.tracer.Start(ctx, "checkout.Create")
	defer span.End()

	currency, err := normalizeCurrency(req.Currency)
	if err != nil {
		return nil, fail(span, err)
	}
	if len(req.LineItems) == 0 {
		return nil, fail(span, domain.NewValidation(domain.ErrMsgLineItemsRequired))
	}

	items, err := e.resolveLineItems(ctx, currency, req.LineItems)
	if err != nil {
		return nil, fail(span, err)
	}

	now := e.now()
	session := &domain.CheckoutSession{
		ID:        e.newID(),
		Currency:  currency,
		LineItems: items,
		CreatedAt: now,
	}
	if req.Buyer != nil {
		b := *req.Buyer
		session.Buyer = &b
	}
	e.recompute(session, now)

	if err := e.store.Insert(session); err != nil {
		return nil, fail(span, fmt.Errorf("insert checkout session: %w", err))
	}

	span.SetAttributes(attribute.String("checkout.id", session.ID), attribute.String("checkout.status", session.Status.String()))
	slog.InfoContext(ctx, "checkout session created",
		"checkout_id", session.ID, "status", session.Status, "total", session.GrandTotal(), "currency", currency)
	e.record(ctx, session, sessionlog.OpCreated, nil)
	return session, nil
}

// Get returns a snapshot of the session.
func (e *Engine) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	_, span := e.tracer.Start(ctx, "checkout.Get", trace.WithAttributes(attribute.String("checkout.id", id)))
	defer span.End()

	session, err := e.store.Get(id)
	if err != nil {
		return nil, fail(span, mapStoreError(id, err))
	}
	return session, nil
}

// Update replaces the parts of the session present in req and recomputes
// discounts, totals and status from scratch. Completed sessions are immutable.
func (e *Engine) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.CheckoutSession, error) {
	ctx, span := e.tracer.Start(ctx, "checkout.Update", trace.WithAttributes(attribute.String("checkout.id", id)))
	defer span.End()

	session, err := e.store.Update(id, func(s *domain.CheckoutSession) error {
		if s.Status.IsTerminal() {
			return domain.NewInvalidState(domain.ErrMsgSessionCompleted)
		}

		if req.LineItems != nil {
			items, err := e.resolveLineItems(ctx, s.Currency, req.LineItems)
			if err != nil {
				return err
			}
			s.LineItems = items
		}
		if req.Buyer != nil {
			b := *req.Buyer
			s.Buyer = &b
		}
		if req.DiscountCodes != nil {
			s.Discounts.Codes = append([]string{}, req.DiscountCodes...)
		}

		e.recompute(s, e.now())
		return nil
	})
	if err != nil {
		return nil, fail(span, mapStoreError(id, err))
	}

	span.SetAttributes(attribute.String("checkout.status", session.Status.String()))
	slog.InfoContext(ctx, "checkout session updated",
		"checkout_id", id, "status", session.Status, "codes", session.Discounts.Codes, "total", session.GrandTotal())
	e.record(ctx, session, sessionlog.OpUpdated, nil)
	return session, nil
}

// Complete moves a ready session to completed. The stock check and payment
// authorization run while the session is locked; if either fails the session
// is left untouched.
func (e *Engine) Complete(ctx context.Context, id string, req domain.CompleteRequest) (*domain.CheckoutSession, error) {
	ctx, span := e.tracer.Start(ctx, "checkout.Complete", trace.WithAttributes(attribute.String("checkout.id", id)))
	defer span.End()

	session, err := e.store.Update(id, func(s *domain.CheckoutSession) error {
		switch s.Status {
		case domain.StatusCompleted:
			return domain.NewInvalidState(domain.ErrMsgSessionCompleted)
		case domain.StatusReadyForComplete:
		default:
			return domain.NewInvalidState(domain.ErrMsgSessionNotReady)
		}

		payment := completion.NewPaymentStep(e.payments, paymentservice.Authorization{
			SessionID:  s.ID,
			Amount:     s.GrandTotal(),
			Currency:   s.Currency,
			Instrument: req.Payment,
		})
		saga := completion.NewOrchestrator(s.ID,
			completion.NewStockCheckStep(e.catalog, s.LineItems),
			payment,
		)
		if err := saga.Start(ctx); err != nil {
			return err
		}

		now := e.now()
		s.Status = domain.StatusCompleted
		s.Payment = payment.Record()
		s.CompletedAt = &now
		s.UpdatedAt = now
		return nil
	})
	if err != nil {
		err = mapStoreError(id, err)
		if !errors.Is(err, domain.ErrNotFound) {
			e.recordFailure(ctx, id, err)
		}
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "checkout session completed",
		"checkout_id", id, "total", session.GrandTotal(), "transaction_id", session.Payment.TransactionID)
	e.record(ctx, session, sessionlog.OpCompleted, nil)
	return session, nil
}

// recompute derives everything that is not client input. Discounts are always
// priced fresh from the full code list, so repeating a code never stacks.
func (e *Engine) recompute(s *domain.CheckoutSession, now time.Time) {
	s.Discounts.Applied = e.discounts.Apply(s.LineItems, s.Discounts.Codes)
	for i := range s.LineItems {
		s.LineItems[i].Totals = totals.ComputeLine(s.LineItems[i], s.Discounts.Applied, s.Currency)
	}
	s.Totals = totals.Compute(s.LineItems, s.Discounts.Applied, s.Currency)
	s.Status = domain.DeriveStatus(s.Currency, s.LineItems, s.Buyer)
	s.UpdatedAt = now
}

func (e *Engine) record(ctx context.Context, s *domain.CheckoutSession, op sessionlog.Operation, cause error) {
	if e.log == nil {
		return
	}
	entry := sessionlog.NewEntry(ctx, s.ID, op, s.Status.String(), s, cause)
	if err := e.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to write session log", "checkout_id", s.ID, "operation", op, "error", err)
	}
}

func (e *Engine) recordFailure(ctx context.Context, id string, cause error) {
	if e.log == nil {
		return
	}
	var status string
	if current, err := e.store.Get(id); err == nil {
		status = current.Status.String()
	}
	entry := sessionlog.NewEntry(ctx, id, sessionlog.OpCompletionFailed, status, nil, cause)
	if err := e.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to write session log", "checkout_id", id, "operation", entry.Operation, "error", err)
	}
}

func mapStoreError(id string, err error) error {
	if errors.Is(err, store.ErrSessionNotFound) {
		return domain.NewNotFoundf("%s: %s", domain.ErrMsgSessionNotFound, id)
	}
	return err
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
