package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	catalogdomain "github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
	paymentservice "github.com/jcmexdev/ucp-commerce/internal/payment-service/app"
)

type recordingStep struct {
	name        string
	failWith    error
	log         *[]string
	compensated bool
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Execute(ctx context.Context) error {
	*s.log = append(*s.log, "exec:"+s.name)
	return s.failWith
}

func (s *recordingStep) Compensate(ctx context.Context) error {
	*s.log = append(*s.log, "comp:"+s.name)
	s.compensated = true
	return nil
}

func TestOrchestrator_AllStepsSucceed(t *testing.T) {
	var log []string
	a := &recordingStep{name: "a", log: &log}
	b := &recordingStep{name: "b", log: &log}

	err := NewOrchestrator("s-1", a, b).Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"exec:a", "exec:b"}, log)
}

func TestOrchestrator_FailureCompensatesInReverse(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &recordingStep{name: "a", log: &log}
	b := &recordingStep{name: "b", log: &log}
	c := &recordingStep{name: "c", log: &log, failWith: boom}
	d := &recordingStep{name: "d", log: &log}

	err := NewOrchestrator("s-1", a, b, c, d).Start(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"exec:a", "exec:b", "exec:c", "comp:b", "comp:a"}, log)
	assert.False(t, c.compensated)
	assert.False(t, d.compensated)
}

func testCatalog() *catalogapp.Catalog {
	return catalogapp.NewCatalog([]catalogdomain.Product{
		{ID: "in", Title: "In stock", Price: 100, Currency: "USD", InStock: true},
		{ID: "out", Title: "Out of stock", Price: 100, Currency: "USD", InStock: false},
	})
}

func items(ids ...string) []domain.LineItem {
	out := make([]domain.LineItem, len(ids))
	for i, id := range ids {
		out[i] = domain.LineItem{ID: "li-" + id, Item: domain.Item{ID: id, Price: 100}, Quantity: 1}
	}
	return out
}

func TestStockCheckStep(t *testing.T) {
	catalog := testCatalog()

	assert.NoError(t, NewStockCheckStep(catalog, items("in")).Execute(context.Background()))
	assert.NoError(t, NewStockCheckStep(catalog, items("in", "custom")).Execute(context.Background()),
		"items unknown to the catalog are not stock checked")

	err := NewStockCheckStep(catalog, items("in", "out")).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPaymentStep_VoidedWhenLaterStepFails(t *testing.T) {
	handler := paymentservice.NewMockHandler()
	payment := NewPaymentStep(handler, paymentservice.Authorization{SessionID: "s-1", Amount: 500, Currency: "USD"})
	var log []string
	failing := &recordingStep{name: "after", log: &log, failWith: errors.New("later failure")}

	err := NewOrchestrator("s-1", payment, failing).Start(context.Background())

	require.Error(t, err)
	record := payment.Record()
	require.NotNil(t, record)
	assert.False(t, handler.Authorized(record.TransactionID))
}

func TestPaymentStep_Record(t *testing.T) {
	handler := paymentservice.NewMockHandler()
	payment := NewPaymentStep(handler, paymentservice.Authorization{SessionID: "s-1", Amount: 500, Currency: "USD"})
	assert.Nil(t, payment.Record())

	require.NoError(t, payment.Execute(context.Background()))

	record := payment.Record()
	require.NotNil(t, record)
	assert.Equal(t, paymentservice.MockHandlerID, record.HandlerID)
	assert.Equal(t, int64(500), record.Amount)
	assert.Equal(t, "USD", record.Currency)
	assert.True(t, handler.Authorized(record.TransactionID))
}

func TestPaymentStep_Declined(t *testing.T) {
	handler := paymentservice.NewMockHandler()
	payment := NewPaymentStep(handler, paymentservice.Authorization{
		SessionID:  "s-1",
		Amount:     500,
		Instrument: &domain.PaymentInstrument{Token: paymentservice.TokenFail},
	})

	err := NewOrchestrator("s-1", NewStockCheckStep(testCatalog(), items("in")), payment).Start(context.Background())

	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Nil(t, payment.Record())
}
