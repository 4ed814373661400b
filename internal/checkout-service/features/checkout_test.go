package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	checkoutapp "github.com/jcmexdev/ucp-commerce/internal/checkout-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/store"
)

type checkoutTestContext struct {
	engine  *checkoutapp.Engine
	session *domain.CheckoutSession
	err     error
}

func (c *checkoutTestContext) theDemoCatalog() error {
	catalog, err := catalogapp.LoadDefault()
	if err != nil {
		return err
	}
	c.engine = checkoutapp.NewEngine(store.NewMemoryStore(), catalog, nil)
	c.session = nil
	c.err = nil
	return nil
}

func (c *checkoutTestContext) iCreateACheckout(currency string, quantity int, itemID string) error {
	c.session, c.err = c.engine.Create(context.Background(), domain.CreateRequest{
		Currency:  currency,
		LineItems: []domain.LineItemInput{{ItemID: itemID, Quantity: int64(quantity)}},
	})
	return nil
}

func (c *checkoutTestContext) aCheckout(currency string, quantity int, itemID string) error {
	if err := c.iCreateACheckout(currency, quantity, itemID); err != nil {
		return err
	}
	return c.err
}

func (c *checkoutTestContext) iUpdateTheBuyer(name, email string) error {
	return c.update(domain.UpdateRequest{Buyer: &domain.Buyer{FullName: name, Email: email}})
}

func (c *checkoutTestContext) theBuyerIs(name, email string) error {
	if err := c.iUpdateTheBuyer(name, email); err != nil {
		return err
	}
	return c.err
}

func (c *checkoutTestContext) iApplyTheDiscountCodes(codes string) error {
	return c.update(domain.UpdateRequest{DiscountCodes: strings.Split(codes, ",")})
}

func (c *checkoutTestContext) update(req domain.UpdateRequest) error {
	if c.session == nil {
		return errors.New("no checkout session")
	}
	updated, err := c.engine.Update(context.Background(), c.session.ID, req)
	c.err = err
	if err == nil {
		c.session = updated
	}
	return nil
}

func (c *checkoutTestContext) iCompleteTheCheckout() error {
	if c.session == nil {
		return errors.New("no checkout session")
	}
	completed, err := c.engine.Complete(context.Background(), c.session.ID, domain.CompleteRequest{})
	c.err = err
	if err == nil {
		c.session = completed
	}
	return nil
}

// current re-reads the stored session so assertions see what the store holds.
func (c *checkoutTestContext) current() (*domain.CheckoutSession, error) {
	if c.session == nil {
		return nil, fmt.Errorf("no checkout session (last error: %v)", c.err)
	}
	return c.engine.Get(context.Background(), c.session.ID)
}

func (c *checkoutTestContext) theCheckoutStatusIs(want string) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	if s.Status.String() != want {
		return fmt.Errorf("expected status %q, got %q", want, s.Status)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutTotalIs(want int) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	if s.GrandTotal() != int64(want) {
		return fmt.Errorf("expected total %d, got %d", want, s.GrandTotal())
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutDiscountIs(want int) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	for _, t := range s.Totals {
		if t.Type == domain.TotalDiscount {
			if t.Amount != int64(want) {
				return fmt.Errorf("expected discount %d, got %d", want, t.Amount)
			}
			return nil
		}
	}
	return fmt.Errorf("expected discount %d, no discount total present", want)
}

func (c *checkoutTestContext) theDiscountAllocationsAddUp() error {
	s, err := c.current()
	if err != nil {
		return err
	}
	for _, d := range s.Discounts.Applied {
		var sum int64
		for _, a := range d.Allocations {
			sum += a.Amount
		}
		if sum != d.Amount {
			return fmt.Errorf("%s: allocations sum to %d, discount is %d", d.Code, sum, d.Amount)
		}
	}
	return nil
}

func (c *checkoutTestContext) noErrorOccurred() error {
	return c.err
}

func (c *checkoutTestContext) theOperationFailsWith(kind string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	var de *domain.Error
	if !errors.As(c.err, &de) {
		return fmt.Errorf("expected a domain error, got %v", c.err)
	}
	if de.Kind.String() != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, de.Kind, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.engine, tc.session, tc.err = nil, nil, nil
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the demo catalog$`, tc.theDemoCatalog)
	ctx.Step(`^a ([A-Z]{3}) checkout with (\d+) x "([^"]*)"$`, tc.aCheckout)
	ctx.Step(`^the buyer is "([^"]*)" <([^>]*)>$`, tc.theBuyerIs)

	// When steps
	ctx.Step(`^I create a ([A-Z]{3}) checkout with (\d+) x "([^"]*)"$`, tc.iCreateACheckout)
	ctx.Step(`^I update the buyer to "([^"]*)" <([^>]*)>$`, tc.iUpdateTheBuyer)
	ctx.Step(`^I apply the discount codes "([^"]*)"$`, tc.iApplyTheDiscountCodes)
	ctx.Step(`^I complete the checkout$`, tc.iCompleteTheCheckout)

	// Then steps
	ctx.Step(`^the checkout status is "([^"]*)"$`, tc.theCheckoutStatusIs)
	ctx.Step(`^the checkout total is (\d+)$`, tc.theCheckoutTotalIs)
	ctx.Step(`^the checkout discount is (\d+)$`, tc.theCheckoutDiscountIs)
	ctx.Step(`^the discount allocations add up to the discount$`, tc.theDiscountAllocationsAddUp)
	ctx.Step(`^no error occurred$`, tc.noErrorOccurred)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
