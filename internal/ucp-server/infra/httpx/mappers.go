package httpx

import (
	"time"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
)

func toLineItemInputs(in []LineItemRequestDTO) []domain.LineItemInput {
	if in == nil {
		return nil
	}
	out := make([]domain.LineItemInput, len(in))
	for i, li := range in {
		out[i] = domain.LineItemInput{
			ID:       li.ID,
			ItemID:   li.Item.ID,
			Title:    li.Item.Title,
			Price:    li.Item.Price,
			Quantity: li.Quantity,
		}
	}
	return out
}

func toBuyer(in *BuyerDTO) *domain.Buyer {
	if in == nil {
		return nil
	}
	return &domain.Buyer{FullName: in.FullName, Email: in.Email}
}

func toCreateRequest(in CreateCheckoutRequest) domain.CreateRequest {
	return domain.CreateRequest{
		Currency:  in.Currency,
		LineItems: toLineItemInputs(in.LineItems),
		Buyer:     toBuyer(in.Buyer),
	}
}

// toUpdateRequest keeps the difference between an absent field (nil) and an
// empty one: "discounts": {} clears every code.
func toUpdateRequest(in UpdateCheckoutRequest) domain.UpdateRequest {
	req := domain.UpdateRequest{
		LineItems: toLineItemInputs(in.LineItems),
		Buyer:     toBuyer(in.Buyer),
	}
	if in.Discounts != nil {
		req.DiscountCodes = append([]string{}, in.Discounts.Codes...)
	}
	return req
}

func toCompleteRequest(in CompleteCheckoutRequest) domain.CompleteRequest {
	if in.Payment == nil {
		return domain.CompleteRequest{}
	}
	return domain.CompleteRequest{
		Payment: &domain.PaymentInstrument{HandlerID: in.Payment.HandlerID, Token: in.Payment.Token},
	}
}

func mapTotals(in []domain.Total) []TotalResponse {
	out := make([]TotalResponse, len(in))
	for i, t := range in {
		out[i] = TotalResponse{Type: string(t.Type), Amount: t.Amount, Currency: t.Currency}
	}
	return out
}

func mapCheckoutToResponse(s *domain.CheckoutSession, paymentHandlerID string) CheckoutResponse {
	lineItems := make([]LineItemResponse, len(s.LineItems))
	for i, li := range s.LineItems {
		lineItems[i] = LineItemResponse{
			ID: li.ID,
			Item: ItemResponse{
				ID:       li.Item.ID,
				Title:    li.Item.Title,
				Price:    li.Item.Price,
				ImageURL: li.Item.ImageURL,
			},
			Quantity: li.Quantity,
			Totals:   mapTotals(li.Totals),
		}
	}

	codes := s.Discounts.Codes
	if codes == nil {
		codes = []string{}
	}
	applied := make([]AppliedDiscountResponse, len(s.Discounts.Applied))
	for i, d := range s.Discounts.Applied {
		allocations := make([]AllocationResponse, len(d.Allocations))
		for j, a := range d.Allocations {
			allocations[j] = AllocationResponse{LineItemID: a.LineItemID, Amount: a.Amount}
		}
		applied[i] = AppliedDiscountResponse{
			Code:        d.Code,
			Title:       d.Title,
			Amount:      d.Amount,
			Automatic:   d.Automatic,
			Allocations: allocations,
		}
	}

	resp := CheckoutResponse{
		UCP:       ucp.NewResponseHeader(ucp.CapabilityCheckout),
		ID:        s.ID,
		Status:    s.Status.String(),
		Currency:  s.Currency,
		LineItems: lineItems,
		Discounts: DiscountsResponse{Codes: codes, Applied: applied},
		Totals:    mapTotals(s.Totals),
		Links:     []LinkResponse{},
		Payment:   PaymentResponse{Handlers: []PaymentHandlerRef{{ID: paymentHandlerID}}},
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Buyer != nil {
		resp.Buyer = &BuyerDTO{FullName: s.Buyer.FullName, Email: s.Buyer.Email}
	}
	if s.Payment != nil {
		resp.Payment.Authorization = &AuthorizationResponse{
			HandlerID:     s.Payment.HandlerID,
			TransactionID: s.Payment.TransactionID,
			Amount:        s.Payment.Amount,
			Currency:      s.Payment.Currency,
		}
	}
	if s.CompletedAt != nil {
		resp.CompletedAt = s.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
