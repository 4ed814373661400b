package httpx

import (
	catalogdomain "github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/ucp"
)

// --- requests ---

type ItemRequestDTO struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Price *int64 `json:"price,omitempty"`
}

type LineItemRequestDTO struct {
	ID       string         `json:"id,omitempty"`
	Item     ItemRequestDTO `json:"item"`
	Quantity int64          `json:"quantity"`
}

type BuyerDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type CreateCheckoutRequest struct {
	Currency  string               `json:"currency"`
	LineItems []LineItemRequestDTO `json:"line_items"`
	Buyer     *BuyerDTO            `json:"buyer,omitempty"`
}

type DiscountsRequestDTO struct {
	Codes []string `json:"codes"`
}

// UpdateCheckoutRequest fields left out of the JSON body keep their current value.
type UpdateCheckoutRequest struct {
	LineItems []LineItemRequestDTO `json:"line_items"`
	Buyer     *BuyerDTO            `json:"buyer"`
	Discounts *DiscountsRequestDTO `json:"discounts"`
}

type PaymentRequestDTO struct {
	HandlerID string `json:"handler_id"`
	Token     string `json:"token"`
}

type CompleteCheckoutRequest struct {
	Payment *PaymentRequestDTO `json:"payment"`
}

// --- responses ---

type ItemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

type TotalResponse struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type LineItemResponse struct {
	ID       string          `json:"id"`
	Item     ItemResponse    `json:"item"`
	Quantity int64           `json:"quantity"`
	Totals   []TotalResponse `json:"totals"`
}

type AllocationResponse struct {
	LineItemID string `json:"line_item_id"`
	Amount     int64  `json:"amount"`
}

type AppliedDiscountResponse struct {
	Code        string               `json:"code"`
	Title       string               `json:"title"`
	Amount      int64                `json:"amount"`
	Automatic   bool                 `json:"automatic"`
	Allocations []AllocationResponse `json:"allocations"`
}

type DiscountsResponse struct {
	Codes   []string                  `json:"codes"`
	Applied []AppliedDiscountResponse `json:"applied"`
}

type LinkResponse struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type PaymentHandlerRef struct {
	ID string `json:"id"`
}

type AuthorizationResponse struct {
	HandlerID     string `json:"handler_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

type PaymentResponse struct {
	Handlers      []PaymentHandlerRef    `json:"handlers"`
	Authorization *AuthorizationResponse `json:"authorization,omitempty"`
}

type CheckoutResponse struct {
	UCP         ucp.ResponseHeader `json:"ucp"`
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	Currency    string             `json:"currency"`
	LineItems   []LineItemResponse `json:"line_items"`
	Buyer       *BuyerDTO          `json:"buyer,omitempty"`
	Discounts   DiscountsResponse  `json:"discounts"`
	Totals      []TotalResponse    `json:"totals"`
	Links       []LinkResponse     `json:"links"`
	Payment     PaymentResponse    `json:"payment"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	CompletedAt string             `json:"completed_at,omitempty"`
}

type ProductListResponse struct {
	UCP      ucp.ResponseHeader      `json:"ucp"`
	Products []catalogdomain.Product `json:"products"`
}

type ProductResponse struct {
	UCP     ucp.ResponseHeader    `json:"ucp"`
	Product catalogdomain.Product `json:"product"`
}

type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
