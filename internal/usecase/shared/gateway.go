package shared

import "therapy-booking/internal/domain/payment"

// Customer is the payer information the hosted checkout form needs.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
}

// CheckoutParams are posted by the client to the gateway's hosted checkout.
type CheckoutParams struct {
	CheckoutURL string `json:"checkout_url"`
	MerchantID  string `json:"merchant_id"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifyURL   string `json:"notify_url"`
	OrderID     string `json:"order_id"`
	Items       string `json:"items"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Custom1     string `json:"custom_1"`
	Custom2     string `json:"custom_2"`
	Hash        string `json:"hash"`
}

// GatewayNotification is the server-to-server callback body.
type GatewayNotification struct {
	MerchantID    string
	OrderID       string
	PaymentID     string
	Amount        string
	Currency      string
	StatusCode    string
	Signature     string
	Method        string
	StatusMessage string
	Custom1       string
	Custom2       string
}

type PaymentGateway interface {
	Checkout(intent *payment.Intent, items string, customer Customer) CheckoutParams
	// Verify fails closed: any mismatch, including a foreign merchant id, is an error.
	Verify(n GatewayNotification) error
	// MapStatus translates a gateway status code into an intent status.
	MapStatus(code string) (payment.Status, error)
}
