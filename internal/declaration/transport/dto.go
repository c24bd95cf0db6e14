package transport

// CreateDeclarationRequest is the declaration form as submitted by the client.
// Numeric fields arrive as user-typed strings; field-level validation produces
// the per-field error map, so tags here only shape the JSON binding.
type CreateDeclarationRequest struct {
	SenderCityRef      string `json:"senderCityRef"`
	SenderWarehouseRef string `json:"senderWarehouseRef"`
	SenderName         string `json:"senderName"`
	SenderPhone        string `json:"senderPhone"`

	RecipientCityRef      string `json:"recipientCityRef"`
	RecipientWarehouseRef string `json:"recipientWarehouseRef"`
	RecipientName         string `json:"recipientName"`
	RecipientPhone        string `json:"recipientPhone"`

	Description   string `json:"description"`
	Weight        string `json:"weight"`
	SeatsAmount   string `json:"seatsAmount"`
	Cost          string `json:"cost"`
	PayerType     string `json:"payerType" validate:"omitempty,oneof=Sender Recipient"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=Cash NonCash"`
}

// DeclarationResponse is the confirmation receipt relayed to the client.
type DeclarationResponse struct {
	Ref                   string `json:"Ref"`
	IntDocNumber          string `json:"IntDocNumber"`
	EstimatedDeliveryDate string `json:"EstimatedDeliveryDate"`
	CostOnSite            any    `json:"CostOnSite"`
}
