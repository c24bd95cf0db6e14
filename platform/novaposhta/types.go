package novaposhta

// apiRequest is the JSON-RPC-like request body every carrier call uses.
type apiRequest struct {
	APIKey           string `json:"apiKey"`
	ModelName        string `json:"modelName"`
	CalledMethod     string `json:"calledMethod"`
	MethodProperties any    `json:"methodProperties"`
}

// Envelope is the fixed response schema of the carrier API. The carrier returns
// it for every model/method pair; Data is decoded per call site.
type Envelope[T any] struct {
	Success      bool     `json:"success"`
	Data         []T      `json:"data"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	Info         any      `json:"info"`
	MessageCodes []string `json:"messageCodes"`
	ErrorCodes   []string `json:"errorCodes"`
	WarningCodes []string `json:"warningCodes"`
	InfoCodes    []string `json:"infoCodes"`
}

// Settlement is a searchable city/town record from Address.searchSettlements.
type Settlement struct {
	Ref               string `json:"Ref"`
	MainDescription   string `json:"MainDescription"`
	Area              string `json:"Area"`
	AreaDescription   string `json:"AreaDescription"`
	Region            string `json:"Region"`
	RegionDescription string `json:"RegionDescription"`
	ParentRegionTypes string `json:"ParentRegionTypes"`
	ParentRegionCode  string `json:"ParentRegionCode"`
}

// settlementSearchResult is the single-element payload of searchSettlements.
type settlementSearchResult struct {
	TotalCount string       `json:"TotalCount"`
	Addresses  []Settlement `json:"Addresses"`
}

// City is a record from the alternative Address.getCities lookup.
type City struct {
	Ref               string `json:"Ref"`
	Description       string `json:"Description"`
	DescriptionRu     string `json:"DescriptionRu"`
	Area              string `json:"Area"`
	AreaDescription   string `json:"AreaDescription"`
	Region            string `json:"Region"`
	RegionDescription string `json:"RegionDescription"`
}

// Warehouse is a pickup/drop-off branch belonging to a settlement.
type Warehouse struct {
	Ref                   string `json:"Ref"`
	Description           string `json:"Description"`
	DescriptionRu         string `json:"DescriptionRu"`
	ShortAddress          string `json:"ShortAddress"`
	ShortAddressRu        string `json:"ShortAddressRu"`
	Phone                 string `json:"Phone"`
	TypeOfWarehouse       string `json:"TypeOfWarehouse"`
	Number                string `json:"Number"`
	CityRef               string `json:"CityRef"`
	CityDescription       string `json:"CityDescription"`
	SettlementRef         string `json:"SettlementRef"`
	SettlementDescription string `json:"SettlementDescription"`
}

// InternetDocument is the carrier's confirmation receipt for a created declaration.
type InternetDocument struct {
	Ref                   string `json:"Ref"`
	IntDocNumber          string `json:"IntDocNumber"`
	EstimatedDeliveryDate string `json:"EstimatedDeliveryDate"`
	CostOnSite            any    `json:"CostOnSite"`
	TypeDocument          string `json:"TypeDocument"`
}

// CreateInternetDocumentRequest is the InternetDocument.save payload.
// Field names follow the carrier's wire format.
type CreateInternetDocumentRequest struct {
	NewAddress    string `json:"NewAddress"`
	PayerType     string `json:"PayerType"`
	PaymentMethod string `json:"PaymentMethod"`
	CargoType     string `json:"CargoType"`
	Weight        string `json:"Weight"`
	ServiceType   string `json:"ServiceType"`
	SeatsAmount   string `json:"SeatsAmount"`
	Description   string `json:"Description"`
	Cost          string `json:"Cost"`

	CitySender    string `json:"CitySender"`
	Sender        string `json:"Sender"`
	SenderAddress string `json:"SenderAddress"`
	ContactSender string `json:"ContactSender"`
	SendersPhone  string `json:"SendersPhone"`

	CityRecipient    string `json:"CityRecipient"`
	Recipient        string `json:"Recipient"`
	RecipientAddress string `json:"RecipientAddress"`
	ContactRecipient string `json:"ContactRecipient"`
	RecipientsPhone  string `json:"RecipientsPhone"`
}
