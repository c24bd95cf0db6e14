package service

import (
	"math"
	"strconv"
	"strings"

	"shipping_portal_backend/internal/declaration/transport"
	"shipping_portal_backend/platform/phone"
)

// ValidationResult is the outcome of validating a declaration form.
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

const minDescriptionLength = 3

// ValidateForm checks every field of a declaration form and returns the full
// field-to-message error map. Fields are independent: the order of evaluation
// does not affect the result.
func ValidateForm(form transport.CreateDeclarationRequest) ValidationResult {
	errors := make(map[string]string)

	// Sender
	if form.SenderCityRef == "" {
		errors["senderCity"] = "select a sender city"
	}
	if form.SenderWarehouseRef == "" {
		errors["senderWarehouse"] = "select a sender warehouse"
	}
	if strings.TrimSpace(form.SenderName) == "" {
		errors["senderName"] = "enter the sender name"
	}
	if strings.TrimSpace(form.SenderPhone) == "" {
		errors["senderPhone"] = "enter the sender phone"
	} else if !phone.IsValid(form.SenderPhone) {
		errors["senderPhone"] = "invalid phone format (expected +380XXXXXXXXX)"
	}

	// Recipient
	if form.RecipientCityRef == "" {
		errors["recipientCity"] = "select a recipient city"
	}
	if form.RecipientWarehouseRef == "" {
		errors["recipientWarehouse"] = "select a recipient warehouse"
	}
	if strings.TrimSpace(form.RecipientName) == "" {
		errors["recipientName"] = "enter the recipient name"
	}
	if strings.TrimSpace(form.RecipientPhone) == "" {
		errors["recipientPhone"] = "enter the recipient phone"
	} else if !phone.IsValid(form.RecipientPhone) {
		errors["recipientPhone"] = "invalid phone format"
	}

	// Parcel
	if strings.TrimSpace(form.Description) == "" {
		errors["description"] = "enter the parcel description"
	} else if len([]rune(strings.TrimSpace(form.Description))) < minDescriptionLength {
		errors["description"] = "description must be at least 3 characters"
	}

	if strings.TrimSpace(form.Weight) == "" {
		errors["weight"] = "enter the weight"
	} else if !isPositiveNumber(form.Weight) {
		errors["weight"] = "weight must be a positive number"
	}

	if strings.TrimSpace(form.SeatsAmount) == "" {
		errors["seatsAmount"] = "enter the seat count"
	} else if !isPositiveInteger(form.SeatsAmount) {
		errors["seatsAmount"] = "seat count must be a positive whole number"
	}

	if strings.TrimSpace(form.Cost) == "" {
		errors["cost"] = "enter the declared cost"
	} else if !isPositiveNumber(form.Cost) {
		errors["cost"] = "cost must be a positive number"
	}

	return ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// isPositiveNumber reports whether the value parses as a positive finite number.
func isPositiveNumber(value string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0
}

// isPositiveInteger reports whether the value parses as a positive integral number.
func isPositiveInteger(value string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return n > 0 && n == math.Trunc(n) && !math.IsInf(n, 0)
}
