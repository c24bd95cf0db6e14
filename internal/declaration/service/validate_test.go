package service

import (
	"testing"

	"shipping_portal_backend/internal/declaration/transport"
)

func validForm() transport.CreateDeclarationRequest {
	return transport.CreateDeclarationRequest{
		SenderCityRef:         "city-sender",
		SenderWarehouseRef:    "wh-sender",
		SenderName:            "Іван Петренко",
		SenderPhone:           "+380501234567",
		RecipientCityRef:      "city-recipient",
		RecipientWarehouseRef: "wh-recipient",
		RecipientName:         "Олена Коваль",
		RecipientPhone:        "0671234567",
		Description:           "Книги",
		Weight:                "2.5",
		SeatsAmount:           "1",
		Cost:                  "500",
		PayerType:             "Sender",
		PaymentMethod:         "Cash",
	}
}

func TestValidateForm_ValidFormPasses(t *testing.T) {
	result := ValidateForm(validForm())
	if !result.IsValid {
		t.Fatalf("expected valid form, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected empty error map, got %v", result.Errors)
	}
}

func TestValidateForm_EmptyFormReportsEveryField(t *testing.T) {
	result := ValidateForm(transport.CreateDeclarationRequest{})
	if result.IsValid {
		t.Fatal("expected invalid form")
	}

	required := []string{
		"senderCity", "senderWarehouse", "senderName", "senderPhone",
		"recipientCity", "recipientWarehouse", "recipientName", "recipientPhone",
		"description", "weight", "seatsAmount", "cost",
	}
	for _, field := range required {
		if result.Errors[field] == "" {
			t.Fatalf("expected an error for field %q, got map %v", field, result.Errors)
		}
	}
	if len(result.Errors) != len(required) {
		t.Fatalf("expected %d errors, got %d: %v", len(required), len(result.Errors), result.Errors)
	}
}

func TestValidateForm_PhoneFormatDistinctFromEmpty(t *testing.T) {
	form := validForm()
	form.SenderPhone = "12345"
	withBadPhone := ValidateForm(form)

	form.SenderPhone = ""
	withEmptyPhone := ValidateForm(form)

	if withBadPhone.Errors["senderPhone"] == "" || withEmptyPhone.Errors["senderPhone"] == "" {
		t.Fatal("expected senderPhone errors in both cases")
	}
	if withBadPhone.Errors["senderPhone"] == withEmptyPhone.Errors["senderPhone"] {
		t.Fatal("format error and empty error must be distinguishable")
	}
}

func TestValidateForm_PhoneShapes(t *testing.T) {
	accepted := []string{"+380501234567", "380501234567", "0501234567"}
	for _, p := range accepted {
		form := validForm()
		form.RecipientPhone = p
		if result := ValidateForm(form); !result.IsValid {
			t.Fatalf("phone %q should be accepted, got %v", p, result.Errors)
		}
	}

	rejected := []string{"12345", "+38050123456", "50123456789"}
	for _, p := range rejected {
		form := validForm()
		form.RecipientPhone = p
		if result := ValidateForm(form); result.Errors["recipientPhone"] == "" {
			t.Fatalf("phone %q should be rejected", p)
		}
	}
}

func TestValidateForm_DescriptionMinLength(t *testing.T) {
	form := validForm()
	form.Description = "ab"
	if result := ValidateForm(form); result.Errors["description"] == "" {
		t.Fatal("two-character description should fail")
	}

	form.Description = "  ab  "
	if result := ValidateForm(form); result.Errors["description"] == "" {
		t.Fatal("description length must be measured after trimming")
	}

	form.Description = "abc"
	if result := ValidateForm(form); result.Errors["description"] != "" {
		t.Fatalf("three-character description should pass, got %v", result.Errors)
	}
}

func TestValidateForm_NumericFields(t *testing.T) {
	cases := []struct {
		field string
		set   func(*transport.CreateDeclarationRequest, string)
		value string
		valid bool
	}{
		{"weight", func(f *transport.CreateDeclarationRequest, v string) { f.Weight = v }, "0", false},
		{"weight", func(f *transport.CreateDeclarationRequest, v string) { f.Weight = v }, "-1", false},
		{"weight", func(f *transport.CreateDeclarationRequest, v string) { f.Weight = v }, "abc", false},
		{"weight", func(f *transport.CreateDeclarationRequest, v string) { f.Weight = v }, "0.5", true},
		{"cost", func(f *transport.CreateDeclarationRequest, v string) { f.Cost = v }, "-500", false},
		{"cost", func(f *transport.CreateDeclarationRequest, v string) { f.Cost = v }, "199.99", true},
		{"seatsAmount", func(f *transport.CreateDeclarationRequest, v string) { f.SeatsAmount = v }, "1.5", false},
		{"seatsAmount", func(f *transport.CreateDeclarationRequest, v string) { f.SeatsAmount = v }, "0", false},
		{"seatsAmount", func(f *transport.CreateDeclarationRequest, v string) { f.SeatsAmount = v }, "3", true},
	}

	for _, tc := range cases {
		form := validForm()
		tc.set(&form, tc.value)
		result := ValidateForm(form)
		if tc.valid && result.Errors[tc.field] != "" {
			t.Fatalf("%s=%q should pass, got %q", tc.field, tc.value, result.Errors[tc.field])
		}
		if !tc.valid && result.Errors[tc.field] == "" {
			t.Fatalf("%s=%q should fail", tc.field, tc.value)
		}
	}
}
