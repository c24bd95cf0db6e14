package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	declservice "shipping_portal_backend/internal/declaration/service"
	"shipping_portal_backend/internal/declaration/transport"
)

// Form field indexes, in tab order.
const (
	fieldSenderName = iota
	fieldSenderPhone
	fieldRecipientName
	fieldRecipientPhone
	fieldDescription
	fieldWeight
	fieldSeats
	fieldCost
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Sender name",
	"Sender phone",
	"Recipient name",
	"Recipient phone",
	"Description",
	"Weight, kg",
	"Seats",
	"Declared cost, UAH",
}

// Maps field indexes to the error keys of the validation result.
var fieldErrorKeys = [fieldCount]string{
	"senderName",
	"senderPhone",
	"recipientName",
	"recipientPhone",
	"description",
	"weight",
	"seatsAmount",
	"cost",
}

// ParcelForm is the declaration entry stage: one text input per field, payer
// and payment toggles, and inline per-field errors after a failed submit.
type ParcelForm struct {
	inputs [fieldCount]textinput.Model
	styles *Styles

	focus         int
	payerType     string
	paymentMethod string
	fieldErrors   map[string]string
	submitting    bool
	submitErr     string
}

// NewParcelForm creates the form with sensible defaults.
func NewParcelForm(styles *Styles) *ParcelForm {
	f := &ParcelForm{
		styles:        styles,
		payerType:     "Sender",
		paymentMethod: "Cash",
		fieldErrors:   map[string]string{},
	}
	placeholders := [fieldCount]string{
		"Петренко Іван",
		"+380501234567",
		"Коваленко Олена",
		"+380671234567",
		"What is inside the parcel",
		"1",
		"1",
		"500",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 32
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

// Init initialises the form.
func (f *ParcelForm) Init() tea.Cmd {
	return textinput.Blink
}

// Build assembles the request from the inputs and the selected city and
// warehouse refs of both parties.
func (f *ParcelForm) Build(senderCity, senderWarehouse, recipientCity, recipientWarehouse string) transport.CreateDeclarationRequest {
	return transport.CreateDeclarationRequest{
		SenderCityRef:      senderCity,
		SenderWarehouseRef: senderWarehouse,
		SenderName:         strings.TrimSpace(f.inputs[fieldSenderName].Value()),
		SenderPhone:        strings.TrimSpace(f.inputs[fieldSenderPhone].Value()),

		RecipientCityRef:      recipientCity,
		RecipientWarehouseRef: recipientWarehouse,
		RecipientName:         strings.TrimSpace(f.inputs[fieldRecipientName].Value()),
		RecipientPhone:        strings.TrimSpace(f.inputs[fieldRecipientPhone].Value()),

		Description:   strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Weight:        strings.TrimSpace(f.inputs[fieldWeight].Value()),
		SeatsAmount:   strings.TrimSpace(f.inputs[fieldSeats].Value()),
		Cost:          strings.TrimSpace(f.inputs[fieldCost].Value()),
		PayerType:     f.payerType,
		PaymentMethod: f.paymentMethod,
	}
}

// Validate runs field-level validation and records errors for inline display.
// It returns true when the form is clean.
func (f *ParcelForm) Validate(form transport.CreateDeclarationRequest) bool {
	result := declservice.ValidateForm(form)
	f.fieldErrors = result.Errors
	return result.IsValid
}

// SetSubmitting toggles the in-flight flag; while set, a second submit is a
// no-op until the outcome message arrives.
func (f *ParcelForm) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

// Submitting reports whether a submission is in flight.
func (f *ParcelForm) Submitting() bool {
	return f.submitting
}

// SetSubmitError records a submission failure for display.
func (f *ParcelForm) SetSubmitError(message string) {
	f.submitErr = message
}

// Update handles key messages. It returns true when the user asked to submit.
func (f *ParcelForm) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg), false
	}

	switch keyMsg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % fieldCount)
		return nil, false
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil, false
	case tea.KeyEnter:
		if f.focus == fieldCount-1 {
			return nil, !f.submitting
		}
		f.setFocus(f.focus + 1)
		return nil, false
	case tea.KeyCtrlS:
		return nil, !f.submitting
	}

	switch keyMsg.String() {
	case "ctrl+p":
		f.payerType = togglePayer(f.payerType)
		return nil, false
	case "ctrl+o":
		f.paymentMethod = toggleMethod(f.paymentMethod)
		return nil, false
	}

	return f.updateFocused(msg), false
}

func togglePayer(current string) string {
	if current == "Sender" {
		return "Recipient"
	}
	return "Sender"
}

func toggleMethod(current string) string {
	if current == "Cash" {
		return "NonCash"
	}
	return "Cash"
}

func (f *ParcelForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *ParcelForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the fields with inline errors, the toggles and the status line.
func (f *ParcelForm) View() string {
	var b strings.Builder
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(f.styles.Selected.Render(label))
		} else {
			b.WriteString(f.styles.Subtitle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		if message, ok := f.fieldErrors[fieldErrorKeys[i]]; ok {
			b.WriteString("\n")
			b.WriteString(f.styles.Error.Render(message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.styles.Subtitle.Render("Payer: "))
	b.WriteString(f.payerType)
	b.WriteString(f.styles.Help.Render("  ctrl+p to toggle"))
	b.WriteString("\n")
	b.WriteString(f.styles.Subtitle.Render("Payment: "))
	b.WriteString(f.paymentMethod)
	b.WriteString(f.styles.Help.Render("  ctrl+o to toggle"))
	b.WriteString("\n\n")

	switch {
	case f.submitting:
		b.WriteString(f.styles.Muted.Render("Submitting declaration..."))
	case f.submitErr != "":
		b.WriteString(f.styles.Error.Render(f.submitErr))
	default:
		b.WriteString(f.styles.Help.Render("ctrl+s to submit"))
	}
	return b.String()
}
