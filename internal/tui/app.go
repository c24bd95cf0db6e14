package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shipping_portal_backend/internal/lookup"
	"shipping_portal_backend/platform/novaposhta"
)

// Client is the backend surface the program needs.
type Client interface {
	lookup.Fetcher
	CreateDeclaration(ctx context.Context, form any) (novaposhta.InternetDocument, error)
}

// Stage is the step the wizard is on.
type Stage int

const (
	StageSenderCity Stage = iota
	StageSenderWarehouse
	StageRecipientCity
	StageRecipientWarehouse
	StageForm
	StageDone
)

var stageTitles = map[Stage]string{
	StageSenderCity:         "Step 1/5: Sender city",
	StageSenderWarehouse:    "Step 2/5: Sender warehouse",
	StageRecipientCity:      "Step 3/5: Recipient city",
	StageRecipientWarehouse: "Step 4/5: Recipient warehouse",
	StageForm:               "Step 5/5: Parcel details",
	StageDone:               "Declaration created",
}

const submitTimeout = 30 * time.Second

// App is the root bubbletea model: a five-step wizard that picks both
// endpoints and submits the declaration form.
type App struct {
	client Client
	styles *Styles
	send   func(tea.Msg)

	stage Stage

	senderCities    *CityPicker
	senderHouses    *WarehousePicker
	recipientCities *CityPicker
	recipientHouses *WarehousePicker
	form            *ParcelForm

	document novaposhta.InternetDocument
}

// NewApp wires the pickers to their searchers and loaders. Snapshot callbacks
// post messages through send, which must be bound to the program's Send before
// the program runs.
func NewApp(client Client) *App {
	styles := DefaultStyles()
	app := &App{
		client: client,
		styles: styles,
		stage:  StageSenderCity,
		form:   NewParcelForm(styles),
	}

	senderSearch := lookup.NewCitySearcher(client, lookup.DefaultQuietInterval, func(state lookup.CityState) {
		app.post(CitiesUpdated{Role: RoleSender, State: state})
	})
	recipientSearch := lookup.NewCitySearcher(client, lookup.DefaultQuietInterval, func(state lookup.CityState) {
		app.post(CitiesUpdated{Role: RoleRecipient, State: state})
	})
	senderLoad := lookup.NewWarehouseLoader(client, func(state lookup.WarehouseState) {
		app.post(WarehousesUpdated{Role: RoleSender, State: state})
	})
	recipientLoad := lookup.NewWarehouseLoader(client, func(state lookup.WarehouseState) {
		app.post(WarehousesUpdated{Role: RoleRecipient, State: state})
	})

	app.senderCities = NewCityPicker(senderSearch, "Where does the parcel ship from?", styles)
	app.senderHouses = NewWarehousePicker(senderLoad, styles)
	app.recipientCities = NewCityPicker(recipientSearch, "Where does the parcel go?", styles)
	app.recipientHouses = NewWarehousePicker(recipientLoad, styles)
	return app
}

// Bind hooks the program's Send into the snapshot callbacks.
func (a *App) Bind(send func(tea.Msg)) {
	a.send = send
}

func (a *App) post(msg tea.Msg) {
	if a.send != nil {
		a.send(msg)
	}
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.senderCities.Init(), a.form.Init())
}

// Update routes messages to the active stage.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyEsc:
			return a, a.back()
		}
	case CitiesUpdated:
		a.cityPicker(msg.Role).SetState(msg.State)
		return a, nil
	case WarehousesUpdated:
		a.warehousePicker(msg.Role).SetState(msg.State)
		return a, nil
	case DeclarationSubmitted:
		a.form.SetSubmitting(false)
		if msg.Err != nil {
			a.form.SetSubmitError(msg.Err.Error())
			return a, nil
		}
		a.document = msg.Document
		a.stage = StageDone
		return a, nil
	}

	switch a.stage {
	case StageSenderCity:
		cmd, chosen := a.senderCities.Update(msg)
		if chosen {
			a.stage = StageSenderWarehouse
			a.senderHouses.SetCity(a.senderCities.Selected().Ref)
		}
		return a, cmd
	case StageSenderWarehouse:
		cmd, chosen := a.senderHouses.Update(msg)
		if chosen {
			a.stage = StageRecipientCity
		}
		return a, cmd
	case StageRecipientCity:
		cmd, chosen := a.recipientCities.Update(msg)
		if chosen {
			a.stage = StageRecipientWarehouse
			a.recipientHouses.SetCity(a.recipientCities.Selected().Ref)
		}
		return a, cmd
	case StageRecipientWarehouse:
		cmd, chosen := a.recipientHouses.Update(msg)
		if chosen {
			a.stage = StageForm
		}
		return a, cmd
	case StageForm:
		cmd, submit := a.form.Update(msg)
		if submit {
			return a, tea.Batch(cmd, a.submit())
		}
		return a, cmd
	case StageDone:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			return a, tea.Quit
		}
	}
	return a, nil
}

// back steps the wizard one stage backwards. Leaving a warehouse stage back to
// its city stage drops the city selection, which invalidates the warehouses
// loaded for it.
func (a *App) back() tea.Cmd {
	switch a.stage {
	case StageSenderWarehouse:
		a.stage = StageSenderCity
		a.senderCities.Reset()
	case StageRecipientCity:
		a.stage = StageSenderWarehouse
	case StageRecipientWarehouse:
		a.stage = StageRecipientCity
		a.recipientCities.Reset()
	case StageForm:
		a.stage = StageRecipientWarehouse
	}
	return nil
}

func (a *App) submit() tea.Cmd {
	form := a.form.Build(
		a.senderCities.Selected().Ref,
		a.senderHouses.Selected().Ref,
		a.recipientCities.Selected().Ref,
		a.recipientHouses.Selected().Ref,
	)
	if !a.form.Validate(form) {
		return nil
	}

	a.form.SetSubmitting(true)
	a.form.SetSubmitError("")
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		document, err := client.CreateDeclaration(ctx, form)
		return DeclarationSubmitted{Document: document, Err: err}
	}
}

func (a *App) cityPicker(role Role) *CityPicker {
	if role == RoleSender {
		return a.senderCities
	}
	return a.recipientCities
}

func (a *App) warehousePicker(role Role) *WarehousePicker {
	if role == RoleSender {
		return a.senderHouses
	}
	return a.recipientHouses
}

// View renders the active stage with a title and a key hint footer.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Nova Poshta: new declaration"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render(stageTitles[a.stage]))
	b.WriteString("\n\n")

	switch a.stage {
	case StageSenderCity:
		b.WriteString(a.senderCities.View())
	case StageSenderWarehouse:
		b.WriteString(a.senderHouses.View())
	case StageRecipientCity:
		b.WriteString(a.recipientCities.View())
	case StageRecipientWarehouse:
		b.WriteString(a.recipientHouses.View())
	case StageForm:
		b.WriteString(a.form.View())
	case StageDone:
		b.WriteString(a.styles.Success.Render("Declaration number: " + a.document.IntDocNumber))
		b.WriteString("\n")
		if a.document.EstimatedDeliveryDate != "" {
			b.WriteString("Estimated delivery: " + a.document.EstimatedDeliveryDate)
			b.WriteString("\n")
		}
		if a.document.CostOnSite != nil {
			b.WriteString(fmt.Sprintf("Shipping cost: %v UAH", a.document.CostOnSite))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(a.styles.Help.Render("enter to exit"))
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("↑/↓ navigate · enter select · esc back · ctrl+c quit"))
	return b.String()
}
