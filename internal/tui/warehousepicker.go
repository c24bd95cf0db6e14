package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	addrservice "shipping_portal_backend/internal/address/service"
	"shipping_portal_backend/internal/lookup"
	"shipping_portal_backend/platform/novaposhta"
)

// WarehousePicker is the searchable warehouse selector: a filter input over
// the loaded, number-sorted warehouse list, rendered as a scrolling window.
type WarehousePicker struct {
	filter textinput.Model
	loader *lookup.WarehouseLoader
	styles *Styles

	state    lookup.WarehouseState
	sorted   []novaposhta.Warehouse
	cursor   int
	selected *novaposhta.Warehouse
}

// NewWarehousePicker creates a picker driving the given loader.
func NewWarehousePicker(loader *lookup.WarehouseLoader, styles *Styles) *WarehousePicker {
	ti := textinput.New()
	ti.Placeholder = "Filter by name, address or number"
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return &WarehousePicker{
		filter: ti,
		loader: loader,
		styles: styles,
	}
}

// Init initialises the picker.
func (p *WarehousePicker) Init() tea.Cmd {
	return textinput.Blink
}

// SetCity switches the picker to a new settlement. Any previous warehouse
// selection is dropped: it belonged to the settlement it was fetched for.
func (p *WarehousePicker) SetCity(cityRef string) {
	p.selected = nil
	p.cursor = 0
	p.filter.SetValue("")
	p.loader.SetCity(cityRef)
}

// SetState applies a loader snapshot.
func (p *WarehousePicker) SetState(state lookup.WarehouseState) {
	p.state = state
	p.sorted = addrservice.SortWarehousesByNumber(state.Warehouses)
	if p.cursor >= len(p.sorted) {
		p.cursor = 0
	}
}

// Selected returns the chosen warehouse, or nil.
func (p *WarehousePicker) Selected() *novaposhta.Warehouse {
	return p.selected
}

func (p *WarehousePicker) visible() []novaposhta.Warehouse {
	return addrservice.FilterWarehouses(p.sorted, p.filter.Value())
}

// Update handles key messages. It returns true when a warehouse was chosen.
func (p *WarehousePicker) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return cmd, false
	}

	visible := p.visible()
	switch keyMsg.Type {
	case tea.KeyUp:
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false
	case tea.KeyDown:
		if p.cursor < len(visible)-1 {
			p.cursor++
		}
		return nil, false
	case tea.KeyEnter:
		if p.cursor < len(visible) {
			warehouse := visible[p.cursor]
			p.selected = &warehouse
			return nil, true
		}
		return nil, false
	}

	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.cursor = 0
	}
	return cmd, false
}

// View renders the filter and the visible window of warehouses.
func (p *WarehousePicker) View() string {
	var b strings.Builder
	b.WriteString(p.filter.View())
	b.WriteString("\n\n")

	switch {
	case p.state.Loading:
		b.WriteString(p.styles.Muted.Render("Loading warehouses..."))
	case p.state.Err != "":
		b.WriteString(p.styles.Error.Render(p.state.Err))
	default:
		visible := p.visible()
		if len(visible) == 0 {
			b.WriteString(p.styles.Muted.Render("No warehouses match"))
			break
		}
		start := 0
		if p.cursor >= visibleRows {
			start = p.cursor - visibleRows + 1
		}
		end := start + visibleRows
		if end > len(visible) {
			end = len(visible)
		}
		for i := start; i < end; i++ {
			b.WriteString(p.renderRow(i, visible[i]))
			b.WriteString("\n")
		}
		b.WriteString(p.styles.Muted.Render(
			fmt.Sprintf("%d of %d", p.cursor+1, len(visible))))
	}
	return b.String()
}

func (p *WarehousePicker) renderRow(i int, warehouse novaposhta.Warehouse) string {
	label := fmt.Sprintf("№%s %s", warehouse.Number, warehouse.Description)
	if i == p.cursor {
		return p.styles.Selected.Render("> ") + label
	}
	return "  " + label
}
