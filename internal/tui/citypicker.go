package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shipping_portal_backend/internal/lookup"
	"shipping_portal_backend/platform/novaposhta"
)

const visibleRows = 8

// CityPicker is the autocomplete city selector: a text input feeding the
// debounced searcher, with keyboard navigation over the result list.
type CityPicker struct {
	input    textinput.Model
	searcher *lookup.CitySearcher
	styles   *Styles

	state    lookup.CityState
	cursor   int
	selected *novaposhta.Settlement
}

// NewCityPicker creates a picker driving the given searcher.
func NewCityPicker(searcher *lookup.CitySearcher, placeholder string, styles *Styles) *CityPicker {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return &CityPicker{
		input:    ti,
		searcher: searcher,
		styles:   styles,
	}
}

// Init initialises the picker.
func (p *CityPicker) Init() tea.Cmd {
	return textinput.Blink
}

// SetState applies a searcher snapshot.
func (p *CityPicker) SetState(state lookup.CityState) {
	p.state = state
	if p.cursor >= len(state.Cities) {
		p.cursor = 0
	}
}

// Selected returns the chosen settlement, or nil.
func (p *CityPicker) Selected() *novaposhta.Settlement {
	return p.selected
}

// Reset clears the selection and query.
func (p *CityPicker) Reset() {
	p.selected = nil
	p.cursor = 0
	p.input.SetValue("")
	p.searcher.SetQuery("")
}

// Update handles key messages. It returns true when a settlement was chosen.
func (p *CityPicker) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd, false
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false
	case tea.KeyDown:
		if p.cursor < len(p.state.Cities)-1 {
			p.cursor++
		}
		return nil, false
	case tea.KeyEnter:
		if p.cursor < len(p.state.Cities) {
			settlement := p.state.Cities[p.cursor]
			p.selected = &settlement
			return nil, true
		}
		return nil, false
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if value := p.input.Value(); value != before {
		p.selected = nil
		p.cursor = 0
		p.searcher.SetQuery(value)
	}
	return cmd, false
}

// View renders the input and the visible window of results.
func (p *CityPicker) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	switch {
	case p.state.Loading:
		b.WriteString(p.styles.Muted.Render("Searching..."))
	case p.state.Err != "":
		b.WriteString(p.styles.Error.Render(p.state.Err))
	case len(p.state.Cities) == 0:
		b.WriteString(p.styles.Muted.Render("Type at least 2 characters to search"))
	default:
		start := 0
		if p.cursor >= visibleRows {
			start = p.cursor - visibleRows + 1
		}
		end := start + visibleRows
		if end > len(p.state.Cities) {
			end = len(p.state.Cities)
		}
		for i := start; i < end; i++ {
			b.WriteString(p.renderRow(i))
			b.WriteString("\n")
		}
		if len(p.state.Cities) > visibleRows {
			b.WriteString(p.styles.Muted.Render(
				fmt.Sprintf("%d of %d", p.cursor+1, len(p.state.Cities))))
		}
	}
	return b.String()
}

func (p *CityPicker) renderRow(i int) string {
	settlement := p.state.Cities[i]
	label := settlement.MainDescription
	if settlement.AreaDescription != "" {
		label += p.styles.Muted.Render(" (" + settlement.AreaDescription + ")")
	}
	if i == p.cursor {
		return p.styles.Selected.Render("> ") + label
	}
	return "  " + label
}
