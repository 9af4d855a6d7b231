package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/velocity-drive/fleetdesk/internal/dashboard"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// focusRegion identifies where keyboard input is routed.
type focusRegion int

const (
	focusBrowse focusRegion = iota
	focusSearch
	focusComposer
)

// Auth form field order.
const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
	authFieldCount
)

// Car composer field order.
const (
	carFieldMake = iota
	carFieldModel
	carFieldPrice
	carFieldCount
)

// Booking composer field order.
const (
	bookingFieldCustomer = iota
	bookingFieldStart
	bookingFieldEnd
	bookingFieldCount
)

// refreshedMsg, authedMsg, and submittedMsg report command completion;
// the controller has already absorbed the outcome into its state, so the
// model only re-snapshots (and clears forms on success).
type refreshedMsg struct{ err error }

type authedMsg struct{ err error }

type submittedMsg struct{ err error }

// Model is the bubbletea presentation of the dashboard. All state lives
// in the controller; the model holds only input widgets, focus, and the
// latest snapshot.
type Model struct {
	ctrl   *dashboard.Controller
	styles Styles
	width  int
	height int

	view dashboard.View

	// Auth screen.
	authInputs [authFieldCount]textinput.Model
	authFocus  int
	authRole   session.Role

	// Dashboard.
	focus         focusRegion
	search        textinput.Model
	carInputs     [carFieldCount]textinput.Model
	carAvailable  bool
	bookingInputs [bookingFieldCount]textinput.Model
	composerFocus int
	cursor        int
	pendingDelete string
}

// New builds the TUI model around a controller.
func New(ctrl *dashboard.Controller) Model {
	m := Model{
		ctrl:         ctrl,
		styles:       DefaultStyles(),
		authRole:     session.RoleCustomer,
		carAvailable: true,
	}

	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		return ti
	}

	m.authInputs[authFieldName] = newInput("Enter your name")
	m.authInputs[authFieldEmail] = newInput("name@example.com")
	m.authInputs[authFieldPassword] = newInput("Minimum 6 characters")
	m.authInputs[authFieldPassword].EchoMode = textinput.EchoPassword
	m.authFocus = authFieldEmail
	m.authInputs[authFieldEmail].Focus()

	m.search = newInput("Search...")

	m.carInputs[carFieldMake] = newInput("Make")
	m.carInputs[carFieldModel] = newInput("Model")
	m.carInputs[carFieldPrice] = newInput("Price per day")

	m.bookingInputs[bookingFieldCustomer] = newInput("Customer name")
	m.bookingInputs[bookingFieldStart] = newInput("Start (YYYY-MM-DD)")
	m.bookingInputs[bookingFieldEnd] = newInput("End (YYYY-MM-DD)")

	m.view = ctrl.Snapshot()
	return m
}

// Init triggers the initial fleet refresh when a persisted session is
// already signed in.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.ctrl.Authenticated() {
		cmds = append(cmds, m.refreshCmd("Initial load"))
	}
	return tea.Batch(cmds...)
}

func (m Model) refreshCmd(reason string) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.ctrl.Refresh(context.Background(), reason)}
	}
}

func (m Model) authCmd() tea.Cmd {
	in := dashboard.AuthInput{
		Mode:     m.view.AuthMode,
		Name:     m.authInputs[authFieldName].Value(),
		Email:    m.authInputs[authFieldEmail].Value(),
		Password: m.authInputs[authFieldPassword].Value(),
		Role:     m.authRole,
	}
	return func() tea.Msg {
		return authedMsg{err: m.ctrl.Authenticate(context.Background(), in)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	in := dashboard.ComposerInput{Mode: m.view.Composer}
	if in.Mode == session.ComposerCar {
		in.Car = dashboard.CarInput{
			Make:      m.carInputs[carFieldMake].Value(),
			Model:     m.carInputs[carFieldModel].Value(),
			Price:     m.carInputs[carFieldPrice].Value(),
			Available: m.carAvailable,
		}
	} else {
		var carID string
		if m.view.SelectedCar != nil {
			carID = m.view.SelectedCar.ID
		}
		in.Booking = ledger.Draft{
			CustomerName: m.bookingInputs[bookingFieldCustomer].Value(),
			CarID:        carID,
			StartDate:    m.bookingInputs[bookingFieldStart].Value(),
			EndDate:      m.bookingInputs[bookingFieldEnd].Value(),
		}
	}
	return func() tea.Msg {
		return submittedMsg{err: m.ctrl.SubmitComposer(context.Background(), in)}
	}
}

// Update routes messages: window sizing, command completions, then
// keyboard input split by screen and focus region.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.view = m.ctrl.Snapshot()
		m.clampCursor()
		return m, nil

	case authedMsg:
		m.view = m.ctrl.Snapshot()
		if msg.err == nil {
			for i := range m.authInputs {
				m.authInputs[i].SetValue("")
			}
			m.authRole = session.RoleCustomer
			m.focus = focusBrowse
		}
		return m, nil

	case submittedMsg:
		m.view = m.ctrl.Snapshot()
		if msg.err == nil {
			m.clearComposer()
			m.focus = focusBrowse
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view.Session == nil {
			return m.updateAuth(msg)
		}
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	register := m.view.AuthMode == session.AuthRegister

	switch msg.String() {
	case "ctrl+s":
		next := session.AuthLogin
		if !register {
			next = session.AuthRegister
		}
		m.ctrl.SetAuthMode(next)
		m.view = m.ctrl.Snapshot()
		if next == session.AuthLogin && m.authFocus == authFieldName {
			m.setAuthFocus(authFieldEmail)
		}
		return m, nil

	case "ctrl+r":
		if register {
			if m.authRole == session.RoleCustomer {
				m.authRole = session.RoleAdmin
			} else {
				m.authRole = session.RoleCustomer
			}
		}
		return m, nil

	case "tab", "down":
		m.setAuthFocus(m.nextAuthField(1))
		return m, nil

	case "shift+tab", "up":
		m.setAuthFocus(m.nextAuthField(-1))
		return m, nil

	case "enter":
		if m.view.AuthBusy {
			return m, nil
		}
		return m, m.authCmd()

	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *Model) nextAuthField(step int) int {
	first := authFieldName
	if m.view.AuthMode == session.AuthLogin {
		first = authFieldEmail
	}
	next := m.authFocus + step
	if next < first {
		next = authFieldPassword
	}
	if next > authFieldPassword {
		next = first
	}
	return next
}

func (m *Model) setAuthFocus(field int) {
	m.authInputs[m.authFocus].Blur()
	m.authFocus = field
	m.authInputs[m.authFocus].Focus()
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete captures all input until answered.
	if m.pendingDelete != "" {
		switch msg.String() {
		case "y", "Y":
			m.ctrl.DeleteBooking(context.Background(), m.pendingDelete, true)
		case "n", "N", "esc":
			m.ctrl.DeleteBooking(context.Background(), m.pendingDelete, false)
		default:
			return m, nil
		}
		m.pendingDelete = ""
		m.view = m.ctrl.Snapshot()
		m.clampCursor()
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m.updateSearch(msg)
	case focusComposer:
		return m.updateComposer(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.focus = focusBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(m.search.Value())
	m.view = m.ctrl.Snapshot()
	m.clampCursor()
	return m, cmd
}

func (m Model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	car := m.view.Composer == session.ComposerCar

	switch msg.String() {
	case "esc":
		m.blurComposer()
		m.focus = focusBrowse
		return m, nil

	case "tab", "down":
		m.setComposerFocus(m.composerFocus + 1)
		return m, nil

	case "shift+tab", "up":
		m.setComposerFocus(m.composerFocus - 1)
		return m, nil

	case "ctrl+a":
		if car {
			m.carAvailable = !m.carAvailable
		}
		return m, nil

	case "enter":
		if m.view.Submitting {
			return m, nil
		}
		return m, m.submitCmd()
	}

	var cmd tea.Cmd
	if car {
		m.carInputs[m.composerFocus], cmd = m.carInputs[m.composerFocus].Update(msg)
	} else {
		m.bookingInputs[m.composerFocus], cmd = m.bookingInputs[m.composerFocus].Update(msg)
	}
	return m, cmd
}

func (m *Model) composerFieldCount() int {
	if m.view.Composer == session.ComposerCar {
		return carFieldCount
	}
	return bookingFieldCount
}

func (m *Model) setComposerFocus(field int) {
	count := m.composerFieldCount()
	if field < 0 {
		field = count - 1
	}
	if field >= count {
		field = 0
	}
	m.blurComposer()
	m.composerFocus = field
	if m.view.Composer == session.ComposerCar {
		m.carInputs[field].Focus()
	} else {
		m.bookingInputs[field].Focus()
	}
}

func (m *Model) blurComposer() {
	for i := range m.carInputs {
		m.carInputs[i].Blur()
	}
	for i := range m.bookingInputs {
		m.bookingInputs[i].Blur()
	}
}

func (m *Model) clearComposer() {
	for i := range m.carInputs {
		m.carInputs[i].SetValue("")
	}
	for i := range m.bookingInputs {
		m.bookingInputs[i].SetValue("")
	}
	m.carAvailable = true
	m.blurComposer()
	m.composerFocus = 0
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "1":
		m.ctrl.SetActiveTab(dashboard.TabCars)
	case "2":
		m.ctrl.SetActiveTab(dashboard.TabBookings)
	case "3":
		m.ctrl.SetActiveTab(dashboard.TabInsights)

	case "/":
		m.focus = focusSearch
		m.search.SetValue(m.view.Query)
		m.search.CursorEnd()
		m.search.Focus()
		m.view = m.ctrl.Snapshot()
		return m, nil

	case "ctrl+u":
		m.ctrl.ClearQuery()
		m.search.SetValue("")

	case "s":
		m.ctrl.SetSortMode(nextSortMode(m.view.SortMode))

	case "v":
		if m.view.ViewMode == dashboard.ViewGrid {
			m.ctrl.SetViewMode(dashboard.ViewTable)
		} else {
			m.ctrl.SetViewMode(dashboard.ViewGrid)
		}

	case "r":
		return m, m.refreshCmd("Manual refresh")

	case "c":
		mode := session.ComposerBooking
		if m.view.IsAdmin {
			mode = m.view.Composer
		}
		m.ctrl.SetComposerMode(mode)
		m.view = m.ctrl.Snapshot()
		m.focus = focusComposer
		m.setComposerFocus(0)
		return m, nil

	case "b":
		m.ctrl.SetComposerMode(session.ComposerBooking)
		m.view = m.ctrl.Snapshot()
		m.focus = focusComposer
		m.setComposerFocus(0)
		return m, nil

	case "a":
		// Admin-only car composer; the controller forces non-admins back
		// to the booking form.
		m.ctrl.SetComposerMode(session.ComposerCar)
		m.view = m.ctrl.Snapshot()
		m.focus = focusComposer
		m.setComposerFocus(0)
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncSelection()
		return m, nil

	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		m.syncSelection()
		return m, nil

	case "enter":
		m.syncSelection()
		m.view = m.ctrl.Snapshot()
		return m, nil

	case "+":
		m.ctrl.SetRentalDays(m.view.RentalDays + 1)
	case "-":
		m.ctrl.SetRentalDays(m.view.RentalDays - 1)

	case "x", "d":
		if m.view.ActiveTab == dashboard.TabBookings && m.cursor < len(m.view.Bookings) {
			m.pendingDelete = m.view.Bookings[m.cursor].ID
			return m, nil
		}

	case "ctrl+l":
		m.ctrl.Logout(context.Background())
		m.view = m.ctrl.Snapshot()
		m.setAuthFocus(authFieldEmail)
		return m, nil
	}

	m.view = m.ctrl.Snapshot()
	m.clampCursor()
	return m, nil
}

// syncSelection mirrors the car-list cursor into the controller's
// selected car so the estimate panel follows it.
func (m *Model) syncSelection() {
	if m.view.ActiveTab != dashboard.TabCars || m.cursor >= len(m.view.Cars) {
		return
	}
	m.ctrl.SelectCar(m.view.Cars[m.cursor].ID)
}

func (m *Model) rowCount() int {
	switch m.view.ActiveTab {
	case dashboard.TabBookings:
		return len(m.view.Bookings)
	case dashboard.TabInsights:
		return 0
	default:
		return len(m.view.Cars)
	}
}

func (m *Model) clampCursor() {
	if count := m.rowCount(); m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextSortMode(mode fleet.SortMode) fleet.SortMode {
	switch mode {
	case fleet.SortRecommended:
		return fleet.SortPriceAsc
	case fleet.SortPriceAsc:
		return fleet.SortPriceDesc
	case fleet.SortPriceDesc:
		return fleet.SortMakeAsc
	default:
		return fleet.SortRecommended
	}
}
