package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/velocity-drive/fleetdesk/internal/dashboard"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// View renders either the authentication gate or the dashboard; nothing
// operational is reachable without a session.
func (m Model) View() string {
	if m.view.Session == nil {
		return m.viewAuth()
	}
	return m.viewDashboard()
}

func (m Model) viewAuth() string {
	s := m.styles
	register := m.view.AuthMode == session.AuthRegister

	var b strings.Builder
	b.WriteString(s.Eyebrow.Render("Velocity Drive Rentals") + "\n")
	if register {
		b.WriteString(s.Title.Render("Register Your Account") + "\n")
	} else {
		b.WriteString(s.Title.Render("Login to Continue") + "\n")
	}
	b.WriteString(s.Muted.Render(m.view.AuthMessage) + "\n\n")

	if register {
		b.WriteString(s.FormLabel.Render("Full Name") + "\n")
		b.WriteString(m.authInputs[authFieldName].View() + "\n")
	}
	b.WriteString(s.FormLabel.Render("Email") + "\n")
	b.WriteString(m.authInputs[authFieldEmail].View() + "\n")
	b.WriteString(s.FormLabel.Render("Password") + "\n")
	b.WriteString(m.authInputs[authFieldPassword].View() + "\n")
	if register {
		b.WriteString(s.FormLabel.Render("Account Type ") + string(m.authRole) + s.Help.Render("  (ctrl+r toggles)") + "\n")
	}

	if m.view.AuthError != "" {
		b.WriteString("\n" + s.FormError.Render(m.view.AuthError) + "\n")
	}
	if m.view.AuthBusy {
		if register {
			b.WriteString("\n" + s.Muted.Render("Registering...") + "\n")
		} else {
			b.WriteString("\n" + s.Muted.Render("Signing in...") + "\n")
		}
	}

	b.WriteString("\n" + s.Help.Render("enter submit · tab next field · ctrl+s login/register · ctrl+c quit"))
	return s.Card.Render(b.String())
}

func (m Model) viewDashboard() string {
	sections := []string{
		m.viewHeader(),
		m.viewTabs(),
		m.viewContent(),
	}
	if m.focus == focusComposer {
		sections = append(sections, m.viewComposer())
	}
	sections = append(sections, m.viewFeed(), m.viewHelp())

	if m.pendingDelete != "" {
		confirm := m.styles.ConfirmFrame.Render(
			fmt.Sprintf("Delete booking %s? (y/n)", m.pendingDelete))
		sections = append([]string{confirm}, sections...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	s := m.styles
	v := m.view

	banner := s.Banner[string(v.Banner.Tone)].Render(v.Banner.Text)
	if v.Syncing {
		banner = s.Muted.Render("Synchronizing fleet data...")
	}

	left := s.Eyebrow.Render("Velocity Drive Rentals") + "  " + s.Title.Render("Car Rental Workspace")
	right := s.Muted.Render(fmt.Sprintf("%s · last sync %s · %s", v.Session.DisplayName(), v.LastSync, v.Session.Role))
	return left + "\n" + right + "\n" + banner
}

func (m Model) viewTabs() string {
	s := m.styles
	labels := map[dashboard.Tab]string{
		dashboard.TabCars:     "Cars",
		dashboard.TabBookings: "Bookings",
		dashboard.TabInsights: "Insights",
	}

	rendered := make([]string, 0, len(dashboard.Tabs))
	for _, tab := range dashboard.Tabs {
		if tab == m.view.ActiveTab {
			rendered = append(rendered, s.TabActive.Render(labels[tab]))
		} else {
			rendered = append(rendered, s.TabInactive.Render(labels[tab]))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.focus == focusSearch {
		return row + "\n" + m.search.View()
	}
	if m.view.Query != "" {
		return row + "\n" + m.styles.Muted.Render("filter: "+m.view.Query)
	}
	return row
}

func (m Model) viewContent() string {
	switch m.view.ActiveTab {
	case dashboard.TabBookings:
		return m.viewBookings()
	case dashboard.TabInsights:
		return m.viewInsights()
	default:
		return m.viewCars()
	}
}

func (m Model) viewCars() string {
	s := m.styles
	v := m.view

	metrics := fmt.Sprintf("Fleet %d · Available %d · Avg rate %s · Local revenue %s",
		v.Metrics.FleetSize, v.Metrics.Available,
		fleet.FormatCurrency(v.Metrics.AvgRate), fleet.FormatCurrency(v.Metrics.LocalRevenue))

	var b strings.Builder
	b.WriteString(s.Muted.Render(metrics) + "\n")
	b.WriteString(s.Muted.Render("sort: "+string(v.SortMode)+" · view: "+string(v.ViewMode)) + "\n\n")

	if len(v.Cars) == 0 {
		b.WriteString(s.Muted.Render("No cars match the current view."))
		return b.String()
	}

	if v.ViewMode == dashboard.ViewGrid {
		cards := make([]string, 0, len(v.Cars))
		for i, car := range v.Cars {
			cards = append(cards, m.carCard(car, i == m.cursor))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	} else {
		b.WriteString(s.TableHeader.Render(fmt.Sprintf("%-6s %-24s %-12s %s", "ID", "Car", "Rate", "Status")) + "\n")
		for i, car := range v.Cars {
			row := fmt.Sprintf("%-6s %-24s %-12s %s",
				"#"+car.ID, car.Label(), fleet.FormatCurrency(car.PricePerDay), availability(s, car))
			if i == m.cursor {
				row = s.RowSelected.Render(row)
			}
			b.WriteString(row + "\n")
		}
	}

	if v.SelectedCar != nil {
		estimate := float64(v.RentalDays) * v.SelectedCar.PricePerDay
		b.WriteString("\n" + s.CardTitle.Render("Estimate") + " " +
			fmt.Sprintf("%s for %d days: %s  ", v.SelectedCar.Label(), v.RentalDays, fleet.FormatCurrency(estimate)) +
			s.Help.Render("(+/- adjusts days)"))
	}
	return b.String()
}

func (m Model) carCard(car fleet.Car, selected bool) string {
	s := m.styles
	title := s.CardTitle.Render(car.Label())
	if selected {
		title = s.RowSelected.Render(car.Label())
	}
	body := fmt.Sprintf("%s\n#%s · %s/day · %s",
		title, car.ID, fleet.FormatCurrency(car.PricePerDay), availability(s, car))
	return s.Card.Render(body)
}

func availability(s Styles, car fleet.Car) string {
	if car.Available {
		return s.Available.Render("Available")
	}
	return s.Unavailable.Render("Unavailable")
}

func (m Model) viewBookings() string {
	s := m.styles
	v := m.view

	var b strings.Builder
	if v.NextPickup != nil {
		b.WriteString(s.Muted.Render(fmt.Sprintf("Next pickup: %s on %s · %d pickup(s) in the next 24h",
			v.NextPickup.CustomerName, v.NextPickup.StartDate, v.Next24h)) + "\n\n")
	}

	if len(v.Bookings) == 0 {
		b.WriteString(s.Muted.Render("No bookings logged yet."))
		return b.String()
	}

	b.WriteString(s.TableHeader.Render(fmt.Sprintf("%-10s %-16s %-20s %-24s %s", "ID", "Customer", "Car", "Dates", "Total")) + "\n")
	for i, booking := range v.Bookings {
		row := fmt.Sprintf("%-10s %-16s %-20s %-24s %s",
			booking.ID, booking.CustomerName, booking.CarLabel,
			booking.StartDate+" to "+booking.EndDate,
			fleet.FormatCurrency(booking.TotalPrice))
		if i == m.cursor {
			row = s.RowSelected.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

func (m Model) viewInsights() string {
	s := m.styles
	v := m.view

	rows := []struct {
		label string
		value string
	}{
		{"Pickups Next 24h", fmt.Sprintf("%d", v.Next24h)},
		{"Bookings Logged", fmt.Sprintf("%d", v.TotalBookings)},
		{"Unavailable Cars", fmt.Sprintf("%d", v.Insights.Unavailable)},
		{"Highest Daily Rate", fleet.FormatCurrency(v.Insights.HighestRate)},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(s.CardTitle.Render(fmt.Sprintf("%-20s", row.label)) + " " + row.value + "\n")
	}
	return b.String()
}

func (m Model) viewComposer() string {
	s := m.styles

	var b strings.Builder
	if m.view.Composer == session.ComposerCar {
		b.WriteString(s.CardTitle.Render("New Car") + "\n")
		b.WriteString(m.carInputs[carFieldMake].View() + "\n")
		b.WriteString(m.carInputs[carFieldModel].View() + "\n")
		b.WriteString(m.carInputs[carFieldPrice].View() + "\n")
		state := "no"
		if m.carAvailable {
			state = "yes"
		}
		b.WriteString(s.FormLabel.Render("Available: ") + state + s.Help.Render("  (ctrl+a toggles)") + "\n")
	} else {
		b.WriteString(s.CardTitle.Render("New Booking") + "\n")
		if m.view.SelectedCar != nil {
			b.WriteString(s.FormLabel.Render("Car: ") + m.view.SelectedCar.Label() + "\n")
		} else {
			b.WriteString(s.FormError.Render("Select a car on the Cars tab first.") + "\n")
		}
		b.WriteString(m.bookingInputs[bookingFieldCustomer].View() + "\n")
		b.WriteString(m.bookingInputs[bookingFieldStart].View() + "\n")
		b.WriteString(m.bookingInputs[bookingFieldEnd].View() + "\n")
	}

	if m.view.Submitting {
		b.WriteString(s.Muted.Render("Saving...") + "\n")
	}
	b.WriteString(s.Help.Render("enter submit · tab next field · esc close"))
	return s.Card.Render(b.String())
}

func (m Model) viewFeed() string {
	s := m.styles
	entries := m.view.Feed
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.CardTitle.Render("Activity") + "\n")
	for _, entry := range entries {
		b.WriteString(s.Muted.Render(entry.At) + "  " + entry.Message + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewHelp() string {
	help := "1/2/3 tabs · / search · s sort · v view · r refresh · c compose · x delete · ctrl+l logout · q quit"
	if m.view.IsAdmin {
		help = "1/2/3 tabs · / search · s sort · v view · r refresh · a add car · b add booking · x delete · ctrl+l logout · q quit"
	}
	return m.styles.Help.Render(help)
}
