package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jask/tokenestate/internal/catalog"
	"github.com/jask/tokenestate/internal/wallet"
	"github.com/jask/tokenestate/internal/widgets"
)

const notFoundMessage = "Property not found. Please go back."

func (a *App) View() string {
	var body string
	switch a.view {
	case viewProperties:
		body = a.renderProperties()
	case viewDetail:
		body = a.renderDetail()
	case viewPortfolio:
		body = a.renderPortfolio()
	default:
		body = a.renderHome()
	}
	page := strings.Join([]string{a.renderNavbar(), "", body}, "\n")
	bodyHeight := max(1, a.height-2)
	if a.prompt == promptGoto {
		page = widgets.Overlay(page, "Open property by id\n\n"+a.input.View(), a.width, bodyHeight)
	}
	return page + "\n" + a.renderStatus() + "\n" + a.renderFooter()
}

func (a *App) renderNavbar() string {
	tabs := []struct {
		v     view
		label string
	}{
		{viewHome, "Home"},
		{viewProperties, "Properties"},
		{viewPortfolio, "Portfolio"},
	}
	parts := []string{brandStyle.Render("TokenEstate")}
	for _, t := range tabs {
		style := tabStyle
		if a.view == t.v || (a.view == viewDetail && a.previous == t.v) {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(t.label))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	button := walletStyle.Render(walletLabel(a.wallet, a.spinner.View()))
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(button))
	return left + strings.Repeat(" ", gap) + button
}

// walletLabel is the text of the wallet button for a session state.
func walletLabel(s wallet.Snapshot, spin string) string {
	switch s.Status {
	case wallet.StatusConnecting:
		return strings.TrimSpace(spin + " Connecting...")
	case wallet.StatusConnected:
		label := wallet.TruncateIdentity(s.Identity)
		if s.CopyState == wallet.CopyCopied {
			label += " ✓ Copied"
		}
		return label
	case wallet.StatusFailed:
		return "Retry Connect"
	default:
		return "Connect Wallet"
	}
}

func (a *App) renderHome() string {
	var b strings.Builder
	b.WriteString(heroStyle.Render("Invest in real estate with tokens") + "\n")
	b.WriteString(mutedStyle.Render("Own a fraction of income-producing property, settled on-chain.") + "\n\n")

	stats := a.catalog.Stats()
	unit := ""
	if all := a.catalog.All(); len(all) > 0 {
		unit = catalog.PriceUnit(all[0].Price)
	}
	b.WriteString(titleStyle.Render("Platform") + "\n")
	figures := widgets.Column{Widgets: []widgets.Widget{
		widgets.Text(fmt.Sprintf("  Properties listed: %d", stats.Properties)),
		widgets.Text("  Total value: " + catalog.FormatAmount(decimal.NewFromInt(stats.TotalListed), unit)),
		widgets.Text(fmt.Sprintf("  Average funded: %d%%", stats.AverageFunded)),
	}}
	b.WriteString(figures.Render(a.width, 3) + "\n\n")

	b.WriteString(titleStyle.Render("Available properties") + "\n")
	for _, p := range a.catalog.All() {
		fmt.Fprintf(&b, "  %s  %s  %s\n", p.Title, mutedStyle.Render(p.Location), p.Price)
	}
	if a.catalog.Len() == 0 {
		b.WriteString(mutedStyle.Render("  No properties listed yet.") + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("How it works") + "\n")
	for i, step := range []string{
		"Connect your wallet",
		"Browse tokenized properties",
		"Buy tokens and track your holdings",
	} {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	blurbs := widgets.Row{Gap: 1, Widgets: []widgets.Widget{
		widgets.Card{Title: "Tokenization", Body: "Properties are split into tokens anyone can hold."},
		widgets.Card{Title: "Governance", Body: "Token holders vote on property decisions."},
		widgets.Card{Title: "Compliance", Body: "Listings are reviewed before they go live."},
	}}
	b.WriteString(blurbs.Render(a.width, 5) + "\n\n")
	b.WriteString(mutedStyle.Render("About · Terms · Privacy · Contact"))
	return b.String()
}

func (a *App) renderProperties() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Properties") + "  " + mutedStyle.Render(a.order.Label()))
	if a.query != "" && a.prompt != promptFilter {
		b.WriteString("  " + mutedStyle.Render("filter: "+a.query))
	}
	b.WriteString("\n")
	if a.prompt == promptFilter {
		b.WriteString("/ " + a.input.View() + "\n")
	}
	if len(a.visible) == 0 {
		b.WriteString(mutedStyle.Render("No properties match."))
		return b.String()
	}
	b.WriteString(a.table.View())
	return b.String()
}

func (a *App) renderDetail() string {
	if a.detail == nil {
		return notFoundMessage
	}
	p, ok := a.detail.Resolution().Property()
	if !ok {
		return errorStyle.Render(notFoundMessage) + "\n" +
			mutedStyle.Render(fmt.Sprintf("No listing with id %q.", a.detail.RequestedID()))
	}
	placeholder := a.cfg.UI.PlaceholderImage
	if placeholder == "" {
		placeholder = catalog.PlaceholderImage
	}
	var b strings.Builder
	b.WriteString(heroStyle.Render(p.Title) + "\n")
	b.WriteString(mutedStyle.Render("Image: "+catalog.ImageRef(p.ImageURL, placeholder)) + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	fmt.Fprintf(&b, "Price:    %s\n", p.Price)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	b.WriteString("Funded:   " + widgets.Progress{Percent: p.FundedPercentage}.Render(min(40, max(10, a.width-10)), 1) + "\n")
	fmt.Fprintf(&b, "Raised:   %s\n\n", p.RaisedLabel())
	if len(p.Features) > 0 {
		b.WriteString(titleStyle.Render("Features") + "\n")
		for _, f := range p.Features {
			b.WriteString("  • " + f + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render("Contact") + "\n")
	b.WriteString(p.ContactLine())
	return b.String()
}

func (a *App) renderPortfolio() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Portfolio") + "\n\n")
	switch a.wallet.Status {
	case wallet.StatusConnected:
	case wallet.StatusConnecting:
		b.WriteString(a.spinner.View() + " Waiting for the wallet...")
		return b.String()
	default:
		b.WriteString(mutedStyle.Render("Connect a wallet (w) to see your identity."))
		return b.String()
	}
	b.WriteString("Wallet: " + okStyle.Render("connected") + "\n")
	b.WriteString("Identity: " + a.wallet.Identity + "\n")
	if a.wallet.CopyState == wallet.CopyCopied {
		b.WriteString(okStyle.Render("Copied!") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("Press y to copy") + "\n")
	}
	if qr, err := wallet.QRCode(a.wallet.Identity); err == nil {
		b.WriteString("\n" + qr)
	}
	return b.String()
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return errorStyle.Render(a.status)
	}
	return okStyle.Render(a.status)
}

func (a *App) renderFooter() string {
	parts := make([]string, 0, 12)
	for _, kb := range bindingsFor(a.view, a.prompt) {
		h := kb.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+mutedStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
