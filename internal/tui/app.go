package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/tokenestate/internal/catalog"
	"github.com/jask/tokenestate/internal/config"
	"github.com/jask/tokenestate/internal/prefs"
	"github.com/jask/tokenestate/internal/wallet"
)

// App is the page shell: tab strip with the wallet button, and one view at a
// time.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     *zap.Logger
	catalog *catalog.Catalog
	prefs   prefs.Store

	session *wallet.Session
	wallet  wallet.Snapshot
	changes chan struct{}
	notices chan string
	spinner spinner.Model
	// spinning is set from the key press, before the session reports
	// Connecting, so the first tick is never dropped.
	spinning bool

	view     view
	previous view
	detail   *catalog.Resolver

	order   catalog.Order
	query   string
	visible []catalog.Property
	table   table.Model

	prompt prompt
	input  textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
}

// Deps are the capabilities the shell runs against.
type Deps struct {
	Catalog   *catalog.Catalog
	Provider  wallet.Provider
	Clipboard wallet.Clipboard
	// Scheduler defaults to the runtime timer.
	Scheduler wallet.Scheduler
	Prefs     prefs.Store
	Logger    *zap.Logger
}

type view string

const (
	viewHome       view = "home"
	viewProperties view = "properties"
	viewDetail     view = "detail"
	viewPortfolio  view = "portfolio"
)

type prompt string

const (
	promptNone   prompt = ""
	promptFilter prompt = "filter"
	promptGoto   prompt = "goto"
)

type (
	statusMsg      string
	errMsg         struct{ err error }
	prefsMsg       prefs.Listing
	walletMsg      struct{}
	noticeMsg      string
	connectDoneMsg struct{ err error }
	copyDoneMsg    struct{ err error }
)

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		catalog: deps.Catalog,
		prefs:   deps.Prefs,
		changes: make(chan struct{}, 1),
		notices: make(chan string, 8),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		view:    viewHome,
		width:   100,
		height:  32,
	}
	a.session = wallet.NewSession(wallet.Options{
		Provider:       deps.Provider,
		Clipboard:      deps.Clipboard,
		Scheduler:      deps.Scheduler,
		CopyRevert:     cfg.UI.CopyRevert,
		ConnectTimeout: cfg.Wallet.ConnectTimeout,
		Logger:         log,
		OnChange:       func(wallet.Snapshot) { a.signalChange() },
		OnNotice:       a.pushNotice,
	})
	a.wallet = a.session.Snapshot()
	a.table = table.New(
		table.WithColumns(listingColumns(a.width)),
		table.WithFocused(true),
		table.WithHeight(a.tableHeight()),
	)
	a.refreshListing()
	return a
}

// OpenProperty shows the detail view for id without a carried record, the
// way a deep link arrives.
func (a *App) OpenProperty(id string) {
	a.openDetail(strings.TrimSpace(id), nil)
}

// Session exposes the wallet session so the caller can close it on exit.
func (a *App) Session() *wallet.Session { return a.session }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadPrefs(), a.listen())
}

func (a *App) signalChange() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

func (a *App) pushNotice(msg string) {
	select {
	case a.notices <- msg:
	default:
		a.log.Debug("notice dropped", zap.String("notice", msg))
	}
}

// listen waits for the next session change or notice. Changes coalesce; the
// handler re-reads the snapshot.
func (a *App) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return walletMsg{}
		case n := <-a.notices:
			return noticeMsg(n)
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) loadPrefs() tea.Cmd {
	return func() tea.Msg {
		l, err := a.prefs.LoadListing()
		if err != nil {
			return errMsg{fmt.Errorf("load preferences: %w", err)}
		}
		return prefsMsg(l)
	}
}

func (a *App) savePrefs() tea.Cmd {
	l := prefs.Listing{Order: string(a.order)}
	return func() tea.Msg {
		if err := a.prefs.SaveListing(l); err != nil {
			return errMsg{fmt.Errorf("save preferences: %w", err)}
		}
		return nil
	}
}

func (a *App) connectCmd() tea.Cmd {
	return func() tea.Msg {
		return connectDoneMsg{a.session.Connect(a.ctx)}
	}
}

func (a *App) copyCmd() tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{a.session.CopyIdentity(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.table.SetColumns(listingColumns(a.width))
		a.table.SetHeight(a.tableHeight())
		return a, nil
	case tea.KeyMsg:
		if a.prompt != promptNone {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)
	case walletMsg:
		a.wallet = a.session.Snapshot()
		if a.wallet.Status != wallet.StatusConnecting {
			a.spinning = false
			return a, a.listen()
		}
		if !a.spinning {
			a.spinning = true
			return a, tea.Batch(a.listen(), a.spinner.Tick)
		}
		return a, a.listen()
	case noticeMsg:
		a.setError(string(m))
		return a, a.listen()
	case connectDoneMsg:
		a.wallet = a.session.Snapshot()
		a.spinning = a.wallet.Status == wallet.StatusConnecting
		if m.err == nil && a.wallet.Status == wallet.StatusConnected {
			a.setStatus("Wallet connected")
		}
		return a, nil
	case copyDoneMsg:
		a.wallet = a.session.Snapshot()
		switch {
		case m.err == nil:
			a.setStatus("Identity copied to clipboard")
		case errors.Is(m.err, wallet.ErrNoIdentity):
			a.setStatus("Connect a wallet first (w)")
		case errors.Is(m.err, wallet.ErrClipboardWriteFailed):
			// logged by the session; the indicator simply stays idle
		default:
			a.log.Warn("copy identity", zap.Error(m.err))
		}
		return a, nil
	case prefsMsg:
		order, err := catalog.ParseOrder(m.Order)
		if err != nil {
			a.log.Warn("ignoring saved sort order", zap.Error(err))
		}
		a.order = order
		a.refreshListing()
		return a, nil
	case spinner.TickMsg:
		if !a.spinning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	case errMsg:
		a.log.Error("ui error", zap.Error(m.err))
		a.setError(m.err.Error())
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, keys.Quit):
		a.session.Close()
		return a, tea.Quit
	case key.Matches(m, keys.Home):
		a.switchView(viewHome)
		return a, nil
	case key.Matches(m, keys.Properties):
		a.switchView(viewProperties)
		return a, nil
	case key.Matches(m, keys.Portfolio):
		a.switchView(viewPortfolio)
		return a, nil
	case key.Matches(m, keys.NextTab):
		a.switchView(nextTab(a.view))
		return a, nil
	case key.Matches(m, keys.Connect):
		if a.wallet.Status == wallet.StatusConnecting || a.wallet.Status == wallet.StatusConnected {
			return a, nil
		}
		a.status = ""
		if a.spinning {
			return a, a.connectCmd()
		}
		a.spinning = true
		return a, tea.Batch(a.spinner.Tick, a.connectCmd())
	case key.Matches(m, keys.Goto):
		a.openPrompt(promptGoto, "property id")
		return a, nil
	}

	switch a.view {
	case viewProperties:
		return a.handlePropertiesKey(m)
	case viewDetail:
		if key.Matches(m, keys.Back) {
			a.view = a.previous
			a.detail = nil
		}
		return a, nil
	case viewPortfolio:
		if key.Matches(m, keys.Copy) {
			return a, a.copyCmd()
		}
	}
	return a, nil
}

func (a *App) handlePropertiesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, keys.Sort):
		a.order = a.order.Next()
		a.refreshListing()
		return a, a.savePrefs()
	case key.Matches(m, keys.Filter):
		a.openPrompt(promptFilter, "title or location")
		a.input.SetValue(a.query)
		a.input.CursorEnd()
		return a, nil
	case key.Matches(m, keys.Open):
		i := a.table.Cursor()
		if i < 0 || i >= len(a.visible) {
			return a, nil
		}
		carried := a.visible[i]
		a.openDetail(carried.ID, &carried)
		return a, nil
	case key.Matches(m, keys.Back):
		if a.query != "" {
			a.query = ""
			a.refreshListing()
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(m)
	return a, cmd
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, keys.Cancel):
		if a.prompt == promptFilter {
			a.query = ""
			a.refreshListing()
		}
		a.closePrompt()
		return a, nil
	case key.Matches(m, keys.Submit):
		value := strings.TrimSpace(a.input.Value())
		kind := a.prompt
		a.closePrompt()
		if kind == promptGoto && value != "" {
			a.openDetail(value, nil)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if a.prompt == promptFilter {
		a.query = a.input.Value()
		a.refreshListing()
	}
	return a, cmd
}

func (a *App) openPrompt(kind prompt, placeholder string) {
	a.input = textinput.New()
	a.input.Placeholder = placeholder
	a.input.CharLimit = 64
	a.input.Focus()
	a.prompt = kind
}

func (a *App) closePrompt() {
	a.input.Blur()
	a.prompt = promptNone
}

func (a *App) switchView(v view) {
	if v == a.view {
		return
	}
	a.view = v
	a.detail = nil
}

// openDetail pins the resolution for the detail view. A carried record wins
// over the catalog.
func (a *App) openDetail(id string, carried *catalog.Property) {
	if a.view != viewDetail {
		a.previous = a.view
	}
	var lookup catalog.Lookup
	if a.catalog != nil {
		lookup = a.catalog
	}
	a.detail = catalog.NewResolver(id, carried, lookup, a.log)
	a.view = viewDetail
}

func (a *App) refreshListing() {
	var all []catalog.Property
	if a.catalog != nil {
		all = a.catalog.All()
	}
	a.visible = catalog.Sort(catalog.Filter(all, a.query), a.order)
	rows := make([]table.Row, 0, len(a.visible))
	for _, p := range a.visible {
		rows = append(rows, table.Row{
			p.Title,
			p.Location,
			p.Price,
			fmt.Sprintf("%d%%", catalog.ClampFunded(p.FundedPercentage)),
		})
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) || c < 0 {
		a.table.SetCursor(max(0, len(rows)-1))
	}
}

func (a *App) tableHeight() int {
	return max(3, a.height-10)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

func nextTab(v view) view {
	switch v {
	case viewHome:
		return viewProperties
	case viewProperties:
		return viewPortfolio
	default:
		return viewHome
	}
}

func listingColumns(width int) []table.Column {
	title := max(18, width-58)
	return []table.Column{
		{Title: "Property", Width: title},
		{Title: "Location", Width: 16},
		{Title: "Price", Width: 16},
		{Title: "Funded", Width: 8},
	}
}
