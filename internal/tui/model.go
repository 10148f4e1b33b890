// Package tui is the interactive spending form: edit amounts, submit them,
// browse the ranked cards and assemble a custom portfolio.
package tui

import (
	"context"

	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/portfolio"
	"github.com/mozzadell/cc-optimizer/internal/report"
	"github.com/mozzadell/cc-optimizer/internal/spending"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeForm mode = iota
	modeResults
)

// resultMsg carries the outcome of a submission back into Update.
type resultMsg struct {
	seq  int
	resp *models.RecommendationResponse
	err  error
}

// Config holds the collaborators of a Model.
type Config struct {
	Context   context.Context
	Submitter spending.Submitter
	Options   models.OptimizeOptions
	Generator *report.Generator
	TopN      int
	Logger    logging.Logger
}

// Model is the bubbletea model. Form and selection state are immutable
// values replaced on every change.
type Model struct {
	ctx       context.Context
	submitter spending.Submitter
	opts      models.OptimizeOptions
	gen       *report.Generator
	topN      int
	logger    logging.Logger

	form      spending.Form
	selection portfolio.Selection
	spinner   spinner.Model

	mode   mode
	field  int
	cursor int
	width  int

	// seq numbers submissions; a reset bumps it so a late result is dropped.
	seq      int
	inFlight bool
}

// New creates the model with an empty form.
func New(cfg Config) Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewDiscardLogger()
	}
	if cfg.Generator == nil {
		cfg.Generator = report.NewGenerator(report.Options{Color: true}, cfg.Logger)
	}
	if cfg.TopN <= 0 {
		cfg.TopN = models.DefaultTopN
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Generator.Styles().Title

	return Model{
		ctx:       cfg.Context,
		submitter: cfg.Submitter,
		opts:      cfg.Options,
		gen:       cfg.Generator,
		topN:      cfg.TopN,
		logger:    cfg.Logger.WithField(logging.FieldComponent, "TUI"),
		form:      spending.NewForm(),
		selection: portfolio.NewSelection(),
		spinner:   s,
	}
}

// Form returns the current form state.
func (m Model) Form() spending.Form { return m.form }

// Selection returns the cards in the custom portfolio.
func (m Model) Selection() portfolio.Selection { return m.selection }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.form.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			return m.reset(), nil
		}
		if m.mode == modeResults {
			return m.updateResults(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	category := models.Categories[m.field].Key
	current := m.form.Record.Get(category)

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "down", "tab":
		m.field = (m.field + 1) % len(models.Categories)
	case "up", "shift+tab":
		m.field = (m.field - 1 + len(models.Categories)) % len(models.Categories)
	case "backspace":
		if current != "" {
			m.form = m.form.Update(category, current[:len(current)-1])
		}
	case "enter":
		return m.submit()
	default:
		if msg.Type == tea.KeyRunes {
			m.form = m.form.Update(category, current+string(msg.Runes))
		}
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.view()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "e":
		m.mode = modeForm
	case "down", "j":
		if m.cursor < len(view.Recommendations)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "x":
		if m.cursor < len(view.Recommendations) {
			id := view.Recommendations[m.cursor].Card.CardID
			m.selection = m.selection.Toggle(id)
			m.logger.Debug("Toggled card", logging.F(logging.FieldCardID, id),
				logging.F(logging.FieldSelectCount, m.selection.Len()))
		}
	}
	return m, nil
}

// submit starts a request unless one is already running, including one
// abandoned by a reset that has not returned yet.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.form.Loading || m.inFlight {
		return m, nil
	}

	next, payload, ok := m.form.BeginSubmit()
	m.form = next
	if !ok {
		return m, nil
	}
	m.selection = portfolio.NewSelection()
	m.cursor = 0
	m.seq++
	m.inFlight = true

	ctx, submitter, opts, seq := m.ctx, m.submitter, m.opts, m.seq
	request := func() tea.Msg {
		resp, err := submitter.Optimize(ctx, payload, opts)
		return resultMsg{seq: seq, resp: resp, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, request)
}

func (m Model) finish(msg resultMsg) Model {
	m.inFlight = false
	if msg.seq != m.seq {
		m.logger.Debug("Discarding result of an abandoned submission")
		return m
	}
	m.form = m.form.Finish(msg.resp, msg.err)
	if msg.err != nil {
		m.logger.WithError(msg.err).Warn("Optimization failed")
		m.mode = modeForm
		return m
	}
	m.mode = modeResults
	m.cursor = 0
	return m
}

func (m Model) reset() Model {
	m.form = m.form.Reset()
	m.seq++
	m.selection = portfolio.NewSelection()
	m.mode = modeForm
	m.field = 0
	m.cursor = 0
	return m
}

func (m Model) view() report.View {
	return report.BuildView(m.form.Response, m.selection, m.topN)
}
