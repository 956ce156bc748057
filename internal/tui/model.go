// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/viewer"
)

type focus int

const (
	focusType focus = iota
	focusDate
	focusList
	focusCount
)

func (f focus) String() string {
	switch f {
	case focusType:
		return "type"
	case focusDate:
		return "date"
	default:
		return "list"
	}
}

// resultMsg carries a controller Result back to Update. seq identifies the
// request so answers to superseded requests can be dropped.
type resultMsg struct {
	seq uint64
	res viewer.Result
}

// request tracks the in-flight operation of one kind. Starting a new one
// cancels its predecessor.
type request struct {
	seq    uint64
	cancel context.CancelFunc
	busy   bool
}

func (r *request) start(parent context.Context) (context.Context, uint64) {
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.busy = true
	return ctx, r.seq
}

// finish reports whether seq is the latest request and, if so, marks it done.
func (r *request) finish(seq uint64) bool {
	if seq != r.seq {
		return false
	}
	r.busy = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	return true
}

func (r *request) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.busy = false
}

// rowItem adapts a viewer.Row to the bubbles list.
type rowItem struct {
	row viewer.Row
}

func (i rowItem) Title() string       { return i.row.Text }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.row.Text }

// Model is the browser's bubbletea model.
type Model struct {
	ctx  context.Context
	ctl  *viewer.Controller
	keys keyMap

	state viewer.State
	focus focus

	date    textinput.Model
	list    list.Model
	spinner spinner.Model

	images    request
	dateBound request

	status string
	width  int
	height int
	styles styles
}

// New builds a browser for typ. An empty typ starts on the first type. ctx
// bounds every request the browser makes.
func New(ctx context.Context, ctl *viewer.Controller, typ string) *Model {
	ti := textinput.New()
	ti.Placeholder = epic.DateLayout
	ti.CharLimit = len(epic.DateLayout)
	ti.Width = len(epic.DateLayout) + 1
	ti.Prompt = ""

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Captures"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		ctl:     ctl,
		keys:    defaultKeyMap(),
		state:   viewer.NewState(epic.Types, typ),
		focus:   focusType,
		date:    ti,
		list:    l,
		spinner: sp,
		styles:  defaultStyles(),
	}
}

// State returns the current viewer state.
func (m *Model) State() viewer.State {
	return m.state
}

// Init primes the date ceiling for the starting type. The spinner runs
// while that request is in flight.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.typeChanged())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain die once nothing is loading.
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.handleResult(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleResult(msg resultMsg) {
	var req *request
	switch msg.res.Kind {
	case viewer.KindImages:
		req = &m.images
	case viewer.KindDateBound:
		req = &m.dateBound
	default:
		return
	}

	if !req.finish(msg.seq) {
		log.Debugf("dropping stale %s result %d", msg.res.Kind, msg.seq)
		return
	}

	m.state = m.state.Apply(msg.res)

	if msg.res.Kind == viewer.KindDateBound && msg.res.Err == nil {
		// Empty or out of range input follows the ceiling.
		if m.state.Live.Date == "" && m.state.DateMax != "" {
			m.state.Live.Date = m.state.DateMax
		}
		m.date.SetValue(m.state.Live.Date)
	}

	switch {
	case msg.res.Err != nil:
		m.status = viewer.ErrorText
	case msg.res.Kind == viewer.KindImages:
		m.status = ""
		if msg.res.Cached {
			m.status = "from cache"
		}
	}

	m.syncRows()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		return m.quit()
	case key.Matches(msg, m.keys.Quit) && m.focus != focusDate:
		return m.quit()
	case key.Matches(msg, m.keys.Focus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case focusType:
		switch {
		case key.Matches(msg, m.keys.NextType):
			return m, m.cycleType(1)
		case key.Matches(msg, m.keys.PrevType):
			return m, m.cycleType(-1)
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		}

	case focusDate:
		if key.Matches(msg, m.keys.Submit) {
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.date, cmd = m.date.Update(msg)
		m.state.Live.Date = strings.TrimSpace(m.date.Value())
		return m, cmd

	case focusList:
		if key.Matches(msg, m.keys.Submit) {
			m.selectRow(m.list.Index())
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.images.stop()
	m.dateBound.stop()
	return m, tea.Quit
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusDate {
		m.date.Focus()
	} else {
		m.date.Blur()
	}
}

func (m *Model) cycleType(step int) tea.Cmd {
	types := m.state.Types
	if len(types) == 0 {
		return nil
	}
	i := 0
	for j, t := range types {
		if t == m.state.Live.Type {
			i = j
			break
		}
	}
	i = (i + step + len(types)) % len(types)
	m.state.Live.Type = types[i]
	m.state.DateMax = ""
	return tea.Batch(m.spinner.Tick, m.typeChanged())
}

// typeChanged starts a date ceiling fetch for the live type.
func (m *Model) typeChanged() tea.Cmd {
	ctx, seq := m.dateBound.start(m.ctx)
	ctl, typ := m.ctl, m.state.Live.Type
	return func() tea.Msg {
		return resultMsg{seq: seq, res: ctl.TypeChanged(ctx, typ)}
	}
}

// submit starts an image fetch for the live selection.
func (m *Model) submit() tea.Cmd {
	sel := m.state.Live
	if sel.Date == "" {
		sel.Date = m.state.DateMax
	}
	sel.Date = viewer.ClampDate(sel.Date, m.state.DateMax)
	m.state.Live.Date = sel.Date
	m.date.SetValue(sel.Date)
	m.status = ""

	if !m.ctl.Cache().Enabled() {
		// Uncached submits always refetch, so the old rows go now.
		m.state = m.state.ClearRows()
		m.syncRows()
	}

	ctx, seq := m.images.start(m.ctx)
	ctl := m.ctl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return resultMsg{seq: seq, res: ctl.Submit(ctx, sel)}
	})
}

func (m *Model) selectRow(index int) {
	st, err := m.ctl.Select(m.state, index)
	if err != nil {
		if !errors.Is(err, viewer.ErrNoSuchRow) {
			log.WithError(err).Error("select failed")
		}
		m.status = err.Error()
		return
	}
	m.state = st
	m.status = ""
}

// syncRows mirrors the viewer rows into the list.
func (m *Model) syncRows() {
	rows := m.state.Rows.All()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowItem{row: r})
	}
	m.list.SetItems(items)
	m.list.Select(0)
}

// Busy reports whether any request is in flight.
func (m *Model) Busy() bool {
	return m.images.busy || m.dateBound.busy
}

// Run starts the browser and blocks until the user quits. opts go to the
// bubbletea program, e.g. tea.WithAltScreen.
func Run(ctx context.Context, ctl *viewer.Controller, typ string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ctl, typ), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
