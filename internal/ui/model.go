package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"votd-tui/internal/api"
	"votd-tui/internal/bible"
	"votd-tui/internal/nav"
	"votd-tui/internal/notify"
	"votd-tui/internal/settings"
	"votd-tui/internal/theme"
)

const defaultTimeout = 10 * time.Second

// Config wires the model to its collaborators.
type Config struct {
	Adapter      *api.Adapter
	Notifier     *notify.Notifier
	Canon        *bible.Canon
	Theme        theme.Theme
	SettingsPath string
	Timeout      time.Duration
	ToastOnStart bool
	Log          *slog.Logger
}

type Model struct {
	adapter      *api.Adapter
	notifier     *notify.Notifier
	canon        *bible.Canon
	nav          *nav.Navigator
	settingsPath string
	timeout      time.Duration
	toastOnStart bool
	log          *slog.Logger

	theme  theme.Theme
	styles theme.Styles
	keys   keyMap

	list      list.Model
	viewport  viewport.Model
	textInput textinput.Model
	spinner   spinner.Model

	votd        *bible.VerseOfDay
	votdErr     error
	votdLoading bool

	// Verse labels for the chapter in labelsFor ("Book chapter").
	verseLabels   []string
	labelsFor     string
	labelsLoading bool
	manualVerse   bool

	passage      *bible.Passage
	verseLoading bool

	update *api.UpdateInfo

	toasts      []activeToast
	nextToastID int

	err    error
	width  int
	height int
	ready  bool
}

type activeToast struct {
	id int
	notify.Toast
}

type votdLoadedMsg struct{ votd *bible.VerseOfDay }
type votdErrMsg struct{ err error }
type verseLoadedMsg struct {
	generation uint64
	passage    *bible.Passage
}
type versesListedMsg struct {
	key    string
	labels []string
	err    error
}
type toastMsg struct{ toast notify.Toast }
type toastExpiredMsg struct{ id int }
type themeSavedMsg struct{ err error }
type updateCheckedMsg struct {
	info *api.UpdateInfo
	err  error
}

func NewModel(cfg Config) Model {
	if cfg.Canon == nil {
		cfg.Canon = bible.DefaultCanon()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if cfg.Theme.ID == "" {
		cfg.Theme = theme.CatppuccinMocha
	}

	ti := textinput.New()
	ti.Placeholder = "Verse number (e.g. 16)"
	ti.CharLimit = 8
	ti.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		adapter:      cfg.Adapter,
		notifier:     cfg.Notifier,
		canon:        cfg.Canon,
		nav:          nav.New(cfg.Canon),
		settingsPath: cfg.SettingsPath,
		timeout:      cfg.Timeout,
		toastOnStart: cfg.ToastOnStart,
		log:          cfg.Log,
		theme:        cfg.Theme,
		styles:       cfg.Theme.Styles(),
		keys:         defaultKeyMap(),
		textInput:    ti,
		spinner:      sp,
		votdLoading:  true,
	}
	m.list = m.buildList()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadVerseOfDay(m.adapter, m.timeout),
	}
	if m.toastOnStart {
		cmds = append(cmds, toastVerseOfDay(m.notifier, m.timeout))
	}
	if m.adapter != nil && m.adapter.CanCheckUpdate() {
		cmds = append(cmds, checkUpdate(m.adapter, m.timeout))
	}
	return tea.Batch(cmds...)
}

func loadVerseOfDay(a *api.Adapter, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return votdErrMsg{fmt.Errorf("no verse sources configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		v, err := a.FetchVerseOfDay(ctx)
		if err != nil {
			return votdErrMsg{err}
		}
		return votdLoadedMsg{v}
	}
}

func fetchVerse(a *api.Adapter, req nav.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return verseLoadedMsg{req.Generation, &bible.Passage{Ref: req.Ref, Text: bible.NotFound}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return verseLoadedMsg{req.Generation, a.FetchVerse(ctx, req.Ref)}
	}
}

func listVerses(a *api.Adapter, book string, chapter int, timeout time.Duration) tea.Cmd {
	k := chapterKey(book, chapter)
	return func() tea.Msg {
		if a == nil {
			return versesListedMsg{key: k}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		labels, err := a.Verses(ctx, book, chapter)
		return versesListedMsg{key: k, labels: labels, err: err}
	}
}

func toastVerseOfDay(n *notify.Notifier, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if n == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n.ToastVerseOfDay(ctx)
		return nil
	}
}

func checkUpdate(a *api.Adapter, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		info, err := a.CheckUpdate(ctx)
		return updateCheckedMsg{info, err}
	}
}

func saveTheme(path, id string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{settings.SaveTheme(path, id)}
	}
}

func expireToast(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{id} })
}

func chapterKey(book string, chapter int) string {
	return fmt.Sprintf("%s %d", book, chapter)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, next, cmd := m.handleKey(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 1)
			m.ready = true
		}
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case votdLoadedMsg:
		m.votd = msg.votd
		m.votdErr = nil
		m.votdLoading = false
		m.layout()
		return m, nil

	case votdErrMsg:
		m.votdErr = msg.err
		m.votdLoading = false
		m.layout()
		return m, nil

	case verseLoadedMsg:
		if !m.nav.Current(msg.generation) {
			m.log.Debug("dropping stale verse response", "generation", msg.generation)
			return m, nil
		}
		m.verseLoading = false
		m.passage = msg.passage
		m.viewport.SetContent(m.formatPassage())
		m.viewport.GotoTop()
		return m, nil

	case versesListedMsg:
		if msg.key != m.currentChapterKey() {
			return m, nil
		}
		m.labelsLoading = false
		m.labelsFor = msg.key
		m.verseLabels = msg.labels
		if msg.err != nil {
			m.log.Warn("listing verses failed", "chapter", msg.key, "err", msg.err)
		}
		if m.nav.Page() != nav.SelectVerse {
			return m, nil
		}
		if len(msg.labels) == 0 {
			m.manualVerse = true
			m.textInput.Reset()
			return m, m.textInput.Focus()
		}
		m.list = m.buildList()
		m.layout()
		return m, nil

	case toastMsg:
		m.nextToastID++
		m.toasts = append(m.toasts, activeToast{id: m.nextToastID, Toast: msg.toast})
		m.layout()
		d := msg.toast.Duration
		if d <= 0 {
			d = notify.DefaultDuration
		}
		return m, expireToast(m.nextToastID, d)

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		m.layout()
		return m, nil

	case updateCheckedMsg:
		if msg.err != nil {
			m.log.Warn("update check failed", "err", msg.err)
			return m, nil
		}
		m.update = msg.info
		m.layout()
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("saving theme failed", "err", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.manualVerse:
		m.textInput, cmd = m.textInput.Update(msg)
	case m.nav.Page() == nav.ShowVerse:
		m.viewport, cmd = m.viewport.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey deals with app-level keys. Keys it does not claim fall through to
// the focused component.
func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.manualVerse {
		switch msg.String() {
		case "enter":
			v := strings.TrimSpace(m.textInput.Value())
			if v == "" {
				return true, m, nil
			}
			m.manualVerse = false
			m.textInput.Blur()
			next, cmd := m.selectVerse(v)
			return true, next, cmd
		case "esc":
			m.manualVerse = false
			m.textInput.Blur()
			m.nav.Previous()
			m.list = m.buildList()
			m.layout()
			return true, m, nil
		}
		return false, m, nil
	}

	if m.nav.Page() != nav.ShowVerse && m.list.FilterState() == list.Filtering {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		if m.nav.Page() == nav.ShowVerse {
			return true, m, nil
		}
		next, cmd := m.selectCurrent()
		return true, next, cmd

	case key.Matches(msg, m.keys.Back):
		if m.nav.Page() != nav.ShowVerse && m.list.FilterState() == list.FilterApplied {
			return false, m, nil
		}
		m.err = nil
		m.nav.Previous()
		next, cmd := m.enterPage()
		return true, next, cmd

	case key.Matches(msg, m.keys.Forward):
		if !m.nav.Advance() {
			return true, m, nil
		}
		if m.nav.Page() == nav.ShowVerse {
			ref, _ := m.nav.Verse()
			next, cmd := m.selectVerse(ref.Verse)
			return true, next, cmd
		}
		next, cmd := m.enterPage()
		return true, next, cmd

	case key.Matches(msg, m.keys.Next):
		page := m.nav.Page()
		if page != nav.SelectVerse && page != nav.ShowVerse {
			return false, m, nil
		}
		if err := m.nav.Next(); err != nil {
			m.err = err
			return true, m, nil
		}
		m.err = nil
		m.passage = nil
		m.verseLoading = false
		next, cmd := m.enterPage()
		return true, next, cmd

	case key.Matches(msg, m.keys.Toast):
		return true, m, toastVerseOfDay(m.notifier, m.timeout)

	case key.Matches(msg, m.keys.Reload):
		m.votdLoading = true
		m.votdErr = nil
		m.layout()
		return true, m, tea.Batch(m.spinner.Tick, loadVerseOfDay(m.adapter, m.timeout))

	case key.Matches(msg, m.keys.Theme):
		m.theme = theme.Next(m.theme)
		m.styles = m.theme.Styles()
		m.list = m.buildList()
		m.layout()
		if m.settingsPath == "" {
			return true, m, nil
		}
		return true, m, saveTheme(m.settingsPath, m.theme.ID)
	}

	return false, m, nil
}

func (m Model) selectCurrent() (Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return m, nil
	}

	switch m.nav.Page() {
	case nav.SelectBook:
		if err := m.nav.SelectBook(it.value); err != nil {
			m.err = err
			return m, nil
		}
	case nav.SelectChapter:
		n, err := strconv.Atoi(it.value)
		if err == nil {
			err = m.nav.SelectChapter(n)
		}
		if err != nil {
			m.err = err
			return m, nil
		}
	case nav.SelectVerse:
		return m.selectVerse(it.value)
	}

	m.err = nil
	return m.enterPage()
}

func (m Model) selectVerse(verse string) (Model, tea.Cmd) {
	req, err := m.nav.SelectVerse(verse)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.passage = nil
	m.verseLoading = true
	m.viewport.SetContent("")
	m.layout()
	return m, tea.Batch(m.spinner.Tick, fetchVerse(m.adapter, req, m.timeout))
}

// enterPage rebuilds the view for the navigator's current page and starts any
// lookup the page needs.
func (m Model) enterPage() (Model, tea.Cmd) {
	m.manualVerse = false
	m.textInput.Blur()

	if m.nav.Page() == nav.SelectVerse {
		book, _ := m.nav.Book()
		k := chapterKey(book.Name, m.nav.Chapter())
		switch {
		case m.labelsFor != k:
			m.verseLabels = nil
			m.labelsLoading = true
			m.list = m.buildList()
			m.layout()
			return m, tea.Batch(m.spinner.Tick, listVerses(m.adapter, book.Name, m.nav.Chapter(), m.timeout))
		case len(m.verseLabels) == 0:
			m.manualVerse = true
			m.textInput.Reset()
			m.layout()
			return m, m.textInput.Focus()
		}
	}

	m.list = m.buildList()
	m.layout()
	return m, nil
}

func (m Model) currentChapterKey() string {
	book, ok := m.nav.Book()
	if !ok || m.nav.Chapter() == 0 {
		return ""
	}
	return chapterKey(book.Name, m.nav.Chapter())
}

// layout sizes the list and viewport to whatever space the header and footer
// leave.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
	body := m.height - used
	if body < 3 {
		body = 3
	}
	m.list.SetSize(m.width, body)
	m.viewport.Width = m.width
	m.viewport.Height = body
	m.textInput.Width = min(40, m.width)
}
