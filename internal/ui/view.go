package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"votd-tui/internal/nav"
)

type item struct {
	title string
	desc  string
	value string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// buildList creates the list for the current page, with the cursor on the
// previous selection when there is one.
func (m Model) buildList() list.Model {
	var (
		items    []list.Item
		selected = -1
		title    string
	)

	switch m.nav.Page() {
	case nav.SelectBook:
		title = "Books"
		cur, hasBook := m.nav.Book()
		for i, b := range m.canon.Books() {
			items = append(items, item{title: b.Name, desc: fmt.Sprintf("%d chapters", b.Chapters), value: b.Name})
			if hasBook && b.Name == cur.Name {
				selected = i
			}
		}

	case nav.SelectChapter:
		book, _ := m.nav.Book()
		title = book.Name
		for ch := 1; ch <= book.Chapters; ch++ {
			items = append(items, item{title: fmt.Sprintf("Chapter %d", ch), value: strconv.Itoa(ch)})
		}
		selected = m.nav.Chapter() - 1

	case nav.SelectVerse:
		book, _ := m.nav.Book()
		title = fmt.Sprintf("%s %d", book.Name, m.nav.Chapter())
		cur, hasVerse := m.nav.Verse()
		for i, v := range m.verseLabels {
			items = append(items, item{title: "Verse " + v, value: v})
			if hasVerse && v == cur.Verse {
				selected = i
			}
		}
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = m.nav.Page() == nav.SelectBook
	d.Styles.SelectedTitle = m.styles.Selected
	d.Styles.SelectedDesc = m.styles.Selected.Foreground(m.theme.Secondary)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(m.theme.Primary)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(m.theme.Muted)

	l := list.New(items, d, m.width, max(m.height, 10))
	l.Title = title
	l.Styles.Title = m.styles.Title
	l.SetShowHelp(false)
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	if selected >= 0 && selected < len(items) {
		l.Select(selected)
	}
	return l
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var body string
	switch {
	case m.manualVerse:
		book, _ := m.nav.Book()
		body = m.styles.Title.Render(fmt.Sprintf("%s %d", book.Name, m.nav.Chapter())) + "\n\n" +
			m.styles.Help.Render("No verse list available for this chapter. Enter a verse number:") + "\n" +
			m.textInput.View()
	case m.nav.Page() == nav.ShowVerse:
		if m.verseLoading {
			body = m.spinner.View() + " Loading verse..."
		} else {
			body = m.viewport.View()
		}
	case m.nav.Page() == nav.SelectVerse && m.labelsLoading:
		body = m.spinner.View() + " Loading verses..."
	default:
		body = m.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Verse of the Day"))
	sb.WriteString("\n")
	if m.update != nil && m.update.Available() {
		sb.WriteString(m.styles.Citation.Render(fmt.Sprintf("%s (local %s, latest %s)",
			m.update.Status, m.update.LocalVersion, m.update.GithubVersion)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.renderVerseOfDay())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.breadcrumb()))
	return sb.String()
}

func (m Model) renderVerseOfDay() string {
	width := max(m.width-4, 20)

	switch {
	case m.votdLoading:
		return m.spinner.View() + " Loading verse of the day..."
	case m.votdErr != nil:
		return m.styles.Error.Width(width).Render("Error:\n" + firstLine(m.votdErr))
	case m.votd == nil:
		return ""
	}

	lines := []string{
		m.styles.Citation.Render(m.votd.Citation),
		m.styles.Passage.Render(m.votd.Passage),
		m.styles.Version.Render("Version: " + m.votd.Version),
	}
	if n := len(m.votd.Images); n > 0 {
		lines = append(lines, m.styles.Help.Render(fmt.Sprintf("%d image(s): %s", n, m.votd.Images[0])))
	}
	return m.styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) breadcrumb() string {
	parts := []string{m.nav.Page().String()}
	if b, ok := m.nav.Book(); ok {
		parts = append(parts, b.Name)
		if ch := m.nav.Chapter(); ch > 0 {
			parts = append(parts, strconv.Itoa(ch))
			if v, ok := m.nav.Verse(); ok {
				parts = append(parts, v.Verse)
			}
		}
	}
	return strings.Join(parts, " › ")
}

func (m Model) renderFooter() string {
	var sections []string

	if m.err != nil {
		sections = append(sections, m.styles.Error.Render(m.err.Error()))
	}

	for _, t := range m.toasts {
		box := m.styles.Toast.Width(max(m.width-4, 20)).Render(m.styles.Citation.Render(t.Title) + "\n" + t.Body)
		sections = append(sections, box)
	}

	var help []string
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, h.Key+": "+h.Desc)
	}
	sections = append(sections, m.styles.Help.Render(strings.Join(help, " | ")))

	return strings.Join(sections, "\n")
}

func (m Model) formatPassage() string {
	if m.passage == nil {
		return ""
	}
	width := max(m.width-2, 20)

	var sb strings.Builder
	sb.WriteString(m.styles.Citation.Render(m.passage.Ref.String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Passage.Width(width).Render(m.passage.Text))
	if m.passage.Version != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Version.Render(m.passage.Version))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Help.Render(helpFor(m.keys.Next) + " | " + helpFor(m.keys.Back)))
	return sb.String()
}

func helpFor(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

// firstLine keeps joined multi-source errors to their first line in the header.
func firstLine(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0].Error()
		}
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
