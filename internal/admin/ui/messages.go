package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"

	"github.com/pktpoint/idec/internal/admin/app"
	"github.com/pktpoint/idec/internal/message"
)

type messagesModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state messagesState
	list  list.Model
	err   error

	selectedArea string
	offset       int
	limit        int

	page     []message.Message
	selected int
}

type messagesState int

const (
	messagesStateAreas messagesState = iota
	messagesStateList
	messagesStateDetail
)

type msgItem struct {
	idx   int
	name  string
	title string
	desc  string
}

func (i msgItem) Title() string       { return i.title }
func (i msgItem) Description() string { return i.desc }
func (i msgItem) FilterValue() string { return i.title }

func newMessagesModel(a *app.App) *messagesModel {
	m := &messagesModel{app: a, state: messagesStateAreas, limit: 20}
	m.reloadAreas()
	return m
}

func (m *messagesModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *messagesModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = messagesStateAreas
				m.reloadAreas()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == messagesStateAreas {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		case "n":
			if m.state == messagesStateList {
				m.offset += m.limit
				m.reloadMessages()
				return nil
			}
		case "p":
			if m.state == messagesStateList {
				m.offset -= m.limit
				if m.offset < 0 {
					m.offset = 0
				}
				m.reloadMessages()
				return nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(msgItem)
			if !ok {
				return cmd
			}
			switch m.state {
			case messagesStateAreas:
				m.selectedArea = it.name
				m.offset = 0
				m.state = messagesStateList
				m.reloadMessages()
				return nil
			case messagesStateList:
				m.selected = it.idx
				m.state = messagesStateDetail
				return nil
			}
		}
	}

	return cmd
}

func (m *messagesModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Messages error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case messagesStateAreas:
		m.list.Title = "Echo Areas"
		return m.list.View() + "\n(q to quit, enter to select)"
	case messagesStateList:
		m.list.Title = fmt.Sprintf("%s (newest %d..%d)", m.selectedArea, m.offset+1, m.offset+m.limit)
		return m.list.View() + "\n(n older page, p newer page, esc back)"
	case messagesStateDetail:
		return m.messageDetail() + "\n\n(esc back)"
	default:
		return "Messages"
	}
}

func (m *messagesModel) messageDetail() string {
	if m.selected < 0 || m.selected >= len(m.page) {
		return "No message selected."
	}
	msg := m.page[m.selected]
	date := time.Unix(msg.Date, 0).UTC().Format("2006-01-02 15:04")
	return fmt.Sprintf("Subject: %s\nFrom: %s (%s)\nTo: %s\nDate: %s\n\n%s",
		msg.Subject, msg.From, msg.Address, msg.To, date, msg.Body,
	)
}

func (m *messagesModel) reloadAreas() {
	areas, err := m.app.Uplink.AreaList(context.Background())
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(areas))
	for _, a := range areas {
		desc := fmt.Sprintf("%s • %d messages", a.Description, a.Count)
		items = append(items, msgItem{name: a.Name, title: a.Name, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}

// reloadMessages fetches one page of messages: a tail-relative slice
// of the area index, newest first, then the bodies in a single
// batched request.
func (m *messagesModel) reloadMessages() {
	ctx := context.Background()
	ids, err := m.app.Uplink.MergedIndex(ctx, []string{m.selectedArea}, -(m.offset + m.limit), m.limit)
	if err != nil {
		m.err = err
		return
	}

	m.page = nil
	if len(ids) > 0 {
		m.page, err = m.app.Uplink.Messages(ctx, ids)
		if err != nil {
			m.err = err
			return
		}
	}

	// Newest at the top of the list.
	items := make([]list.Item, 0, len(m.page))
	for i := len(m.page) - 1; i >= 0; i-- {
		msg := m.page[i]
		desc := fmt.Sprintf("from %s to %s", msg.From, msg.To)
		items = append(items, msgItem{idx: i, title: msg.Subject, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}

func (m *messagesModel) back() {
	switch m.state {
	case messagesStateAreas:
		m.Done = true
	case messagesStateList:
		m.state = messagesStateAreas
		m.reloadAreas()
	case messagesStateDetail:
		m.state = messagesStateList
	}
}
