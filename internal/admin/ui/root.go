package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/pktpoint/idec/internal/admin/app"
)

type screen int

const (
	screenHome screen = iota
	screenMessages
	screenFiles
	screenCompose
	screenSettings
)

type rootModel struct {
	app *app.App

	width  int
	height int

	active screen

	homeList list.Model
	err      error

	messages *messagesModel
	files    *filesModel
	compose  *composeModel
	settings *settingsModel
}

type menuItem struct {
	title string
	desc  string
	to    screen
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func NewRootModel(a *app.App) tea.Model {
	items := []list.Item{
		menuItem{title: "Echo Areas", desc: "Browse echoareas and read messages", to: screenMessages},
		menuItem{title: "File Areas", desc: "Browse fileareas and download files", to: screenFiles},
		menuItem{title: "Compose", desc: "Write and post a message", to: screenCompose},
		menuItem{title: "Settings", desc: "Edit uplink URL, auth and subscription", to: screenSettings},
		menuItem{title: "Quit", desc: "Exit", to: -1},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("IDEC Point — %s", a.Config.Uplink.URL)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return &rootModel{
		app:      a,
		active:   screenHome,
		homeList: l,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.homeList.SetSize(msg.Width, msg.Height-2)
		if m.messages != nil {
			m.messages.SetSize(msg.Width, msg.Height)
		}
		if m.files != nil {
			m.files.SetSize(msg.Width, msg.Height)
		}
		if m.compose != nil {
			m.compose.SetSize(msg.Width, msg.Height)
		}
		if m.settings != nil {
			m.settings.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.active {
	case screenHome:
		return m.updateHome(msg)
	case screenMessages:
		if m.messages == nil {
			m.messages = newMessagesModel(m.app)
			m.messages.SetSize(m.width, m.height)
		}
		cmd := m.messages.Update(msg)
		if m.messages.Done {
			m.active = screenHome
			m.messages = nil
		}
		return m, cmd
	case screenFiles:
		if m.files == nil {
			m.files = newFilesModel(m.app)
			m.files.SetSize(m.width, m.height)
		}
		cmd := m.files.Update(msg)
		if m.files.Done {
			m.active = screenHome
			m.files = nil
		}
		return m, cmd
	case screenCompose:
		if m.compose == nil {
			m.compose = newComposeModel(m.app)
			m.compose.SetSize(m.width, m.height)
		}
		cmd := m.compose.Update(msg)
		if m.compose.Done {
			m.active = screenHome
			m.compose = nil
		}
		return m, cmd
	case screenSettings:
		if m.settings == nil {
			m.settings = newSettingsModel(m.app)
			m.settings.SetSize(m.width, m.height)
		}
		cmd := m.settings.Update(msg)
		if m.settings.Done {
			m.active = screenHome
			m.settings = nil
		}
		return m, cmd
	default:
		return m, nil
	}
}

func (m *rootModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.homeList.SelectedItem().(menuItem); ok {
				if it.to == -1 {
					return m, tea.Quit
				}
				m.active = it.to
				return m, nil
			}
		}
	}

	return m, cmd
}

func (m *rootModel) View() string {
	if m.err != nil {
		return errStyle.Render("Error: ") + m.err.Error()
	}

	switch m.active {
	case screenHome:
		return m.homeList.View()
	case screenMessages:
		if m.messages == nil {
			return "Loading messages..."
		}
		return m.messages.View()
	case screenFiles:
		if m.files == nil {
			return "Loading files..."
		}
		return m.files.View()
	case screenCompose:
		if m.compose == nil {
			return "Loading composer..."
		}
		return m.compose.View()
	case screenSettings:
		if m.settings == nil {
			return "Loading settings..."
		}
		return m.settings.View()
	default:
		return titleStyle.Render("Unknown screen") + "\n" + fmt.Sprint(m.active)
	}
}
