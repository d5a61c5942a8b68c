package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"

	"github.com/pktpoint/idec/internal/admin/app"
	"github.com/pktpoint/idec/internal/filearea"
)

type filesModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state filesState
	list  list.Model
	err   error

	selectedArea string
	offset       int
	limit        int

	page     []filearea.Item
	selected int

	notice string
}

type filesState int

const (
	filesStateAreas filesState = iota
	filesStateList
	filesStateDetail
)

type fileItem struct {
	idx   int
	name  string
	title string
	desc  string
}

func (i fileItem) Title() string       { return i.title }
func (i fileItem) Description() string { return i.desc }
func (i fileItem) FilterValue() string { return i.title }

func newFilesModel(a *app.App) *filesModel {
	m := &filesModel{app: a, state: filesStateAreas, limit: 50}
	m.reloadAreas()
	return m
}

func (m *filesModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *filesModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = filesStateAreas
				m.reloadAreas()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == filesStateAreas {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		case "n":
			if m.state == filesStateList {
				m.offset += m.limit
				m.reloadFiles()
				return nil
			}
		case "p":
			if m.state == filesStateList {
				m.offset -= m.limit
				if m.offset < 0 {
					m.offset = 0
				}
				m.reloadFiles()
				return nil
			}
		case "d":
			if m.state == filesStateDetail {
				m.downloadSelected()
				return nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(fileItem)
			if !ok {
				return cmd
			}
			switch m.state {
			case filesStateAreas:
				m.selectedArea = it.name
				m.offset = 0
				m.state = filesStateList
				m.reloadFiles()
				return nil
			case filesStateList:
				m.selected = it.idx
				m.notice = ""
				m.state = filesStateDetail
				return nil
			}
		}
	}

	return cmd
}

func (m *filesModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Files error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case filesStateAreas:
		m.list.Title = "File Areas"
		return m.list.View() + "\n(q to quit, enter to select)"
	case filesStateList:
		m.list.Title = fmt.Sprintf("%s (newest %d..%d)", m.selectedArea, m.offset+1, m.offset+m.limit)
		return m.list.View() + "\n(n older page, p newer page, esc back)"
	case filesStateDetail:
		detail := m.fileDetail()
		if m.notice != "" {
			detail += "\n\n" + m.notice
		}
		return detail + "\n\n(d download, esc back)"
	default:
		return "Files"
	}
}

func (m *filesModel) fileDetail() string {
	if m.selected < 0 || m.selected >= len(m.page) {
		return "No file selected."
	}
	f := m.page[m.selected]
	return fmt.Sprintf("File: %s\nFilearea: %s\nFID: %s\nSize: %d bytes\nAddress: %s\nDescription: %s",
		f.Name, f.Filearea, f.FID, f.Size, f.Address, f.Description,
	)
}

func (m *filesModel) reloadAreas() {
	areas, err := m.app.Uplink.FileList(context.Background())
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(areas))
	for _, a := range areas {
		desc := fmt.Sprintf("%s • %d files", a.Description, a.Count)
		items = append(items, fileItem{name: a.Name, title: a.Name, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}

// reloadFiles fetches one page of the filearea index, tail-relative
// like the message browser.
func (m *filesModel) reloadFiles() {
	page, err := m.app.Uplink.FileIndex(context.Background(), []string{m.selectedArea}, -(m.offset + m.limit), m.limit)
	if err != nil {
		m.err = err
		return
	}
	m.page = page

	items := make([]list.Item, 0, len(m.page))
	for i := len(m.page) - 1; i >= 0; i-- {
		f := m.page[i]
		desc := fmt.Sprintf("%d bytes • %s", f.Size, f.Description)
		items = append(items, fileItem{idx: i, title: f.Name, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}

func (m *filesModel) downloadSelected() {
	if m.selected < 0 || m.selected >= len(m.page) {
		return
	}
	f := m.page[m.selected]

	data, err := m.app.Uplink.DownloadFile(context.Background(), f.Filearea, f.FID)
	if err != nil {
		m.err = err
		return
	}

	dir := m.app.Config.Paths.Downloads
	if err := os.MkdirAll(dir, 0755); err != nil {
		m.err = err
		return
	}
	path := filepath.Join(dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("Saved %d bytes to %s", len(data), path)
}

func (m *filesModel) back() {
	switch m.state {
	case filesStateAreas:
		m.Done = true
	case filesStateList:
		m.state = filesStateAreas
		m.reloadAreas()
	case filesStateDetail:
		m.state = filesStateList
	}
}
