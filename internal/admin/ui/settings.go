package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pktpoint/idec/internal/admin/app"
	"github.com/pktpoint/idec/internal/echoarea"
)

type settingsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form *huh.Form
	err  error

	url     string
	auth    string
	areas   string
	timeout string
	save    bool
}

func newSettingsModel(a *app.App) *settingsModel {
	m := &settingsModel{app: a}

	m.url = a.Config.Uplink.URL
	m.auth = a.Config.Uplink.Auth
	m.areas = strings.Join(a.Config.Uplink.Areas, " ")
	m.timeout = strconv.Itoa(a.Config.Client.TimeoutSeconds)

	m.form = buildSettingsForm(&m.url, &m.auth, &m.areas, &m.timeout, &m.save)
	return m
}

func buildSettingsForm(url, auth, areas, timeout *string, save *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Uplink URL").Value(url).Validate(nonEmpty("uplink URL")),
			huh.NewInput().Title("Auth string").Value(auth).EchoMode(huh.EchoModePassword),
			huh.NewInput().Title("Subscribed areas (space separated)").Value(areas).Validate(validAreaList),
			huh.NewInput().Title("HTTP timeout (seconds)").Value(timeout).Validate(validIntGreaterThan("timeout", 0)),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(save),
		),
	)
}

func (m *settingsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *settingsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.Done = true
			}
		}
		return nil
	}

	var cmd tea.Cmd
	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f

	if m.form.State == huh.StateCompleted {
		if m.save {
			timeoutInt, _ := strconv.Atoi(strings.TrimSpace(m.timeout))
			cfg := m.app.Config
			cfg.Uplink.URL = strings.TrimSpace(m.url)
			cfg.Uplink.Auth = strings.TrimSpace(m.auth)
			cfg.Uplink.Areas = strings.Fields(m.areas)
			cfg.Client.TimeoutSeconds = timeoutInt
			if err := cfg.Save(m.app.ConfigPath); err != nil {
				m.err = err
				return nil
			}
			m.app.ReloadUplink()
		}
		m.Done = true
		return nil
	}

	return cmd
}

func (m *settingsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Settings error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	return m.form.View() + "\n\n(esc to go back)"
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validIntGreaterThan(field string, min int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		if v <= min {
			return fmt.Errorf("%s must be > %d", field, min)
		}
		return nil
	}
}

func validAreaList(s string) error {
	if err := echoarea.ValidateNames(strings.Fields(s)); err != nil {
		return err
	}
	return nil
}
