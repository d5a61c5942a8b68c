package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pktpoint/idec/internal/admin/app"
	"github.com/pktpoint/idec/internal/echoarea"
	"github.com/pktpoint/idec/internal/message"
)

type composeModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form *huh.Form
	err  error
	ack  string

	area    string
	to      string
	subject string
	repto   string
	body    string
	send    bool
}

func newComposeModel(a *app.App) *composeModel {
	m := &composeModel{app: a, to: "All"}
	if len(a.Config.Uplink.Areas) > 0 {
		m.area = a.Config.Uplink.Areas[0]
	}
	m.form = m.buildForm()
	return m
}

func (m *composeModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Echoarea").Value(&m.area).Validate(validAreaName),
			huh.NewInput().Title("To").Value(&m.to).Validate(nonEmpty("to")),
			huh.NewInput().Title("Subject").Value(&m.subject).Validate(nonEmpty("subject")),
			huh.NewInput().Title("Reply to msgid (optional)").Value(&m.repto).Validate(validOptionalMsgID),
			huh.NewText().Title("Message").Value(&m.body).Validate(nonEmpty("message")),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Post to uplink?").Value(&m.send),
		),
	)
}

func (m *composeModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *composeModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil || m.ack != "" {
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
		if !m.send {
			m.Done = true
			return nil
		}
		text := message.ComposePoint(
			strings.TrimSpace(m.area),
			strings.TrimSpace(m.to),
			strings.TrimSpace(m.subject),
			strings.TrimSpace(m.repto),
			m.body,
		)
		ack, err := m.app.Uplink.PostMessage(context.Background(), text)
		if err != nil {
			m.err = err
			return nil
		}
		m.ack = strings.TrimSpace(ack)
		return nil
	}

	return cmd
}

func (m *composeModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Compose error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	if m.ack != "" {
		return fmt.Sprintf("Uplink says: %s\n\nPress Enter/Esc to go back.", m.ack)
	}
	return m.form.View() + "\n\n(esc to go back)"
}

func validAreaName(s string) error {
	if !echoarea.IsValidName(strings.TrimSpace(s)) {
		return fmt.Errorf("area name must be ASCII and contain a dot")
	}
	return nil
}

func validOptionalMsgID(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !message.IsValidID(s) {
		return fmt.Errorf("msgid must be exactly %d ASCII characters", message.MsgIDLength)
	}
	return nil
}
