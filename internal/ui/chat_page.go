package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenroots/storefront/internal/chat"
)

// ChatPageModel is the support-chat widget.
type ChatPageModel struct {
	responder *chat.Responder
	styles    Styles

	viewport viewport.Model
	input    textinput.Model
	sending  bool
	width    int
	height   int
}

func NewChatPageModel(r *chat.Responder, styles Styles) ChatPageModel {
	in := textinput.New()
	in.Placeholder = "Type a message..."
	in.CharLimit = 500
	in.Focus()
	m := ChatPageModel{
		responder: r,
		styles:    styles,
		viewport:  viewport.New(80, 16),
		input:     in,
	}
	m.refreshTranscript()
	return m
}

func (m *ChatPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 6
	m.refreshTranscript()
}

func (m ChatPageModel) capturingInput() bool { return m.input.Focused() }

func (m *ChatPageModel) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.responder.Messages() {
		if msg.Sender == chat.SenderBot {
			b.WriteString(m.styles.Success.Render("GreenRoots: "))
		} else {
			b.WriteString(m.styles.Title.Render("You: "))
		}
		b.WriteString(msg.Text)
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m ChatPageModel) sendCmd(ctx context.Context, text string) tea.Cmd {
	return func() tea.Msg {
		m.responder.Reply(ctx, text)
		return chatRepliedMsg{}
	}
}

func (m ChatPageModel) Update(msg tea.Msg, ctx context.Context) (ChatPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatRepliedMsg:
		m.sending = false
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "i":
			if !m.input.Focused() {
				m.input.Focus()
				return m, nil
			}
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.input.SetValue("")
			m.sending = true
			return m, m.sendCmd(ctx, text)
		case "1", "2", "3", "4":
			// Quick actions, while nothing is typed yet.
			if m.input.Focused() && m.input.Value() == "" && !m.sending {
				idx := int(msg.String()[0] - '1')
				m.sending = true
				return m, m.sendCmd(ctx, chat.QuickActions[idx])
			}
		}
		if !m.input.Focused() {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Support"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.sending {
		b.WriteString(m.styles.Muted.Render("..."))
		b.WriteString("\n")
	}
	b.WriteString("> ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.input.Focused() {
		var actions []string
		for i, qa := range chat.QuickActions {
			actions = append(actions, m.styles.Muted.Render(string(rune('1'+i))+" "+qa))
		}
		b.WriteString(strings.Join(actions, "\n"))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter send · 1-4 quick actions · esc leave input"))
	} else {
		b.WriteString(m.styles.Help.Render("i type a message"))
	}
	return b.String()
}
