package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/session"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
	modeForgot
	modeReset
)

var authTitles = map[authMode]string{
	modeLogin:    "Login",
	modeRegister: "Create an account",
	modeForgot:   "Forgot password",
	modeReset:    "Reset password",
}

type authField struct {
	key    string
	label  string
	secret bool
}

var authFields = map[authMode][]authField{
	modeLogin: {
		{key: "email", label: "Email"},
		{key: "password", label: "Password", secret: true},
	},
	modeRegister: {
		{key: "fullName", label: "Full name"},
		{key: "email", label: "Email"},
		{key: "phone", label: "Phone"},
		{key: "password", label: "Password", secret: true},
		{key: "confirmPassword", label: "Confirm password", secret: true},
		{key: "location", label: "Location"},
	},
	modeForgot: {
		{key: "email", label: "Email"},
	},
	modeReset: {
		{key: "email", label: "Email"},
		{key: "otp", label: "OTP"},
		{key: "newPassword", label: "New password", secret: true},
	},
}

// AuthPageModel hosts login, registration and the password-reset pair.
type AuthPageModel struct {
	store  *session.Store
	styles Styles

	mode    authMode
	inputs  []textinput.Model
	focus   int
	busy    bool
	banner  string
	failure string
	fields  map[string]string
	width   int
	height  int
}

func NewAuthPageModel(store *session.Store, styles Styles) AuthPageModel {
	m := AuthPageModel{store: store, styles: styles}
	m.setMode(modeLogin)
	return m
}

func (m *AuthPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m AuthPageModel) capturingInput() bool {
	return m.focus < len(m.inputs) && m.inputs[m.focus].Focused()
}

func (m *AuthPageModel) setMode(mode authMode) {
	m.mode = mode
	m.focus = 0
	m.failure = ""
	m.fields = nil
	defs := authFields[mode]
	m.inputs = make([]textinput.Model, len(defs))
	for i, def := range defs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		if def.secret {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = in
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m AuthPageModel) value(key string) string {
	for i, def := range authFields[m.mode] {
		if def.key == key {
			return m.inputs[i].Value()
		}
	}
	return ""
}

func (m *AuthPageModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m AuthPageModel) submitCmd(ctx context.Context) tea.Cmd {
	mode := m.mode
	store := m.store
	switch mode {
	case modeLogin:
		req := api.LoginRequest{Email: m.value("email"), Password: m.value("password")}
		return func() tea.Msg {
			return authResultMsg{mode: mode, result: store.Login(ctx, req)}
		}
	case modeRegister:
		form := session.RegisterForm{
			FullName:        m.value("fullName"),
			Email:           m.value("email"),
			Phone:           m.value("phone"),
			Password:        m.value("password"),
			ConfirmPassword: m.value("confirmPassword"),
			Location:        m.value("location"),
		}
		return func() tea.Msg {
			return authResultMsg{mode: mode, result: store.Register(ctx, form)}
		}
	case modeForgot:
		email := m.value("email")
		return func() tea.Msg {
			return authResultMsg{mode: mode, result: store.ForgotPassword(ctx, email)}
		}
	case modeReset:
		email, otp, pw := m.value("email"), m.value("otp"), m.value("newPassword")
		return func() tea.Msg {
			return authResultMsg{mode: mode, result: store.ResetPassword(ctx, email, otp, pw)}
		}
	}
	return nil
}

func (m AuthPageModel) Update(msg tea.Msg, ctx context.Context) (AuthPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if !msg.result.Success {
			m.failure = msg.result.Error
			m.fields = msg.result.FieldErrors
			return m, nil
		}
		switch msg.mode {
		case modeLogin:
			return m, func() tea.Msg { return navigateMsg{to: pageShop} }
		case modeRegister:
			m.setMode(modeLogin)
			m.banner = "Account created, please login"
			if msg.result.Message != "" {
				m.banner = msg.result.Message
			}
		case modeForgot:
			m.setMode(modeReset)
			m.banner = msg.result.Message
		case modeReset:
			m.setMode(modeLogin)
			m.banner = msg.result.Message
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % (len(m.inputs) + 1))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs)) % (len(m.inputs) + 1))
			return m, nil
		case "esc":
			if m.focus < len(m.inputs) {
				m.inputs[m.focus].Blur()
			}
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.busy = true
			m.banner = ""
			return m, m.submitCmd(ctx)
		}
		if !m.capturingInput() {
			switch msg.String() {
			case "r":
				m.setMode(modeRegister)
				return m, nil
			case "l":
				m.setMode(modeLogin)
				return m, nil
			case "f":
				m.setMode(modeForgot)
				return m, nil
			}
			return m, nil
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AuthPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(authTitles[m.mode]))
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(m.styles.Success.Render(m.banner))
		b.WriteString("\n\n")
	}
	if m.failure != "" {
		b.WriteString(m.styles.Error.Render(m.failure))
		b.WriteString("\n\n")
	}

	for i, def := range authFields[m.mode] {
		cursor := "  "
		if m.focus == i {
			cursor = m.styles.Selected.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(m.styles.Title.Render(padRight(def.label, 18)))
		b.WriteString(m.inputs[i].View())
		if msg, ok := m.fields[def.key]; ok {
			b.WriteString("\n    ")
			b.WriteString(m.styles.Error.Render(msg))
		}
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Working..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeLogin:
		b.WriteString(m.styles.Help.Render("enter submit · esc then r register, f forgot password"))
	default:
		b.WriteString(m.styles.Help.Render("enter submit · esc then l back to login"))
	}
	return b.String()
}
