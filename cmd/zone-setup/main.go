package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:3536"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringServer step = iota
	stepEnteringUsername
	stepEnteringPassword
	stepLoggingIn
	stepLoadingZones
	stepSelectingZone
	stepEnteringZoneName
	stepSaving
	stepComplete
)

type zone struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ControllerUID string   `json:"controllerUid"`
	ExtraInfo     string   `json:"extraInfo"`
}

type model struct {
	step         step
	client       *http.Client
	serverURL    string
	username     string
	password     string
	zones        []zone
	cursor       int
	selectedZone *zone
	zoneName     string
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{}
type zonesLoadedMsg []zone
type saveSuccessMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	jar, _ := cookiejar.New(nil)
	return model{
		step:         stepEnteringServer,
		client:       &http.Client{Timeout: 10 * time.Second, Jar: jar},
		currentInput: defaultServerURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func login(client *http.Client, serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		payload, _ := json.Marshal(map[string]string{
			"username": username,
			"password": password,
		})

		resp, err := client.Post(serverURL+"/login", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login failed (status %d)", resp.StatusCode)}
		}
		return loginSuccessMsg{}
	}
}

func loadZones(client *http.Client, serverURL string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Get(serverURL + "/api/zones")
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("could not list zones (status %d)", resp.StatusCode)}
		}

		var zones []zone
		if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
			return errMsg{err}
		}
		return zonesLoadedMsg(zones)
	}
}

func saveZone(client *http.Client, serverURL string, z zone) tea.Cmd {
	return func() tea.Msg {
		payload, _ := json.Marshal(z)
		req, _ := http.NewRequest(http.MethodPut,
			fmt.Sprintf("%s/api/zones/%d", serverURL, z.ID), bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("could not save zone (status %d)", resp.StatusCode)}
		}
		return saveSuccessMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case loginSuccessMsg:
		m.step = stepLoadingZones
		m.message = ""
		return m, loadZones(m.client, m.serverURL)

	case zonesLoadedMsg:
		m.zones = msg
		if len(m.zones) == 0 {
			m.message = "No zones yet. Power on the controller so it registers itself, then re-run."
			m.step = stepComplete
			return m, nil
		}
		m.step = stepSelectingZone
		return m, nil

	case saveSuccessMsg:
		m.step = stepComplete
		m.message = fmt.Sprintf("Zone %d is now named %q.", m.selectedZone.ID, m.zoneName)
		return m, nil

	case errMsg:
		m.message = msg.Error()
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringUsername
		case stepSaving:
			m.step = stepSelectingZone
		default:
			m.step = stepComplete
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.step {
	case stepEnteringServer, stepEnteringUsername, stepEnteringPassword, stepEnteringZoneName:
		switch msg.String() {
		case "enter":
			return m.submitInput()
		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.currentInput += msg.String()
			}
		}

	case stepSelectingZone:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.zones)-1 {
				m.cursor++
			}
		case "enter":
			z := m.zones[m.cursor]
			m.selectedZone = &z
			m.currentInput = z.Name
			m.step = stepEnteringZoneName
		}
	}
	return m, nil
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.currentInput)

	switch m.step {
	case stepEnteringServer:
		if value == "" {
			value = defaultServerURL
		}
		m.serverURL = strings.TrimRight(value, "/")
		m.currentInput = ""
		m.step = stepEnteringUsername

	case stepEnteringUsername:
		if value == "" {
			return m, nil
		}
		m.username = value
		m.currentInput = ""
		m.step = stepEnteringPassword

	case stepEnteringPassword:
		if value == "" {
			return m, nil
		}
		m.password = value
		m.currentInput = ""
		m.step = stepLoggingIn
		return m, login(m.client, m.serverURL, m.username, m.password)

	case stepEnteringZoneName:
		if value == "" {
			return m, nil
		}
		m.zoneName = value
		updated := *m.selectedZone
		updated.Name = value
		m.step = stepSaving
		return m, saveZone(m.client, m.serverURL, updated)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Irrigation Zone Setup"))
	b.WriteString("\n")

	switch m.step {
	case stepEnteringServer:
		b.WriteString(promptStyle.Render("Server URL: "))
		b.WriteString(inputStyle.Render(m.currentInput))
	case stepEnteringUsername:
		b.WriteString(promptStyle.Render("Username: "))
		b.WriteString(inputStyle.Render(m.currentInput))
	case stepEnteringPassword:
		b.WriteString(promptStyle.Render("Password: "))
		b.WriteString(inputStyle.Render(strings.Repeat("*", len(m.currentInput))))
	case stepLoggingIn:
		b.WriteString("Logging in...")
	case stepLoadingZones:
		b.WriteString("Loading zones...")
	case stepSelectingZone:
		b.WriteString("Select the zone to configure:\n\n")
		for i, z := range m.zones {
			name := z.Name
			if name == "" {
				name = "(unnamed)"
			}
			line := fmt.Sprintf("%s  controller %s", name, z.ControllerUID)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(normalStyle.Render(line))
			}
			b.WriteString("\n")
		}
	case stepEnteringZoneName:
		b.WriteString(promptStyle.Render("Zone name: "))
		b.WriteString(inputStyle.Render(m.currentInput))
	case stepSaving:
		b.WriteString("Saving...")
	case stepComplete:
		if m.message != "" && !strings.HasPrefix(m.message, "Zone") {
			b.WriteString(m.message)
		} else {
			b.WriteString(successStyle.Render(m.message))
		}
		b.WriteString("\n\nPress ctrl+c to exit.")
	}

	if m.message != "" && m.step != stepComplete {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.message))
	}
	b.WriteString("\n")
	return b.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
