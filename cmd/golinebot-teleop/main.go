package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 4 // title, state line, blank
	footerHeight = 7 // log box height
	maxLogs      = 5
	borderSize   = 2
	speedStep    = 10
)

const (
	speedSeries = "speed"
	lineSeries  = "line"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	speedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ledColors maps the indicator to a terminal colour.
var ledColors = map[string]string{
	hardware.Red.String():   "196",
	hardware.Green.String(): "46",
	hardware.Blue.String():  "33",
}

// keyCmds are the keys that map straight onto one command.
var keyCmds = map[string]comms.Cmd{
	"up":    {Cmd: comms.CMD_MOTION, Name: hardware.Forward.String()},
	"down":  {Cmd: comms.CMD_MOTION, Name: hardware.Backward.String()},
	"left":  {Cmd: comms.CMD_MOTION, Name: hardware.Left.String()},
	"right": {Cmd: comms.CMD_MOTION, Name: hardware.Right.String()},
	" ":     {Cmd: comms.CMD_MOTION, Name: hardware.Stop.String()},
	"a":     {Cmd: comms.CMD_MODE, Name: hardware.Autonomous.String()},
	"m":     {Cmd: comms.CMD_MODE, Name: hardware.Manual.String()},
}

type teleopModel struct {
	client   *Client
	chart    *streamlinechart.Model
	state    comms.StatePayload
	width    int
	height   int
	logs     []string
	quitting bool
}

type stateMsg comms.StatePayload
type logMsg string
type closedMsg struct{}

func waitForState(client *Client) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-client.States()
		if !ok {
			return closedMsg{}
		}
		return stateMsg(state)
	}
}

func waitForLog(client *Client) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-client.Logs())
	}
}

func initialTeleopModel(client *Client) teleopModel {
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(0, float64(hardware.MaxSpeed)),
	)
	chart.SetDataSetStyles(speedSeries, runes.ThinLineStyle, speedStyle)
	chart.SetDataSetStyles(lineSeries, runes.ThinLineStyle, lineStyle)

	return teleopModel{
		client: client,
		chart:  &chart,
	}
}

func (m *teleopModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *teleopModel) resizeChart() {
	w := m.width - borderSize - 2
	if w < 40 {
		w = 40
	}
	h := m.height - headerHeight - footerHeight - borderSize
	if h < 6 {
		h = 6
	}
	m.chart.Resize(w, h)
}

// send queues cmd on the robot and logs a failed write.
func (m *teleopModel) send(cmd comms.Cmd) {
	if err := m.client.Send(cmd); err != nil {
		m.addLog(fmt.Sprintf("send %v: %v", cmd, err))
	}
}

// speedCmd nudges the current speed by delta, within the duty cycle range.
func (m *teleopModel) speedCmd(delta int) comms.Cmd {
	return comms.Cmd{Cmd: comms.CMD_SPEED, Value: float64(hardware.ClampSpeed(int(m.state.Speed) + delta))}
}

func (m teleopModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.client),
		waitForLog(m.client),
	)
}

func (m teleopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.send(keyCmds[" "])
			m.quitting = true
			return m, tea.Quit
		case "+", "=":
			m.send(m.speedCmd(speedStep))
		case "-":
			m.send(m.speedCmd(-speedStep))
		default:
			if cmd, ok := keyCmds[key]; ok {
				m.send(cmd)
			}
		}
		return m, nil

	case stateMsg:
		m.state = comms.StatePayload(msg)

		line := 0.0
		if m.state.LineBlack {
			line = float64(hardware.MaxSpeed)
		}
		m.chart.PushDataSet(speedSeries, float64(m.state.Speed))
		m.chart.PushDataSet(lineSeries, line)
		m.chart.DrawAll()
		return m, waitForState(m.client)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.client)

	case closedMsg:
		m.addLog("disconnected from robot, press 'q' to quit")
		return m, nil
	}

	return m, nil
}

func (m teleopModel) View() string {
	if m.quitting {
		return "Teleoperation stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("golinebot teleop"))
	sb.WriteString(statusStyle.Render("  arrows drive, space stops, +/- speed, a/m mode, q quits"))
	sb.WriteString("\n\n")

	led := lipgloss.NewStyle().Foreground(lipgloss.Color(ledColors[m.state.Color])).Render("●")
	surface := "white"
	if m.state.LineBlack {
		surface = "black"
	}
	sb.WriteString(fmt.Sprintf("%s mode=%s motion=%s speed=%d line=%s tick=%d",
		led, m.state.Mode, m.state.Motion, m.state.Speed, surface, m.state.Tick))
	sb.WriteString("\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Foreground(lipgloss.Color("9"))
	if m.width > 4 {
		logStyle = logStyle.Width(m.width - 4)
	}

	logLines := statusStyle.Render("Press 'q' to quit")
	if len(m.logs) > 0 {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func main() {
	server := flag.String("server", "http://localhost:80", "Address of the robot")
	email := flag.String("email", os.Getenv("LINEBOT_EMAIL"), "Operator email, empty when the robot runs with DEBUG")
	password := flag.String("password", os.Getenv("LINEBOT_PASSWORD"), "Operator password")
	flag.Parse()

	var token string
	if *email != "" {
		var err error
		token, err = login(*server, *email, *password)
		if err != nil {
			log.Fatalf("Unable to log in: %v", err)
		}
	}

	client, err := Dial(*server, token)
	if err != nil {
		log.Fatalf("Unable to connect: %v", err)
	}
	defer client.Close()

	p := tea.NewProgram(initialTeleopModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
