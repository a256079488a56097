package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelCompliance = iota
	panelChat
	panelAlerts
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	compliance  *complianceSnapshot
	metricsData *metricsSnapshot
	alerts      []alertSnapshot

	// State.
	loading bool
	err     error
}

type complianceSnapshot struct {
	activeAlerts  int
	alertsByLevel map[string]int
	riskCount     int
}

type metricsSnapshot struct {
	chatTurns       int
	sessions        int
	persistFailures int
	avgTurnMS       float64
	eventCount      int
}

type alertSnapshot struct {
	severity string
	message  string
	time     string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	compliance *complianceSnapshot
	metrics    *metricsSnapshot
	alerts     []alertSnapshot
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	levelCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	levelError    = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	levelWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	levelInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelCompliance,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.compliance = msg.compliance
		m.metricsData = msg.metrics
		m.alerts = msg.alerts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" AI Resume Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	compliancePanel := m.renderCompliancePanel()
	chatPanel := m.renderChatPanel()
	alertsPanel := m.renderAlertsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		compliancePanel = m.applyPanelStyle(panelCompliance, compliancePanel, colWidth-4)
		chatPanel = m.applyPanelStyle(panelChat, chatPanel, colWidth-4)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, compliancePanel, chatPanel, alertsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		compliancePanel = m.applyPanelStyle(panelCompliance, compliancePanel, panelWidth)
		chatPanel = m.applyPanelStyle(panelChat, chatPanel, panelWidth)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, compliancePanel, chatPanel, alertsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderCompliancePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Compliance"))
	b.WriteString("\n")

	if m.compliance == nil {
		b.WriteString("  No compliance data.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Active alerts", m.compliance.activeAlerts))
	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Open risks", m.compliance.riskCount))

	// Display in severity order.
	order := []string{"critical", "error", "warning", "info"}
	for _, level := range order {
		count, ok := m.compliance.alertsByLevel[level]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-16s %d", level, count)
		b.WriteString(styleForLevel(level).Render(label))
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderChatPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Chat (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Events", md.eventCount))
	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Turns", md.chatTurns))
	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Sessions", md.sessions))
	b.WriteString(fmt.Sprintf("  %-16s %d\n", "Persist fails", md.persistFailures))
	b.WriteString(fmt.Sprintf("  %-16s %.0fms\n", "Avg latency", md.avgTurnMS))

	return b.String()
}

func (m dashboardModel) renderAlertsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Operational Alerts"))
	b.WriteString("\n")

	if len(m.alerts) == 0 {
		b.WriteString("  No active alerts.")
		return b.String()
	}

	for _, a := range m.alerts {
		sev := styleForSeverity(a.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(a.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, a.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d alert(s)", len(m.alerts)))

	return b.String()
}

func styleForLevel(level string) lipgloss.Style {
	switch level {
	case "critical":
		return levelCritical
	case "error":
		return levelError
	case "warning":
		return levelWarning
	case "info":
		return levelInfo
	default:
		return lipgloss.NewStyle()
	}
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	var result dataLoadedMsg

	// Load compliance state from the monitor and risk register.
	if Monitor != nil {
		snapshot := &complianceSnapshot{alertsByLevel: make(map[string]int)}
		for _, alert := range Monitor.ActiveAlerts() {
			snapshot.activeAlerts++
			snapshot.alertsByLevel[string(alert.Level)]++
		}
		if Risks != nil {
			snapshot.riskCount = Risks.Summary().TotalRisks
		}
		result.compliance = snapshot
	}

	// Load chat metrics from MetricsCalc.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			chatTurns:       metrics.ChatTurns,
			sessions:        metrics.Sessions,
			persistFailures: metrics.PersistFailures,
			avgTurnMS:       metrics.AvgTurnMS,
			eventCount:      metrics.EventCount,
		}
	}

	// Load operational alerts from AlertEngine.
	if AlertEngine != nil {
		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading alerts: %w", err)
			return result
		}
		result.alerts = make([]alertSnapshot, 0, len(alerts))

		// Sort alerts by severity: high first, then medium, then low.
		sort.Slice(alerts, func(i, j int) bool {
			return severityRank(string(alerts[i].Severity)) < severityRank(string(alerts[j].Severity))
		})

		for _, a := range alerts {
			result.alerts = append(result.alerts, alertSnapshot{
				severity: string(a.Severity),
				message:  a.Message,
				time:     a.TriggeredAt.Format("2006-01-02 15:04 UTC"),
			})
		}
	}

	return result
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for compliance and chat metrics",
	Long: `Launch an interactive terminal dashboard showing compliance state,
chat metrics, and operational alerts in a live view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
