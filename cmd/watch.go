// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Full-screen live event dashboard",
	Long: `Opens a full-screen terminal dashboard showing the panel identity, live
session statistics and a scrolling event log. Press q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, connInfo, err := openPanelSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.BeginMonitoring(); err != nil {
			return err
		}
		return runWatch(cmd.Context(), session, connInfo)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// Log entry shown in the event viewport
type watchLogEntry struct {
	timestamp time.Time
	message   string
	isAlarm   bool
}

// Messages. Statistics travel as value snapshots taken by the reader
// goroutine, so the model never touches the session's live counters.
type watchTickMsg time.Time
type panelEventMsg struct {
	event mgsp.Event
	stats mgsp.Statistics
}
type streamErrMsg struct {
	err error
}

// watchModel is the dashboard state.
type watchModel struct {
	info     *mgsp.PanelInfo
	stats    mgsp.Statistics
	connInfo string

	log        []watchLogEntry
	maxEntries int
	viewport   viewport.Model
	ready      bool

	// Last known state per partition, keyed by partition number
	partitions map[int]string

	width     int
	height    int
	quitting  bool
	streamErr error
}

func initialWatchModel(session *mgsp.Session, connInfo string) watchModel {
	return watchModel{
		info:       session.PanelInfo(),
		stats:      *session.Stats(),
		connInfo:   connInfo,
		log:        make([]watchLogEntry, 0),
		maxEntries: 500,
		partitions: make(map[int]string),
		width:      80,
		height:     24,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		watchTickCmd(),
		tea.EnterAltScreen,
	)
}

func watchTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.height - 12
		if logHeight < 5 {
			logHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-4, logHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = logHeight
		}
		m.refreshLog()

	case watchTickMsg:
		// Redraw; counters refresh with the next event snapshot
		return m, watchTickCmd()

	case panelEventMsg:
		m.stats = msg.stats
		m.addLogEntry(msg.event)
		m.refreshLog()

	case streamErrMsg:
		m.streamErr = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *watchModel) addLogEntry(ev mgsp.Event) {
	_, isAlarm := ev.(mgsp.ZoneAlarmEvent)
	entry := watchLogEntry{
		timestamp: ev.Raw().At,
		message:   ev.String(),
		isAlarm:   isAlarm,
	}
	m.log = append(m.log, entry)
	if len(m.log) > m.maxEntries {
		m.log = m.log[len(m.log)-m.maxEntries:]
	}
	m.updatePartition(ev)
}

// updatePartition folds arm/disarm/status events into the snapshot row.
func (m *watchModel) updatePartition(ev mgsp.Event) {
	switch e := ev.(type) {
	case mgsp.PartitionStatusEvent:
		switch e.Status {
		case mgsp.PartitionArmed:
			m.partitions[e.Partition] = "armed"
		case mgsp.PartitionDisarmed:
			m.partitions[e.Partition] = "disarmed"
		case mgsp.PartitionSteadyAlarm:
			m.partitions[e.Partition] = "ALARM"
		case mgsp.PartitionAlarmStopped:
			m.partitions[e.Partition] = "alarm stopped"
		case mgsp.PartitionEntryDelay:
			m.partitions[e.Partition] = "entry delay"
		case mgsp.PartitionExitDelay:
			m.partitions[e.Partition] = "exit delay"
		}
	case mgsp.ArmEvent:
		m.partitions[e.Partition] = "armed"
	case mgsp.DisarmEvent:
		m.partitions[e.Partition] = "disarmed"
	}
}

var (
	watchTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	watchAlarmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	watchEventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (m *watchModel) refreshLog() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	for _, entry := range m.log {
		style := watchEventStyle
		if entry.isAlarm {
			style = watchAlarmStyle
		}
		sb.WriteString(fmt.Sprintf("%s %s\n",
			watchTimeStyle.Render(entry.timestamp.Format("15:04:05.000")),
			style.Render(entry.message),
		))
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(sb.String())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m watchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("PARADOXCTL - LIVE MONITOR"))
	s.WriteString("\n")
	header := fmt.Sprintf("%s | Press 'q' to quit", m.connInfo)
	if m.info != nil {
		header = fmt.Sprintf("%s (fw %s) | %s | Press 'q' to quit",
			m.info.ProductID, m.info.Firmware(), m.connInfo)
	}
	s.WriteString(headerStyle.Render(header))
	s.WriteString("\n\n")

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Frames rx:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.FramesReceived)),
		labelStyle.Render("Events:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.Events)),
		labelStyle.Render("Rate:"), valueStyle.Render(fmt.Sprintf("%.1f frames/s", m.stats.FrameRate())),
	))
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("Zone:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.ZoneEvents)),
		labelStyle.Render("Partition:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.PartitionEvents)),
		labelStyle.Render("Alarm:"), func() string {
			if m.stats.AlarmEvents > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", m.stats.AlarmEvents))
			}
			return valueStyle.Render("0")
		}(),
	))
	if m.stats.ChecksumErrors > 0 || m.stats.UnknownEvents > 0 {
		statsContent.WriteString(fmt.Sprintf("\n%s %s   %s %s",
			labelStyle.Render("Checksum errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.ChecksumErrors)),
			labelStyle.Render("Unknown events:"), headerStyle.Render(fmt.Sprintf("%d", m.stats.UnknownEvents)),
		))
	}
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	if len(m.partitions) > 0 {
		nums := make([]int, 0, len(m.partitions))
		for n := range m.partitions {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		partContent := strings.Builder{}
		for i, n := range nums {
			if i > 0 {
				partContent.WriteString("   ")
			}
			state := m.partitions[n]
			style := valueStyle
			if state == "ALARM" {
				style = errorStyle
			}
			partContent.WriteString(fmt.Sprintf("%s %s",
				labelStyle.Render(fmt.Sprintf("Partition %d:", n)),
				style.Render(state),
			))
		}
		s.WriteString(boxStyle.Render(partContent.String()))
		s.WriteString("\n\n")
	}

	s.WriteString(labelStyle.Render("Events:"))
	s.WriteString("\n")
	if m.ready {
		s.WriteString(boxStyle.Render(m.viewport.View()))
	} else {
		s.WriteString(headerStyle.Render("  (waiting for terminal size)"))
	}

	return s.String()
}

// runWatch wires the event stream into the dashboard. The reader goroutine
// blocks in NextEvent and is released through context cancellation when the
// user quits. It is the only goroutine touching the session; the model sees
// statistics only as snapshots copied here.
func runWatch(ctx context.Context, session *mgsp.Session, connInfo string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := initialWatchModel(session, connInfo)
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		for {
			ev, err := session.NextEvent(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					p.Send(streamErrMsg{err: err})
				}
				return
			}
			p.Send(panelEventMsg{event: ev, stats: *session.Stats()})
		}
	}()

	final, err := p.Run()
	cancel()
	if err != nil {
		return err
	}
	if fm, ok := final.(watchModel); ok && fm.streamErr != nil {
		return fmt.Errorf("event stream: %w", fm.streamErr)
	}
	return nil
}
