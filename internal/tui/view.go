package tui

import (
	"fmt"
	"strings"

	"interview-practice/internal/session"
	"interview-practice/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

const levelBarWidth = 20

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.screen == ScreenResults {
		return m.renderResults()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(10, m.width))))
	b.WriteString("\n\n")

	if m.showList {
		b.WriteString(m.renderQuestionList())
	} else {
		b.WriteString(m.renderQuestion())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if m.alert != nil {
		b.WriteString("\n")
		b.WriteString(m.renderAlert())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.title
	if title == "" {
		title = "Interview"
	}
	total := m.snap.QuestionCount()
	shown := min(m.snap.ViewIndex+1, total)
	progress := ui.ProgressStyle.Render(fmt.Sprintf("  Question %d of %d  ·  %d answered", shown, total, len(m.snap.Recordings)))
	return ui.TitleStyle.Render(title) + progress
}

func (m Model) renderQuestion() string {
	if !m.subtitles {
		return ui.DimStyle.Render("  Subtitles hidden (press s to show)")
	}
	index := m.snap.ViewIndex
	if index < 0 || index >= m.snap.QuestionCount() {
		return ""
	}
	var lines []string
	for _, l := range wrapText(m.snap.Questions[index], max(10, m.width-4)) {
		lines = append(lines, "  "+ui.QuestionStyle.Render(l))
	}
	if index != m.snap.CurrentIndex && m.snap.Answered(index) {
		lines = append(lines, ui.AnsweredStyle.Render("  ✓ answered"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderQuestionList() string {
	var lines []string
	lines = append(lines, ui.LabelStyle.Render("  QUESTIONS"))
	for i, q := range m.snap.Questions {
		mark := "  "
		switch {
		case m.snap.Answered(i):
			mark = ui.AnsweredStyle.Render("✓ ")
		case i == m.snap.CurrentIndex:
			mark = ui.RecordingDotStyle.Render("• ")
		}
		text := truncateToWidth(fmt.Sprintf("%d. %s", i+1, q), max(10, m.width-8))
		reachable := i <= m.snap.CurrentIndex || m.snap.Answered(i)
		switch {
		case i == m.listCursor:
			lines = append(lines, ui.SelectedStyle.Render("> ")+mark+ui.SelectedStyle.Render(text))
		case !reachable:
			lines = append(lines, "  "+mark+ui.DimStyle.Render(text))
		default:
			lines = append(lines, "  "+mark+text)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	switch m.snap.State {
	case session.StateRecording:
		return "  " + ui.RecordingDotStyle.Render("● REC") + "  " + m.renderLevel()
	case session.StateSubmitting:
		if m.uploading {
			return "  " + ui.UploadStyle.Render("Uploading answers...")
		}
		return "  " + ui.DimStyle.Render("All answers recorded")
	case session.StateFailed:
		return "  " + ui.AlertTextStyle.Render("Upload failed")
	case session.StateAbandoned:
		return "  " + ui.DimStyle.Render("Interview abandoned")
	}
	if m.busy {
		return "  " + ui.IdleDotStyle.Render("○") + ui.DimStyle.Render(" ...")
	}
	return "  " + ui.IdleDotStyle.Render("○") + ui.DimStyle.Render(" Press Space to record your answer")
}

// renderLevel индикатор громкости микрофона
func (m Model) renderLevel() string {
	if m.meter == nil {
		return ""
	}
	filled := int(m.level * 3 * levelBarWidth)
	filled = max(0, min(filled, levelBarWidth))
	bar := strings.Repeat("█", filled)
	style := ui.LevelGreenStyle
	if filled > levelBarWidth*3/4 {
		style = ui.LevelYellowStyle
	}
	return style.Render(bar) + ui.LevelGrayStyle.Render(strings.Repeat("░", levelBarWidth-filled))
}

func (m Model) renderAlert() string {
	text := wrapText(m.alert.Message, max(10, m.width-4))
	var lines []string
	lines = append(lines, "  "+ui.AlertTitleStyle.Render(m.alert.Title))
	for _, l := range text {
		lines = append(lines, "  "+ui.AlertTextStyle.Render(l))
	}
	lines = append(lines, ui.DimStyle.Render("  press any key"))
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string
	switch m.snap.State {
	case session.StateRecording:
		parts = append(parts, footerItem("Space", "Stop"))
	case session.StateIdle:
		parts = append(parts, footerItem("Space", "Record"))
	case session.StateSubmitting, session.StateFailed:
		if m.uploading {
			parts = append(parts, footerItem("Esc", "Cancel upload"))
		} else {
			parts = append(parts, footerItem("r", "Retry upload"))
		}
	}
	parts = append(parts, footerItem("Tab", "Questions"))
	if m.showList {
		parts = append(parts, footerItem("j/k", "Nav"), footerItem("Enter", "Jump"))
	}
	parts = append(parts, footerItem("s", "Subtitles"), footerItem("q", "Quit"))
	return strings.Join(parts, "  ")
}

func (m Model) renderResults() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Interview Results"))
	if m.result != nil && m.result.Rating != nil {
		b.WriteString("  " + ui.RatingStyle.Render(fmt.Sprintf("Overall %.1f/10", *m.result.Rating)))
	}
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(10, m.width))))
	b.WriteString("\n")

	if m.result == nil || len(m.result.Reviews) == 0 {
		b.WriteString(ui.DimStyle.Render("  No reviews returned"))
		b.WriteString("\n\n")
		b.WriteString(footerItem("q", "Quit"))
		return b.String()
	}

	width := max(10, m.width-6)
	for i, r := range m.result.Reviews {
		header := fmt.Sprintf("%d. %s", i+1, r.Question)
		if r.Rating != nil {
			header += fmt.Sprintf("  (%.1f)", *r.Rating)
		}
		if i != m.selectedReview {
			b.WriteString("  " + truncateToWidth(header, width) + "\n")
			continue
		}
		b.WriteString(ui.SelectedStyle.Render("> "+truncateToWidth(header, width)) + "\n")
		writeSection(&b, "Your answer", r.Answer, width)
		writeSection(&b, "Feedback", r.Comment(), width)
		writeSection(&b, "Ideal answer", r.Improvement(), width)
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{footerItem("j/k", "Nav"), footerItem("q", "Quit")}, "  "))
	return b.String()
}

func writeSection(b *strings.Builder, label, text string, width int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.WriteString("    " + ui.LabelStyle.Render(label) + "\n")
	for _, l := range wrapText(text, width-4) {
		b.WriteString("    " + l + "\n")
	}
}

func footerItem(key, desc string) string {
	return ui.FooterKeyStyle.Render(key) + ui.FooterDescStyle.Render(" "+desc)
}

// Helpers

func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
