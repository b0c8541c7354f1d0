package ui

import "github.com/charmbracelet/lipgloss"

// Цвета интерфейса
var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD75F")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorCyan    = lipgloss.Color("#5FD7FF")
	ColorGray    = lipgloss.Color("#808080")
	ColorDimGray = lipgloss.Color("#4E4E4E")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#D75FD7")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	QuestionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	UploadStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	AlertTitleStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	AlertTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	AnsweredStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	RatingStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	LevelGreenStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	LevelYellowStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	LevelGrayStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
