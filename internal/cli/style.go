package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/staff-directory-api/internal/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func kindPrefix(k models.NotificationKind) string {
	switch k {
	case models.NotificationSuccess:
		return successStyle.Render("✓")
	case models.NotificationWarning:
		return warningStyle.Render("⚠")
	case models.NotificationError:
		return errorStyle.Render("✗")
	}
	return infoStyle.Render("→")
}

func statusText(r *models.StaffRecord) string {
	if r.IsAvailable {
		return successStyle.Render(r.Status().Label())
	}
	return warningStyle.Render(r.Status().Label())
}
