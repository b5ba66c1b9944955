// Package recorddetail provides the single-record detail view for the TUI.
package recorddetail

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/messages"
	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/styles"
	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// View is the record detail view: scrollable field listing plus content body.
type View struct {
	styles *styles.Styles

	record       *domain.Record
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new record detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
	}
}

// SetRecord sets the record to display and resets scroll position.
func (v *View) SetRecord(rec domain.Record) {
	v.record = &rec
	v.scrollOffset = 0
	v.err = nil
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the record detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRecords}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	lines := v.buildContent()
	maxOffset := len(lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	if v.record == nil {
		return nil
	}

	lines := []string{
		v.formatField("ID", v.record.ID),
		v.formatField("Title", v.record.Title),
	}

	if v.record.Description != "" {
		lines = append(lines, v.formatField("Description", v.record.Description))
	}
	if v.record.RepoURL != "" {
		lines = append(lines, v.formatField("Repository", v.record.RepoURL))
	}
	if v.record.PackageURL != "" {
		lines = append(lines, v.formatField("Package URL", v.record.PackageURL))
	}
	if len(v.record.Tags) > 0 {
		lines = append(lines, v.formatField("Tags", strings.Join(v.record.Tags, ", ")))
	}

	if !v.record.CreatedAt.IsZero() {
		lines = append(lines, v.formatField("Created", v.record.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if !v.record.UpdatedAt.IsZero() {
		lines = append(lines, v.formatField("Updated", v.record.UpdatedAt.Format("2006-01-02 15:04:05")))
	}

	// Metadata section, keys sorted for stable display
	if len(v.record.Metadata) > 0 {
		lines = append(lines, "", "Metadata:")

		plain := v.record.Metadata.Plain()
		keys := make([]string, 0, len(plain))
		for k := range plain {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := fmt.Sprintf("%v", plain[key])
			if len(value) > 50 {
				value = value[:47] + "..."
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", key, value))
		}
	}

	// Content body
	if v.record.Content != "" {
		lines = append(lines, "", "Content:")
		lines = append(lines, strings.Split(v.record.Content, "\n")...)
	}

	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the record detail view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Record Details"))
	b.WriteString("\n")

	sep := min(v.width-4, 60)
	if sep < 1 {
		sep = 1
	}
	b.WriteString(strings.Repeat("─", sep))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.record == nil {
		b.WriteString(v.styles.Muted.Render("No record selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderLine styles a single content line by its shape.
func (v *View) renderLine(line string) string {
	switch {
	case line == "Metadata:" || line == "Content:":
		return v.styles.Subtitle.Render(line)

	case strings.HasPrefix(line, "  "):
		// Metadata key-value
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			return v.styles.Muted.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
		}
		return v.styles.Muted.Render(line)

	case strings.Contains(line, ":") && len(line) > 12 && line[12] == ' ':
		// Field label-value
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
		}
		return v.styles.Normal.Render(line)

	default:
		return v.styles.Normal.Render(line)
	}
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Record returns the currently displayed record.
func (v *View) Record() *domain.Record {
	return v.record
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
