// Package records provides the paginated record listing view for the TUI.
package records

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/keymap"
	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/messages"
	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/styles"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

// defaultPageSize is how many records one page requests from the store.
const defaultPageSize = 20

// View is the paginated record listing view.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	recordService driving.RecordService
	ctx           context.Context

	records      []domain.Record
	total        int
	offset       int
	pageSize     int
	selected     int
	scrollOffset int

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new records view.
func NewView(s *styles.Styles, km *keymap.KeyMap, recordService driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		recordService: recordService,
		ctx:           context.Background(),
		records:       []domain.Record{},
		pageSize:      defaultPageSize,
	}
}

// WithContext sets the context used for record service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that fetches the current page of records.
func (v *View) Load() tea.Cmd {
	v.loading = true
	offset := v.offset
	return func() tea.Msg {
		if v.recordService == nil {
			return messages.RecordsLoaded{Err: ErrNoRecordService}
		}

		recs, err := v.recordService.List(v.ctx, v.pageSize, offset)
		if err != nil {
			return messages.RecordsLoaded{Offset: offset, Err: err}
		}

		total, err := v.recordService.Count(v.ctx)
		return messages.RecordsLoaded{
			Records: recs,
			Total:   total,
			Offset:  offset,
			Err:     err,
		}
	}
}

// Reset returns the view to the first page and clears selection state.
func (v *View) Reset() tea.Cmd {
	v.records = []domain.Record{}
	v.offset = 0
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
	return v.Load()
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecordsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.records = msg.Records
		v.total = msg.Total
		v.offset = msg.Offset
		v.err = nil
		if v.selected >= len(v.records) {
			v.selected = 0
			v.scrollOffset = 0
		}
		return v, nil

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
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.records)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.records) {
			rec := v.records[v.selected]
			return v, func() tea.Msg {
				return messages.RecordSelected{Record: rec}
			}
		}
	case "left", "h":
		return v, v.prevPage()
	case "right", "l":
		return v, v.nextPage()
	case "r":
		return v, v.Load()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// prevPage moves to the previous page if one exists.
func (v *View) prevPage() tea.Cmd {
	if v.offset == 0 {
		return nil
	}
	v.offset -= v.pageSize
	if v.offset < 0 {
		v.offset = 0
	}
	v.selected = 0
	v.scrollOffset = 0
	return v.Load()
}

// nextPage moves to the next page if more records exist.
func (v *View) nextPage() tea.Cmd {
	if v.offset+v.pageSize >= v.total {
		return nil
	}
	v.offset += v.pageSize
	v.selected = 0
	v.scrollOffset = 0
	return v.Load()
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of records that fit on screen.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, page indicator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the records view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Records (%d)", v.total)
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading records..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.records) == 0 {
		b.WriteString(v.styles.Muted.Render("No records stored yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.records) && i < v.scrollOffset+visibleItems; i++ {
		line := v.renderRecord(i, &v.records[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator within the page
	if len(v.records) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.records)),
			len(v.records))))
	}

	// Page indicator
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.pageIndicator()))

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// pageIndicator describes the current page position.
func (v *View) pageIndicator() string {
	if v.total == 0 {
		return ""
	}
	page := v.offset/v.pageSize + 1
	pages := (v.total + v.pageSize - 1) / v.pageSize
	return fmt.Sprintf("  Page %d of %d", page, pages)
}

// renderRecord renders a single record line.
func (v *View) renderRecord(index int, rec *domain.Record) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := rec.Title
	if title == "" {
		title = rec.ID
	}

	maxTitleLen := v.width/2 - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	detail := rec.Description
	if detail == "" {
		detail = rec.RepoURL
	}
	maxDetailLen := v.width/2 - 4
	if maxDetailLen < 10 {
		maxDetailLen = 10
	}
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, detail))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxTitleLen, title)) +
		v.styles.Muted.Render(detail)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] details  [←/→] page  [r] reload  [esc] back")
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

// Records returns the current page of records.
func (v *View) Records() []domain.Record {
	return v.records
}

// Total returns the total record count across all pages.
func (v *View) Total() int {
	return v.total
}

// Offset returns the current page offset.
func (v *View) Offset() int {
	return v.offset
}

// PageSize returns the page size.
func (v *View) PageSize() int {
	return v.pageSize
}

// SelectedIndex returns the currently selected record index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedRecord returns the currently selected record.
func (v *View) SelectedRecord() *domain.Record {
	if v.selected < len(v.records) {
		return &v.records[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
