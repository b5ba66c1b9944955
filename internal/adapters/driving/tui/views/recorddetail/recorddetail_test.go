package recorddetail

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/messages"
	"github.com/rustyrag/rustyrag/internal/adapters/driving/tui/styles"
	"github.com/rustyrag/rustyrag/internal/core/domain"
)

func testRecord() domain.Record {
	return domain.Record{
		ID:          "rec-1",
		Title:       "serde",
		Content:     "# serde\n\nSerialization framework for Rust.",
		RepoURL:     "https://github.com/serde-rs/serde",
		PackageURL:  "https://crates.io/crates/serde",
		Description: "serialization framework",
		Tags:        []string{"serialization", "no-std"},
		Metadata: domain.Metadata{
			"downloads": domain.NumberValue(1000000),
			"license":   domain.StringValue("MIT OR Apache-2.0"),
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Nil(t, view.Record())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_SetRecord(t *testing.T) {
	view := NewView(nil)
	view.scrollOffset = 5
	view.err = errors.New("stale")

	view.SetRecord(testRecord())

	require.NotNil(t, view.Record())
	assert.Equal(t, "serde", view.Record().Title)
	assert.Equal(t, 0, view.ScrollOffset())
	assert.NoError(t, view.Err())
}

func TestView_Init(t *testing.T) {
	view := NewView(nil)

	assert.Nil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
}

func TestView_Update_EscGoesToRecords(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewRecords, changed.View)
}

func TestView_Update_Scrolling(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 10) // Small height to force scrolling
	rec := testRecord()
	rec.Content = strings.Repeat("line\n", 50)
	view.SetRecord(rec)

	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.ScrollOffset())

	// Up at top stays put
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.ScrollOffset())
}

func TestView_Update_ScrollStopsAtEnd(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 100) // Tall enough to show everything
	view.SetRecord(testRecord())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	assert.Equal(t, 0, view.ScrollOffset())
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil)

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	require.Error(t, view.Err())
}

func TestView_BuildContent(t *testing.T) {
	view := NewView(nil)
	view.SetRecord(testRecord())

	lines := view.buildContent()
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "rec-1")
	assert.Contains(t, joined, "serde")
	assert.Contains(t, joined, "https://github.com/serde-rs/serde")
	assert.Contains(t, joined, "https://crates.io/crates/serde")
	assert.Contains(t, joined, "serialization, no-std")
	assert.Contains(t, joined, "2025-06-01 12:00:00")
	assert.Contains(t, joined, "2025-06-02 12:00:00")
	assert.Contains(t, joined, "Metadata:")
	assert.Contains(t, joined, "license: MIT OR Apache-2.0")
	assert.Contains(t, joined, "Content:")
	assert.Contains(t, joined, "Serialization framework for Rust.")
}

func TestView_BuildContent_SkipsEmptyFields(t *testing.T) {
	view := NewView(nil)
	view.SetRecord(domain.Record{ID: "rec-2", Title: "minimal"})

	lines := view.buildContent()
	joined := strings.Join(lines, "\n")

	assert.NotContains(t, joined, "Repository:")
	assert.NotContains(t, joined, "Package URL:")
	assert.NotContains(t, joined, "Tags:")
	assert.NotContains(t, joined, "Metadata:")
	assert.NotContains(t, joined, "Content:")
}

func TestView_BuildContent_MetadataSorted(t *testing.T) {
	view := NewView(nil)
	rec := testRecord()
	view.SetRecord(rec)

	lines := view.buildContent()

	var metaLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  ") {
			metaLines = append(metaLines, l)
		}
	}
	require.Len(t, metaLines, 2)
	assert.Contains(t, metaLines[0], "downloads")
	assert.Contains(t, metaLines[1], "license")
}

func TestView_BuildContent_TruncatesLongValues(t *testing.T) {
	view := NewView(nil)
	view.SetRecord(domain.Record{
		ID:    "rec-3",
		Title: "big",
		Metadata: domain.Metadata{
			"blob": domain.StringValue(strings.Repeat("x", 100)),
		},
	})

	lines := view.buildContent()
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "...")
	assert.NotContains(t, joined, strings.Repeat("x", 100))
}

func TestView_BuildContent_NoRecord(t *testing.T) {
	view := NewView(nil)

	assert.Nil(t, view.buildContent())
}

func TestView_View_NoRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "Record Details")
	assert.Contains(t, output, "No record selected")
}

func TestView_View_WithRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(100, 60)
	view.SetRecord(testRecord())

	output := view.View()

	assert.Contains(t, output, "Record Details")
	assert.Contains(t, output, "serde")
	assert.Contains(t, output, "esc")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetError(errors.New("record vanished"))

	output := view.View()

	assert.Contains(t, output, "record vanished")
}

func TestView_View_ScrollIndicator(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 10)
	rec := testRecord()
	rec.Content = strings.Repeat("line\n", 50)
	view.SetRecord(rec)

	output := view.View()

	assert.Contains(t, output, "[Line 1-")
}
