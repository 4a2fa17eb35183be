package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	outputStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// PreviewModel - Interactive transform preview
// =============================================================================

// previewStep is one transform in the preview pipeline.
type previewStep struct {
	Info    transform.Info
	Enabled bool
}

// PreviewModel is the bubbletea model for the interactive preview. Typed
// text is transformed live by the enabled steps, in list order.
type PreviewModel struct {
	Input  []rune
	Steps  []previewStep
	Cursor int
	Width  int
}

// NewPreviewModel creates a preview with text prefilled. Transforms in
// enabled come first, in the given order, followed by the disabled ones.
func NewPreviewModel(text string, enabled []transform.ID) PreviewModel {
	m := PreviewModel{Input: []rune(text), Width: 80}
	for _, id := range enabled {
		for _, info := range transform.All() {
			if info.ID == id {
				m.Steps = append(m.Steps, previewStep{Info: info, Enabled: true})
			}
		}
	}
	for _, info := range transform.All() {
		if !m.has(info.ID) {
			m.Steps = append(m.Steps, previewStep{Info: info})
		}
	}
	return m
}

func (m PreviewModel) has(id transform.ID) bool {
	for _, s := range m.Steps {
		if s.Info.ID == id {
			return true
		}
	}
	return false
}

// Transforms returns the enabled transforms in pipeline order.
func (m PreviewModel) Transforms() []transform.ID {
	var ids []transform.ID
	for _, s := range m.Steps {
		if s.Enabled {
			ids = append(ids, s.Info.ID)
		}
	}
	return ids
}

// Output returns the transformed input.
func (m PreviewModel) Output() string {
	return transform.Apply(string(m.Input), m.Transforms())
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "shift+tab":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "tab":
			if m.Cursor < len(m.Steps)-1 {
				m.Cursor++
			}
		case "enter", "ctrl+t":
			m.Steps = cloneSteps(m.Steps)
			m.Steps[m.Cursor].Enabled = !m.Steps[m.Cursor].Enabled
		case "ctrl+k":
			if m.Cursor > 0 {
				m.Steps = cloneSteps(m.Steps)
				m.Steps[m.Cursor-1], m.Steps[m.Cursor] = m.Steps[m.Cursor], m.Steps[m.Cursor-1]
				m.Cursor--
			}
		case "ctrl+j":
			if m.Cursor < len(m.Steps)-1 {
				m.Steps = cloneSteps(m.Steps)
				m.Steps[m.Cursor+1], m.Steps[m.Cursor] = m.Steps[m.Cursor], m.Steps[m.Cursor+1]
				m.Cursor++
			}
		case "backspace":
			if len(m.Input) > 0 {
				m.Input = m.Input[:len(m.Input)-1:len(m.Input)-1]
			}
		case "ctrl+u":
			m.Input = nil
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.Input = append(m.Input[:len(m.Input):len(m.Input)], msg.Runes...)
			case tea.KeySpace:
				m.Input = append(m.Input[:len(m.Input):len(m.Input)], ' ')
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pseudo-localization Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to edit  ↑/↓ select  ⏎ toggle  ctrl+k/ctrl+j reorder  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(listDimStyle.Render("Input  "))
	b.WriteString(listNormalStyle.Render(string(m.Input)))
	b.WriteString(StyleHighlight.Render("▏"))
	b.WriteString("\n\n")

	for i, s := range m.Steps {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if s.Enabled {
			check = "[" + iconSuccess + "]"
		}
		line := fmt.Sprintf("%s%s -%s %-12s %s", cursor, check, s.Info.Flag, s.Info.ID, s.Info.Summary)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case s.Enabled:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	width := m.Width - 4
	if width < 20 {
		width = 20
	}
	b.WriteString(outputStyle.Width(width).Render(m.Output()))
	b.WriteString("\n")

	return b.String()
}

func cloneSteps(steps []previewStep) []previewStep {
	return append([]previewStep(nil), steps...)
}

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var transforms *transformFlags

	cmd := &cobra.Command{
		Use:   "preview [text]",
		Short: "Interactively preview transforms on sample text",
		Long: `Open an interactive preview. Type text to see it transformed live, toggle
transforms on and off and reorder them. The final selection is printed on
exit so it can be reused with --transforms.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			ids, err := transforms.resolve(cfg)
			if err != nil {
				return err
			}
			text := "Hello {0}, you have {1} new messages"
			if len(args) == 1 {
				text = args[0]
			}

			p := tea.NewProgram(NewPreviewModel(text, ids),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}

			m, ok := final.(PreviewModel)
			if !ok {
				return nil
			}
			out := cmd.OutOrStdout()
			printKeyValue(out, "transforms", strings.Join(transform.Strings(m.Transforms()), ","))
			printKeyValue(out, "output", m.Output())
			return nil
		},
	}

	transforms = addTransformFlags(cmd)
	return cmd
}
