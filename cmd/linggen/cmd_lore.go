package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"linggen/cmd/linggen/ui"
	"linggen/internal/aptitude"
	"linggen/internal/descriptor"
	"linggen/internal/formation"
)

var (
	loreConstitution string
	loreRaw          bool
)

// loreCmd describes a descriptor the way the card does
var loreCmd = &cobra.Command{
	Use:   "lore [descriptor]",
	Short: "Show the lore for a descriptor and constitution",
	Args:  cobra.ExactArgs(1),
	RunE:  runLore,
}

func init() {
	loreCmd.Flags().StringVar(&loreConstitution, "constitution", aptitude.DefaultConstitution, "Constitution")
	loreCmd.Flags().BoolVar(&loreRaw, "raw", false, "Print markdown without terminal styling")
}

// loreMarkdown builds the markdown page for a descriptor/constitution pair.
func loreMarkdown(text, constitution string) string {
	c := descriptor.Parse(text)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", text)
	fmt.Fprintf(&b, "- **灵根** %s\n", c.Root.Label())
	if len(c.Elements) > 0 {
		glyphs := make([]string, len(c.Elements))
		for i, el := range c.Elements {
			glyphs[i] = el.Glyph()
		}
		fmt.Fprintf(&b, "- **五行** %s\n", strings.Join(glyphs, "、"))
	}
	if c.Rare != descriptor.RareNone {
		fmt.Fprintf(&b, "- **异灵** %s\n", c.Rare.Glyph())
	}
	fmt.Fprintf(&b, "- **体质** %s\n", constitution)
	fmt.Fprintf(&b, "- **阵纹** `%s`\n\n", formation.Select(c))
	fmt.Fprintf(&b, "> %s\n", aptitude.Describe(text, constitution))
	return b.String()
}

func runLore(cmd *cobra.Command, args []string) error {
	md := loreMarkdown(args[0], loreConstitution)
	if loreRaw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	style := "light"
	if ui.ThemeFor(cfg.UI.Theme).IsDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render lore: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
