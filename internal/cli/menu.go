package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"box2d-shapes/internal/editor"
)

const (
	menuList = -1
	menuExit = -2
)

// menuEntry is a clickable toolbar item with its full menu path.
type menuEntry struct {
	Label string
	Item  editor.MenuItem
}

// flattenToolbar lists the clickable items of the toolbar menus. Submenus are expanded into
// "Menu > Parent > Item" labels; dividers are dropped.
func flattenToolbar(menus []editor.ToolbarMenu) []menuEntry {
	var out []menuEntry
	var walk func(prefix []string, items []editor.MenuItem)
	walk = func(prefix []string, items []editor.MenuItem) {
		for _, item := range items {
			if item.Divider {
				continue
			}
			path := append(append([]string(nil), prefix...), item.Text)
			if len(item.Children) > 0 {
				walk(path, item.Children)
				continue
			}
			if len(item.Command) > 0 {
				out = append(out, menuEntry{Label: strings.Join(path, " > "), Item: item})
			}
		}
	}
	for _, m := range menus {
		walk([]string{m.Label}, m.Items)
	}
	return out
}

// newMenuCommand creates the "menu" subcommand, an interactive loop over the editor toolbar.
func newMenuCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive mode: pick toolbar actions from a menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}
			entries := flattenToolbar(e.Toolbar())

			for {
				choice := menuExit
				options := make([]huh.Option[int], 0, len(entries)+2)
				for i, entry := range entries {
					options = append(options, huh.NewOption(entry.Label, i))
				}
				options = append(options,
					huh.NewOption("List shapes", menuList),
					huh.NewOption("Exit", menuExit),
				)

				err := huh.NewForm(
					huh.NewGroup(
						huh.NewSelect[int]().
							Title("What would you like to do?").
							Options(options...).
							Value(&choice),
					),
				).RunWithContext(cmd.Context())
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}

				switch choice {
				case menuExit:
					fmt.Fprintln(cmd.OutOrStdout(), "Goodbye.")
					return nil
				case menuList:
					if err := e.Graph().Render(cmd.OutOrStdout()); err != nil {
						return err
					}
				default:
					entry := entries[choice]
					if err := e.Click(cmd.Context(), entry.Item); err != nil {
						logger.Error("action failed", "action", entry.Label, "error", err)
					}
					for _, line := range e.Console().Lines() {
						logger.Debug("console", "line", line)
					}
				}
			}
		},
	}
}
