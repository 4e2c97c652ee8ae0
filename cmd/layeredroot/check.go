package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/layerkit/layeredroot"
	"github.com/layerkit/layeredroot/conf"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
)

func newCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and show effective layer setup per scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			site, err := conf.Load(afero.NewOsFs(), configPath)
			if err != nil {
				fmt.Fprintln(out, failStyle.Render("✗"), configPath+":", err)
				return err
			}

			fmt.Fprintln(out, okStyle.Render("✓"), configPath, "loaded")
			fmt.Fprintln(out)

			printScope(out, "server", site.DocumentRoot, site.Effective)
			for _, loc := range site.Locations {
				printScope(out, "  location "+loc.Path, site.DocumentRoot, loc.Effective)
			}
			for _, vh := range site.Hosts {
				name := vh.ServerName
				if name == "" {
					name = vh.Addr
				}
				printScope(out, "vhost "+name, vh.DocumentRoot, vh.Effective)
				for _, loc := range vh.Locations {
					printScope(out, "  location "+loc.Path, vh.DocumentRoot, loc.Effective)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "site.conf", "directive configuration file")

	return cmd
}

func printScope(out io.Writer, name, docRoot string, eff layeredroot.EffectiveConfig) {
	state := disabledStyle.Render("layers off")
	if eff.Enabled {
		if len(eff.Layers) == 0 {
			state = "layers on, none configured"
		} else {
			state = "layers: " + strings.Join(eff.Layers, " → ")
		}
	}
	fmt.Fprintf(out, "%s  (root %s)\n    %s\n", headingStyle.Render(name), docRoot, state)
}
