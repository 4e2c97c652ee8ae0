package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "layeredroot",
		Short: "Static file server with layered document-root overrides",
		Long: `layeredroot serves a document root augmented with an ordered list of
override directories ("layers"). Before a request is mapped under the
document root, each configured layer is searched in order; the first
layer containing a matching file serves it.

Configuration uses Apache-style directives (EnableDocumentRootLayers,
DocumentRootLayers) in server, virtual-host, and location scopes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}
