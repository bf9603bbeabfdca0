package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yakychan/KidsFlix/handlers"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the addon version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", handlers.AddonName, handlers.Version)
		},
	}
}
