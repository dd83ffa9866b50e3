// Version command for the kagproj CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/pkg/kagproj"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kagproj version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kagproj", kagproj.Version)
	},
}
