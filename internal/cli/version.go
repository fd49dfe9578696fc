package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samchinmaya/querydesk/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Info())
		},
	}
}
