package tools

import (
	"github.com/spf13/cobra"
)

// ToolsCmd represents the tools command
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect target ISA registers",
}

func init() {
	ToolsCmd.AddCommand(targetsCmd, showCmd)
}
