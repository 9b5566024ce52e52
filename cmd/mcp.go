package cmd

import (
	"github.com/huangsam/nestscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Nestscore MCP server",
	Long: `Launch an MCP server over stdio so AI agents can list, score and compare
your properties with standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, newGeocoder())
	},
}
