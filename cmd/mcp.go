package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/mcpserver"
	"github.com/abhisek/careerfit/internal/tracking"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve assessments as MCP tools over stdio",
	Long: `Start an MCP server on stdin/stdout. Logs go to stderr so they never
mix with the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := &tracking.Tracker{Events: st.EventRepo(), Results: st.ResultRepo(), Logger: logger}
		logger.Info("mcp server starting", "assessments", reg.Len())
		return mcpserver.ServeStdio(mcpserver.New(reg, tracker, buildVersion()))
	},
}
