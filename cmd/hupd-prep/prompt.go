package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hupd-prep/internal/agent"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the retrieval-agent system prompt",
	Long: `Prompt prints the system prompt for the downstream patent-retrieval
agent, for wiring into an agent runtime or inspecting what the agent is
instructed to do with the prepared corpus.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(agent.SystemPrompt)
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
