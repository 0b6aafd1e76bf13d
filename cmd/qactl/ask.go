package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question about the posts of a user",
	Long: `Ask runs the text pipeline, and the multimedia pipeline when enabled,
and prints the merged response as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		posts, _ := cmd.Flags().GetString("posts")
		textOnly, _ := cmd.Flags().GetBool("text-only")

		a, err := loadApp(cmd.Context(), cmd, posts)
		if err != nil {
			return err
		}
		defer a.Close()

		question := strings.Join(args, " ")
		answer := a.Service.Answer
		if textOnly {
			answer = a.Service.TextAnswer
		}

		res, err := answer(cmd.Context(), user, question)
		if err != nil {
			return fmt.Errorf("answer question: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	askCmd.Flags().StringP("user", "u", "", "id of the user whose posts are searched")
	askCmd.Flags().String("posts", "", "YAML posts file imported before asking")
	askCmd.Flags().Bool("text-only", false, "skip the multimedia pipeline")
	_ = askCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(askCmd)
}
