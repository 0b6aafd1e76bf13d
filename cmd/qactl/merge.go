package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/merge"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <text.json> <multimedia.json>",
	Short: "Merge a text and a multimedia response offline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResponse(args[0])
		if err != nil {
			return err
		}
		mm, err := readResponse(args[1])
		if err != nil {
			return err
		}

		merged := merge.Merge(*text, *mm)
		return writeResponse(cmd.OutOrStdout(), &merged)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func readResponse(path string) (*domain.ResponseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	var res domain.ResponseRecord
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse response %s: %w", path, err)
	}
	return &res, nil
}

func writeResponse(w io.Writer, res *domain.ResponseRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
