package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"course-agent/catalog"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "list the tutorial tracks courses can be filed under",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range catalog.Tracks {
				fmt.Printf("%-12s %s\n", t.Slug, strings.Join(t.Topics, ", "))
			}
			return nil
		},
	}
}
