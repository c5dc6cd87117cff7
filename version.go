package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jackfield/project"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "jackfield %s\ncommit: %s\nbuilt: %s\nproject format: %s\n",
				version, commit, date, project.Version)
			return nil
		},
	}
}
