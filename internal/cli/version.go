// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			data := VersionData{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return NewJSONResponse("version", data).Write(out)
			}
			writeLine(out, "%s %s", TitleStyle.Render("zabbixai"), ValueStyle.Render(data.Version))
			writeLine(out, "%s%s", RenderLabel("Commit"), data.GitCommit)
			writeLine(out, "%s%s", RenderLabel("Built"), data.BuildDate)
			writeLine(out, "%s%s", RenderLabel("Go"), data.GoVersion)
			writeLine(out, "%s%s", RenderLabel("Platform"), data.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}
