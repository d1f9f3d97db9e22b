package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/configurator/pkg/cli/internal/output"
)

// VersionOutput is the payload of "configurator version --json".
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// String renders the two-line human form.
func (v VersionOutput) String() string {
	name := v.Version
	if name != "dev" && name != "(devel)" && !strings.HasPrefix(name, "v") {
		name = "v" + name
	}
	return fmt.Sprintf("configurator %s (%s, %s)\n%s %s/%s\n", name, v.Commit, v.Date, v.Go, v.OS, v.Arch)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show configurator version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildVersion(Version, Commit, BuildDate, readBuildInfo())
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), info)
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), info)
		return err
	},
}

func readBuildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// buildVersion prefers the linker-set values and falls back to the module
// and VCS stamps Go embeds in the binary.
func buildVersion(version, commit, date string, info *debug.BuildInfo) VersionOutput {
	out := VersionOutput{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if info == nil {
		return out
	}

	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	stamps := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		stamps[s.Key] = s.Value
	}
	if rev := stamps["vcs.revision"]; out.Commit == "none" && rev != "" {
		out.Commit = rev
		if stamps["vcs.modified"] == "true" {
			out.Commit += "-dirty"
		}
	}
	if t := stamps["vcs.time"]; out.Date == "unknown" && t != "" {
		out.Date = t
	}
	return out
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
