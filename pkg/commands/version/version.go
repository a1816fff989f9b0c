package version

import (
	"fmt"
	"github.com/hardkit-labs/hardkit-cli/internal/version"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	"github.com/urfave/cli/v2"
)

// VersionCommand defines the "version" command
var VersionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print the version of hardkit",
	Flags: append([]cli.Flag{}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		return VersionRun(cCtx)
	},
}

func VersionRun(cCtx *cli.Context) error {
	v := version.GetVersion()
	commit := version.GetCommit()

	fmt.Printf("Version: %s\nCommit: %s\n", v, commit)

	return nil
}
