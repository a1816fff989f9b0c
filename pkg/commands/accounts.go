package commands

import (
	"fmt"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	"github.com/urfave/cli/v2"
)

// AccountsCommand prints the addresses of the selected network's
// signers, one per line, in the node's enumeration order.
var AccountsCommand = &cli.Command{
	Name:  "accounts",
	Usage: "Print a list of accounts",
	Flags: common.GlobalFlags,
	Action: func(cCtx *cli.Context) error {
		env, cleanup, err := resolveEnvironment(cCtx)
		if err != nil {
			return err
		}
		defer cleanup()

		signers, err := env.Signers(cCtx.Context)
		if err != nil {
			return err
		}
		for _, signer := range signers {
			fmt.Println(signer.Address.Hex())
		}
		return nil
	},
}
