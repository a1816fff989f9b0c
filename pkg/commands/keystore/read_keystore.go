package keystore

import (
	"fmt"
	"os"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli/v2"
)

var ReadCommand = &cli.Command{
	Name:  "read",
	Usage: "Print the address held by a keystore file",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "path",
			Usage:    "Path to the keystore JSON",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "Password to decrypt the keystore file; prompted for when omitted",
		},
		&cli.BoolFlag{
			Name:  "show-private-key",
			Usage: "Also print the decrypted private key",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		path := cCtx.String("path")
		password := cCtx.String("password")
		if !cCtx.IsSet("password") {
			prompted, err := promptPassword("Keystore password: ")
			if err != nil {
				return err
			}
			password = prompted
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load the keystore file from given path %s", path)
		}

		key, err := gethkeystore.DecryptKey(data, password)
		if err != nil {
			return fmt.Errorf("failed to decrypt the keystore file: %w", err)
		}

		logger.Info("✅ Keystore decrypted successfully")
		logger.Info("📍 Address: %s", key.Address.Hex())
		if cCtx.Bool("show-private-key") {
			logger.Info("🔑 Private key: %x", crypto.FromECDSA(key.PrivateKey))
		}
		return nil
	},
}
