package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/pkg/common/logger"
	"github.com/hardkit-labs/hardkit-cli/pkg/testutils"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestKeystoreCreateAndRead(t *testing.T) {
	tmpDir := t.TempDir()

	// First dev account of the standard test mnemonic.
	key := "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	password := "testpass"
	path := filepath.Join(tmpDir, "deployer.keystore.json")

	// Create keystore with no-op logger
	createCmdWithLogger, _ := testutils.WithTestConfigAndNoopLoggerAndAccess(CreateCommand)
	app := &cli.App{
		Name: "hardkit",
		Commands: []*cli.Command{
			{
				Name:        "keystore",
				Subcommands: []*cli.Command{createCmdWithLogger},
				Before: func(cCtx *cli.Context) error {
					// Execute the subcommand's Before hook to set up logger context
					if createCmdWithLogger.Before != nil {
						return createCmdWithLogger.Before(cCtx)
					}
					return nil
				},
			},
		},
	}
	err := app.Run([]string{
		"hardkit", "keystore", "create",
		"--key", key,
		"--path", path,
		"--password", password,
	})
	require.NoError(t, err)

	// Verify keystore file was created
	_, err = os.Stat(path)
	require.NoError(t, err, "expected keystore file to be created")

	// Read keystore with no-op logger
	readCmdWithLogger, readLogger := testutils.WithTestConfigAndNoopLoggerAndAccess(ReadCommand)
	readApp := &cli.App{
		Name: "hardkit",
		Commands: []*cli.Command{
			{
				Name:        "keystore",
				Subcommands: []*cli.Command{readCmdWithLogger},
				Before: func(cCtx *cli.Context) error {
					if readCmdWithLogger.Before != nil {
						return readCmdWithLogger.Before(cCtx)
					}
					return nil
				},
			},
		},
	}
	err = readApp.Run([]string{
		"hardkit", "keystore", "read",
		"--path", path,
		"--password", password,
	})
	require.NoError(t, err)

	// The decrypted address must match the known dev account.
	require.True(t, readLogger.Contains("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
}

func TestCreateKeystoreRejectsNonJSONPath(t *testing.T) {
	err := CreateKeystore(logger.NewNoopLogger(), "", filepath.Join(t.TempDir(), "key.txt"), "pw")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must include full file name ending in .json")
}

func TestCreateKeystoreRejectsBadKey(t *testing.T) {
	err := CreateKeystore(logger.NewNoopLogger(), "not-hex", filepath.Join(t.TempDir(), "key.json"), "pw")
	require.Error(t, err)
}

func TestCreateKeystoreGeneratesFreshKeyWhenOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")
	err := CreateKeystore(logger.NewNoopLogger(), "", path, "pw")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}
