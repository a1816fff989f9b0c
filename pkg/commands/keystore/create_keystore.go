package keystore

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"

	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var CreateCommand = &cli.Command{
	Name:  "create",
	Usage: "Generates an encrypted keystore JSON file for a private key",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "key",
			Usage: "Hex-encoded secp256k1 private key; a fresh key is generated when omitted",
		},
		&cli.StringFlag{
			Name:     "path",
			Usage:    "Full path to save keystore file, including filename (e.g., ./keys/deployer.json)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "Password to encrypt the keystore file; prompted for when omitted",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		privateKey := cCtx.String("key")
		path := cCtx.String("path")

		password := cCtx.String("password")
		if !cCtx.IsSet("password") {
			prompted, err := promptPassword("Keystore password: ")
			if err != nil {
				return err
			}
			password = prompted
		}

		logger.Debug("🔐 Starting keystore creation")
		logger.Debug("• Output Path: %s", path)

		return CreateKeystore(logger, privateKey, path, password)
	},
}

// CreateKeystore encrypts the given (or a freshly generated) private
// key into a web3 secret storage file at path.
func CreateKeystore(logger iface.Logger, privateKey, path, password string) error {
	if filepath.Ext(path) != ".json" {
		return errors.New("invalid path: must include full file name ending in .json")
	}

	key, err := parseOrGenerateKey(privateKey)
	if err != nil {
		return err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("failed to generate keystore id: %w", err)
	}
	keystoreKey := &gethkeystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}

	encrypted, err := gethkeystore.EncryptKey(keystoreKey, password, gethkeystore.StandardScryptN, gethkeystore.StandardScryptP)
	if err != nil {
		return fmt.Errorf("failed to encrypt keystore: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("failed to write keystore: %w", err)
	}

	// Decrypt straight back to verify the file round-trips.
	if _, err := gethkeystore.DecryptKey(encrypted, password); err != nil {
		return fmt.Errorf("keystore verification failed: %w", err)
	}

	logger.Info("✅ Keystore generated successfully")
	logger.Info("📍 Address: %s", keystoreKey.Address.Hex())
	logger.Info("📄 File: %s", path)

	return nil
}

func parseOrGenerateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	if privateKey == "" {
		generated, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate private key: %w", err)
		}
		return generated, nil
	}
	cleanedKey := strings.TrimPrefix(privateKey, "0x")
	parsed, err := crypto.HexToECDSA(cleanedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return parsed, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
