package runtime

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// devAccountKeys are the well-known unencrypted test keys the local
// node unlocks on startup. These match the mnemonic
// "test test test test test test test test test test test junk" at
// m/44'/60'/0'/0/0..9, the same accounts anvil and hardhat pre-fund.
// Never use them outside a local test chain.
var devAccountKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
	"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
	"47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a",
	"8b3a350cf5c34c9194ca85829a2df0ec3153be0318b5e2d3348e872092edffba",
	"92db14e403b83dfe3df233f83dfa3a0d7096f21ca9b0d6d6b8d88b2b4ec1564e",
	"4bbbf85ce3377467afe5d46f804f221813b2bb87f24d81f60f1fcdbf7cbf4356",
	"dbda1821b80551c9d65939329250298aa3472ba22feea921c0cf5d620ea67b97",
	"2a871d0798f97d79848a013d4936a73bf4cc922c825d33c1cf7073dff6d409c6",
}

// DevPrivateKeys parses the well-known dev account keys.
func DevPrivateKeys() ([]*ecdsa.PrivateKey, error) {
	keys := make([]*ecdsa.PrivateKey, 0, len(devAccountKeys))
	for i, hexKey := range devAccountKeys {
		key, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dev account key %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// DevSigners derives the signer set for the well-known dev accounts,
// in funding order.
func DevSigners() ([]Signer, error) {
	keys, err := DevPrivateKeys()
	if err != nil {
		return nil, err
	}
	signers := make([]Signer, 0, len(keys))
	for _, key := range keys {
		signers = append(signers, Signer{Address: crypto.PubkeyToAddress(key.PublicKey)})
	}
	return signers, nil
}
