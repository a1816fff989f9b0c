package networks

import (
	_ "embed"

	networkMigrations "github.com/hardkit-labs/hardkit-cli/config/networks/migrations"
	"github.com/hardkit-labs/hardkit-cli/pkg/migration"
)

// Set the latest version
const LatestVersion = "0.0.2"

// --
// Versioned network profiles
// --

//go:embed hardhat.v0.0.1.yaml
var hardhat_v0_0_1 []byte

//go:embed hardhat.v0.0.2.yaml
var hardhat_v0_0_2 []byte

//go:embed localhost.v0.0.2.yaml
var localhost_v0_0_2 []byte

// Map of version -> profile name -> default yaml content
var NetworkYamls = map[string]map[string][]byte{
	"0.0.1": {
		"hardhat": hardhat_v0_0_1,
	},
	"0.0.2": {
		"hardhat":   hardhat_v0_0_2,
		"localhost": localhost_v0_0_2,
	},
}

// Map of sequential migrations. The hardhat defaults anchor the patch
// baseline; user-created profiles migrate against the same rules.
var MigrationChain = []migration.MigrationStep{
	{
		From:    "0.0.1",
		To:      "0.0.2",
		Apply:   networkMigrations.Migration_0_0_1_to_0_0_2,
		OldYAML: hardhat_v0_0_1,
		NewYAML: hardhat_v0_0_2,
	},
}
