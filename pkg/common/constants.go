package common

// Project structure constants
const (
	// ContractsDir is the subdirectory name for Solidity sources
	ContractsDir = "contracts"

	// GlobalConfigFile is the name of the global YAML used to store global config details (eg, user_id)
	GlobalConfigFile = "config.yaml"

	// Filename for the hardkit project config
	BaseConfig = "config.yaml"

	// Docker open timeout
	DockerOpenTimeoutSeconds = 10

	// Docker open retry interval in milliseconds
	DockerOpenRetryIntervalMilliseconds = 500

	// Default chainId for the built-in local network
	DefaultLocalChainId = 31337

	// Default RPC port for the local node
	DefaultLocalNodePort = 8545
)

// Network profile names shipped with the default config
const (
	// HardhatNetwork is the built-in local test network profile
	HardhatNetwork = "hardhat"

	// LocalhostNetwork is the profile for an externally started local node
	LocalhostNetwork = "localhost"
)

// Mempool ordering policies
const (
	// MempoolOrderFIFO mines pending transactions in strict submission order
	MempoolOrderFIFO = "fifo"

	// MempoolOrderFees mines pending transactions by effective tip, highest first
	MempoolOrderFees = "fees"
)

// SupportedSolcVersions lists the solc releases the toolchain can drive.
// Config loading rejects any solidity.version outside this set.
var SupportedSolcVersions = []string{
	"0.8.9",
	"0.8.10",
	"0.8.11",
	"0.8.12",
	"0.8.13",
	"0.8.14",
	"0.8.15",
	"0.8.16",
	"0.8.17",
	"0.8.18",
	"0.8.19",
	"0.8.20",
	"0.8.21",
	"0.8.22",
	"0.8.23",
	"0.8.24",
	"0.8.25",
	"0.8.26",
}
