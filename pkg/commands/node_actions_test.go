package commands

import (
	"flag"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func nodeStartContext(t *testing.T, argv ...string) *cli.Context {
	t.Helper()
	fs := flag.NewFlagSet("test", 0)
	fs.String("fork", "", "")
	fs.Uint64("fork-block", 0, "")
	require.NoError(t, fs.Parse(argv))
	return cli.NewContext(&cli.App{}, fs, nil)
}

func TestBuildAnvilArgsNoMiningProfile(t *testing.T) {
	profile := common.NetworkProfile{
		ChainID: 31337,
		Mining: common.MiningConfig{
			Automine: false,
			Interval: 0,
			Mempool:  common.MempoolConfig{Order: common.MempoolOrderFIFO},
		},
	}

	args, err := buildAnvilArgs(profile, nodeStartContext(t))
	require.NoError(t, err)

	assert.Contains(t, args, "--chain-id 31337")
	assert.Contains(t, args, "--no-mining")
	assert.Contains(t, args, "--order fifo")
	assert.NotContains(t, args, "--block-time")
	assert.NotContains(t, args, "--fork-url")
}

func TestBuildAnvilArgsIntervalAndFees(t *testing.T) {
	profile := common.NetworkProfile{
		ChainID: 1337,
		Mining: common.MiningConfig{
			Automine: true,
			Interval: 5,
			Mempool:  common.MempoolConfig{Order: common.MempoolOrderFees},
		},
	}

	args, err := buildAnvilArgs(profile, nodeStartContext(t))
	require.NoError(t, err)

	assert.Contains(t, args, "--block-time 5")
	assert.Contains(t, args, "--order fees")
	assert.NotContains(t, args, "--no-mining")
}

func TestBuildAnvilArgsFork(t *testing.T) {
	profile := common.NetworkProfile{
		ChainID: 31337,
		Mining: common.MiningConfig{
			Automine: true,
			Mempool:  common.MempoolConfig{Order: common.MempoolOrderFIFO},
		},
	}

	args, err := buildAnvilArgs(profile, nodeStartContext(t, "--fork", "https://rpc.example.org", "--fork-block", "123456"))
	require.NoError(t, err)

	assert.Contains(t, args, "--fork-url https://rpc.example.org")
	assert.Contains(t, args, "--fork-block-number 123456")
}

func TestExtractHostPort(t *testing.T) {
	assert.Equal(t, "8545", extractHostPort("0.0.0.0:8545->8545/tcp"))
	assert.Equal(t, "9999", extractHostPort(":::9999->8545/tcp"))
	assert.Equal(t, "", extractHostPort(""))
}
