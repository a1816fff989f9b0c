package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/logger"
	"github.com/hardkit-labs/hardkit-cli/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func setupCLIContext(cmd *cli.Command, args []string, flags map[string][]string) *cli.Context {
	fs := flag.NewFlagSet("test", 0)
	for _, f := range cmd.Flags {
		if err := f.Apply(fs); err != nil {
			panic(err)
		}
	}
	var argv []string
	argv = append(argv, args...)
	for k, vals := range flags {
		for _, v := range vals {
			argv = append(argv, "--"+k, v)
		}
	}
	if err := fs.Parse(argv); err != nil {
		panic(err)
	}

	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	app := &cli.App{
		Before: func(cCtx *cli.Context) error {
			ctx := common.WithLogger(cCtx.Context, noopLogger)
			ctx = common.WithProgressTracker(ctx, noopProgressTracker)
			cCtx.Context = ctx
			return nil
		},
	}

	ctx := cli.NewContext(app, fs, nil)
	if app.Before != nil {
		if err := app.Before(ctx); err != nil {
			panic(err)
		}
	}
	return ctx
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}

func TestConfigCommand_SetValue(t *testing.T) {
	projectDir, err := testutils.CreateTempProject(t)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(projectDir) })
	chdir(t, projectDir)

	ctx := setupCLIContext(Command, nil, map[string][]string{
		"set": {"solidity.optimizer.runs=500"},
	})
	require.NoError(t, Command.Action(ctx))

	cfg, err := common.LoadBaseConfigYaml()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Config.Solidity.Optimizer.Runs)
}

func TestConfigCommand_SetRejectsBadSyntax(t *testing.T) {
	projectDir, err := testutils.CreateTempProject(t)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(projectDir) })
	chdir(t, projectDir)

	ctx := setupCLIContext(Command, nil, map[string][]string{
		"set": {"solidity.version"},
	})
	err = Command.Action(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --set syntax")
}

func TestValidateConfig_AcceptsDefaultConfig(t *testing.T) {
	projectDir, err := testutils.CreateTempProject(t)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(projectDir) })

	cfgPath := filepath.Join(projectDir, "config", common.BaseConfig)
	_, err = ValidateConfig(cfgPath, Config)
	require.NoError(t, err)
}

func TestValidateConfig_RejectsUnsupportedCompiler(t *testing.T) {
	projectDir, err := testutils.CreateTempProject(t)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(projectDir) })
	chdir(t, projectDir)

	cfgPath := filepath.Join("config", common.BaseConfig)
	ctx := setupCLIContext(Command, nil, map[string][]string{
		"set": {"solidity.version=0.4.11"},
	})
	require.NoError(t, Command.Action(ctx))

	_, err = ValidateConfig(cfgPath, Config)
	require.Error(t, err)
}

func TestValidateConfig_AcceptsNetworkProfiles(t *testing.T) {
	projectDir, err := testutils.CreateTempProject(t)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(projectDir) })

	for _, name := range []string{"hardhat", "localhost"} {
		profilePath := filepath.Join(projectDir, "config", "networks", name+".yaml")
		_, err = ValidateConfig(profilePath, Network)
		require.NoError(t, err, "profile %s should validate", name)
	}
}

func TestValidateConfigChanges_RejectsVersionChange(t *testing.T) {
	original := []byte("version: 0.0.2\nconfig:\n  project:\n    name: demo\n")
	updated := []byte("version: 0.0.3\nconfig:\n  project:\n    name: demo\n")

	_, err := validateConfigChanges(original, updated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version must not be altered")
}

func TestDiffValues(t *testing.T) {
	original := map[string]interface{}{"solidity": map[string]interface{}{"version": "0.8.17"}}
	updated := map[string]interface{}{"solidity": map[string]interface{}{"version": "0.8.19"}}

	changes := diffValues("", original, updated)
	require.Len(t, changes, 1)
	assert.Equal(t, "solidity.version", changes[0].Path)
	assert.Equal(t, "0.8.17", changes[0].OldValue)
	assert.Equal(t, "0.8.19", changes[0].NewValue)
}
