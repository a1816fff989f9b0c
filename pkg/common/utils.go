package common

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/logger"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/progress"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
)

// loggerContextKey is used to store the logger in the context
type loggerContextKey struct{}

// progressTrackerContextKey is used to store the progress tracker in the context
type progressTrackerContextKey struct{}

// RexExp to match semver strings
var semverRegex = regexp.MustCompile(`^v?\d+\.\d+\.\d+$`)

// IsVerboseEnabled checks if the CLI --verbose flag is set
func IsVerboseEnabled(cCtx *cli.Context) bool {
	return cCtx.Bool("verbose")
}

// GetLoggerFromCLIContext creates a logger based on the CLI context
// It checks the verbose flag and returns the appropriate logger
func GetLoggerFromCLIContext(cCtx *cli.Context) (iface.Logger, iface.ProgressTracker) {
	verbose := cCtx.Bool("verbose")
	return GetLogger(verbose)
}

// Get logger for the env we're in
func GetLogger(verbose bool) (iface.Logger, iface.ProgressTracker) {

	var log iface.Logger
	var tracker iface.ProgressTracker

	if progress.IsTTY() {
		log = logger.NewLogger(verbose)
		tracker = progress.NewTTYProgressTracker(10, os.Stdout)
	} else {
		log = logger.NewZapLogger(verbose)
		tracker = progress.NewLogProgressTracker(10, log)
	}

	return log, tracker
}

// isCI checks if the code is running in a CI environment like GitHub Actions.
func isCI() bool {
	return os.Getenv("CI") == "true"
}

// WithLogger stores the logger in the context
func WithLogger(ctx context.Context, logger iface.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// WithProgressTracker stores the progress tracker in the context
func WithProgressTracker(ctx context.Context, tracker iface.ProgressTracker) context.Context {
	return context.WithValue(ctx, progressTrackerContextKey{}, tracker)
}

// LoggerFromContext retrieves the logger from the context
// If no logger is found, it returns a non-verbose logger as fallback
func LoggerFromContext(ctx context.Context) iface.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(iface.Logger); ok {
		return logger
	}
	// Fallback to non-verbose logger if not found in context
	log, _ := GetLogger(false)
	return log
}

// ProgressTrackerFromContext retrieves the progress tracker from the context
// If no tracker is found, it returns a non-verbose tracker as fallback
func ProgressTrackerFromContext(ctx context.Context) iface.ProgressTracker {
	if tracker, ok := ctx.Value(progressTrackerContextKey{}).(iface.ProgressTracker); ok {
		return tracker
	}
	// Fallback to non-verbose tracker if not found in context
	_, tracker := GetLogger(false)
	return tracker
}

// ParseETHAmount parses ETH amount strings like "5ETH", "10.5ETH", "1000000000000000000" (wei)
// Returns the amount in wei as *big.Int
func ParseETHAmount(amountStr string) (*big.Int, error) {
	if amountStr == "" {
		return nil, fmt.Errorf("amount string is empty")
	}

	// Remove any whitespace
	amountStr = strings.TrimSpace(amountStr)

	// Check if it ends with "ETH"
	if strings.HasSuffix(strings.ToUpper(amountStr), "ETH") {
		// Remove the "ETH" suffix (case insensitive)
		ethIndex := strings.LastIndex(strings.ToUpper(amountStr), "ETH")
		numericPart := strings.TrimSpace(amountStr[:ethIndex])

		// Parse the numeric part as float64 to handle decimals like "1.5ETH"
		ethAmount, err := strconv.ParseFloat(numericPart, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ETH amount '%s': %w", numericPart, err)
		}

		// Convert ETH to wei (multiply by 10^18)
		// Use big.Float to handle the large numbers properly
		ethBig := big.NewFloat(ethAmount)
		weiPerEth := big.NewFloat(1e18)
		weiBig := new(big.Float).Mul(ethBig, weiPerEth)

		// Convert to big.Int
		weiInt, _ := weiBig.Int(nil)
		return weiInt, nil
	}

	// If no "ETH" suffix, assume it's already in wei
	weiAmount := new(big.Int)
	if _, ok := weiAmount.SetString(amountStr, 10); !ok {
		return nil, fmt.Errorf("invalid wei amount '%s'", amountStr)
	}

	return weiAmount, nil
}

// MineBlocks mines n blocks on a local dev node via evm_mine
func MineBlocks(client *rpc.Client, n int) error {
	if n <= 0 {
		return fmt.Errorf("block count must be positive, got %d", n)
	}
	for i := 0; i < n; i++ {
		var result interface{}
		if err := client.Call(&result, "evm_mine"); err != nil {
			return fmt.Errorf("failed to mine block %d of %d: %w", i+1, n, err)
		}
	}
	return nil
}

// SetAutomine toggles per-transaction automatic mining on a local dev node
func SetAutomine(client *rpc.Client, enabled bool) error {
	var result interface{}
	if err := client.Call(&result, "evm_setAutomine", enabled); err != nil {
		return fmt.Errorf("failed to set automine to %t: %w", enabled, err)
	}
	return nil
}

// SetIntervalMining sets the periodic mining interval on a local dev node.
// A zero interval disables periodic mining.
func SetIntervalMining(client *rpc.Client, interval time.Duration) error {
	var result interface{}
	seconds := int(interval / time.Second)
	if err := client.Call(&result, "evm_setIntervalMining", seconds); err != nil {
		return fmt.Errorf("failed to set mining interval to %ds: %w", seconds, err)
	}
	return nil
}

// SetBalance overrides an account balance on a local dev node
func SetBalance(client *rpc.Client, address common.Address, amount *big.Int) error {
	var result interface{}
	if err := client.Call(&result, "anvil_setBalance", address.Hex(), hexutil.EncodeBig(amount)); err != nil {
		return fmt.Errorf("failed to set balance for %s: %w", address.Hex(), err)
	}
	return nil
}

// IsSemver checks if a version string is valid
func IsSemver(s string) bool {
	return semverRegex.MatchString(s)
}

// ParseVersion converts version string like "0.0.5" to comparable integers
func ParseVersion(v string) (major, minor, patch int, err error) {
	parts := strings.Split(strings.TrimPrefix(v, "v"), ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid version format: %s", v)
	}

	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	patch, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid patch version: %s", parts[2])
	}

	return major, minor, patch, nil
}

// CompareVersions returns true if v1 > v2
func CompareVersions(v1, v2 string) (bool, error) {
	major1, minor1, patch1, err := ParseVersion(v1)
	if err != nil {
		return false, fmt.Errorf("parse version %s: %w", v1, err)
	}

	major2, minor2, patch2, err := ParseVersion(v2)
	if err != nil {
		return false, fmt.Errorf("parse version %s: %w", v2, err)
	}

	if major1 > major2 {
		return true, nil
	}
	if major1 < major2 {
		return false, nil
	}

	if minor1 > minor2 {
		return true, nil
	}
	if minor1 < minor2 {
		return false, nil
	}

	return patch1 > patch2, nil
}
