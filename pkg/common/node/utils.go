package node

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/urfave/cli/v2"
)

// ANSI colors for list output.
const (
	Reset  = "\033[0m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

// ContainerPrefix is the name prefix shared by all node containers the
// CLI starts.
const ContainerPrefix = "hardkit-node"

// ContainerName derives the container name for a project.
func ContainerName(projectName string) string {
	return fmt.Sprintf("%s-%s", ContainerPrefix, projectName)
}

// IsPortAvailable checks if a TCP port is not already bound by another service.
func IsPortAvailable(port int) bool {
	addr := fmt.Sprintf("localhost:%d", port)
	conn, err := net.DialTimeout("tcp", addr, 1*time.Second)
	if err != nil {
		// If dialing fails, port is likely available
		return true
	}
	_ = conn.Close()
	return false
}

// StopAndRemoveContainer stops the container and removes it.
func StopAndRemoveContainer(ctx *cli.Context, containerName string) {
	logger := common.LoggerFromContext(ctx.Context)

	if err := exec.CommandContext(ctx.Context, "docker", "stop", containerName).Run(); err != nil {
		logger.Error("⚠️  Failed to stop container %s: %v", containerName, err)
	} else {
		logger.Info("✅ Stopped container %s", containerName)
	}
	if err := exec.CommandContext(ctx.Context, "docker", "rm", containerName).Run(); err != nil {
		logger.Error("⚠️  Failed to remove container %s: %v", containerName, err)
	} else {
		logger.Info("✅ Removed container %s", containerName)
	}
}

// GetDockerPsNodeArgs returns the docker args that list running hardkit
// node containers with their exposed ports.
func GetDockerPsNodeArgs() []string {
	return []string{
		"ps",
		"--filter", "name=" + ContainerPrefix,
		"--format", "{{.Names}}: {{.Ports}}",
	}
}

// GetDockerHost returns the host address containers should use to reach
// the host machine. DOCKERS_HOST overrides the per-platform default.
func GetDockerHost() string {
	if dockersHost := os.Getenv("DOCKERS_HOST"); dockersHost != "" {
		return dockersHost
	}
	if runtime.GOOS == "linux" {
		return "172.17.0.1"
	}
	return "host.docker.internal"
}

// EnsureDockerHost replaces localhost/127.0.0.1 in URLs with the
// appropriate Docker host, so fork URLs keep working when handed to a
// container. Only the actual hostname is replaced, never substrings of
// a larger domain.
func EnsureDockerHost(inputUrl string) string {
	dockerHost := GetDockerHost()

	trimmed := strings.TrimSpace(inputUrl)
	if trimmed == "localhost" || trimmed == "127.0.0.1" {
		return dockerHost
	}

	parsedUrl, err := url.Parse(inputUrl)
	if err != nil {
		return ensureDockerHostRegex(inputUrl, dockerHost)
	}

	hostname := parsedUrl.Hostname()

	// Strings like "localhost:8545" parse as scheme:opaque.
	if hostname == "" {
		if parsedUrl.Scheme == "localhost" || parsedUrl.Scheme == "127.0.0.1" {
			if parsedUrl.Opaque != "" {
				return fmt.Sprintf("%s:%s", dockerHost, parsedUrl.Opaque)
			}
			return dockerHost
		}
		return ensureDockerHostRegex(inputUrl, dockerHost)
	}

	if hostname == "localhost" || hostname == "127.0.0.1" {
		if parsedUrl.Port() != "" {
			parsedUrl.Host = fmt.Sprintf("%s:%s", dockerHost, parsedUrl.Port())
		} else {
			parsedUrl.Host = dockerHost
		}
		return parsedUrl.String()
	}

	return inputUrl
}

// ensureDockerHostRegex provides regex-based fallback for URLs the
// stdlib parser rejects.
func ensureDockerHostRegex(inputUrl string, dockerHost string) string {
	schemeLocalhostPattern := regexp.MustCompile(`(https?|wss?)://localhost(:[0-9]+)?(/\S*)?`)
	schemeIPPattern := regexp.MustCompile(`(https?|wss?)://127\.0\.0\.1(:[0-9]+)?(/\S*)?`)

	result := schemeLocalhostPattern.ReplaceAllStringFunc(inputUrl, func(match string) string {
		return strings.Replace(match, "localhost", dockerHost, 1)
	})
	result = schemeIPPattern.ReplaceAllStringFunc(result, func(match string) string {
		return strings.Replace(match, "127.0.0.1", dockerHost, 1)
	})
	return result
}

// GetRPCURL returns the RPC URL for reaching the node container from
// the host.
func GetRPCURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
