// Command lspdock is a transparent LSP proxy that sits between an editor
// and a language server running locally or inside a container, rewriting
// file paths between the two and keeping the server's lifecycle tied to
// the editor's.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"github.com/richardhapb/lspdock/internal/config"
	"github.com/richardhapb/lspdock/internal/lspdockerr"
	"github.com/richardhapb/lspdock/internal/logging"
	"github.com/richardhapb/lspdock/internal/server"
	"github.com/richardhapb/lspdock/internal/session"
)

const proxyName = "lspdock"

// version is overwritten at build time via -ldflags.
var version = "dev"

var ourFlags = map[string]bool{
	"-c": true, "--container": true,
	"-d": true, "--docker-path": true,
	"-L": true, "--local-path": true,
	"-e": true, "--exec": true,
	"--pids": true,
	"-p":      true, "--pattern": true,
	"-l": true, "--log-level": true,
	"--runtime": true,
	"-h":        true, "--help": true,
	"-V": true, "--version": true,
}

func main() {
	os.Exit(run())
}

func run() int {
	ourArgs, serverArgs := splitArgs(os.Args[1:])

	var containerFlag, dockerPathFlag, localPathFlag, execFlag, pidsFlag, patternFlag, logLevelFlag, runtimeFlag string

	flaggy.SetName(proxyName)
	flaggy.SetDescription("Transparent proxy between an editor and a containerized or local language server")
	flaggy.SetVersion(version)

	flaggy.String(&containerFlag, "c", "container", "Target container name (enables Docker mode)")
	flaggy.String(&dockerPathFlag, "d", "docker-path", "Workspace root path inside the container")
	flaggy.String(&localPathFlag, "L", "local-path", "Workspace root path on the host (defaults to the current directory)")
	flaggy.String(&execFlag, "e", "exec", "Server executable name or path")
	flaggy.String(&pidsFlag, "", "pids", "Comma-separated executables requiring PID patching")
	flaggy.String(&patternFlag, "p", "pattern", "Host path prefix that enables Docker mode")
	flaggy.String(&logLevelFlag, "l", "log-level", "trace|debug|info|warning|error")
	flaggy.String(&runtimeFlag, "", "runtime", "Container CLI binary to drive (docker|podman); defaults to docker")

	flaggy.ParseArgs(ourArgs)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: getting working directory: %v\n", proxyName, err)
		return 1
	}

	cli := config.CLIOverrides{
		Container:  config.Expand(cwd, containerFlag),
		DockerPath: config.Expand(cwd, dockerPathFlag),
		LocalPath:  config.Expand(cwd, localPathFlag),
		Executable: config.Expand(cwd, execFlag),
		Pattern:    config.Expand(cwd, patternFlag),
		LogLevel:   logLevelFlag,
		Runtime:    runtimeFlag,
		ExtraArgs:  serverArgs,
	}
	if pidsFlag != "" {
		cli.PatchPID = strings.Split(pidsFlag, ",")
	}

	fileCfg, err := config.Load(proxyName, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", proxyName, err)
		return lspdockerr.ExitCode(lspdockerr.Config)
	}

	parentPID := os.Getppid()

	sessCfg, err := config.Resolve(cli, fileCfg, os.Args[0], proxyName, parentPID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", proxyName, err)
		return exitCodeFor(err)
	}

	logSink, err := logging.NewFileSink(sessCfg.Server.Executable, sessCfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: opening log file: %v\n", proxyName, err)
		return 1
	}

	handle, err := server.Start(sessCfg.Server)
	if err != nil {
		logSink.Event("error", "failed to start server", map[string]any{"error": err.Error()})
		_ = logSink.Close()
		fmt.Fprintf(os.Stderr, "%s: %v\n", proxyName, err)
		return exitCodeFor(err)
	}

	sess := session.New(sessCfg, handle, os.Stdin, os.Stdout, logSink)

	if err := sess.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: session ended: %v\n", proxyName, err)
		return 1
	}

	return 0
}

// splitArgs separates our own flags from the trailing LSP server args.
// Anything after a literal "--" is forwarded verbatim. Without "--", the
// first positional argument that looks like a flag but isn't one of ours
// (e.g. "--stdio") is treated as the start of the server's own argument
// list instead of a parse error.
func splitArgs(args []string) (ours, serverArgs []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if strings.HasPrefix(a, "-") && !ourFlags[a] && !flagWithEquals(a) {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

func flagWithEquals(a string) bool {
	name, _, found := strings.Cut(a, "=")
	return found && ourFlags[name]
}

func exitCodeFor(err error) int {
	for _, k := range []lspdockerr.Kind{lspdockerr.Config, lspdockerr.Resolution, lspdockerr.Spawn} {
		if lspdockerr.Is(err, k) {
			return lspdockerr.ExitCode(k)
		}
	}
	return 1
}
