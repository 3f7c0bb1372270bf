package config

import (
	"os"

	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
	"github.com/richardhapb/lspdock/internal/rewrite"
	"github.com/richardhapb/lspdock/internal/server"
	"github.com/richardhapb/lspdock/internal/session"
)

// CLIOverrides holds the subset of flags that participate in the
// executable-resolution merge and the rest of the session configuration;
// zero values mean "not supplied on the command line".
type CLIOverrides struct {
	Container  string
	DockerPath string
	LocalPath  string
	Executable string
	PatchPID   []string
	Pattern    string
	LogLevel   string
	Runtime    string
	ExtraArgs  []string
}

// Resolve merges CLI flag values, the decoded config file (which may be
// nil if neither candidate path existed), and the executable resolution
// order from spec §4.3 into the immutable session.Config the core runs
// from. argv0 and proxyName feed ResolveExecutable's argv0-symlink trick;
// parentPID is the editor's process id, captured by the caller before
// Resolve runs.
func Resolve(cli CLIOverrides, file *FileConfig, argv0, proxyName string, parentPID int) (session.Config, error) {
	if file == nil {
		file = &FileConfig{}
	}

	executable, err := server.ResolveExecutable(cli.Executable, argv0, proxyName, file.Executable)
	if err != nil {
		return session.Config{}, err
	}

	container := firstNonEmpty(cli.Container, file.Container)
	containerRoot := firstNonEmpty(cli.DockerPath, file.DockerInternalPath)
	pattern := firstNonEmpty(cli.Pattern, file.Pattern)
	logLevel := firstNonEmpty(cli.LogLevel, file.LogLevel, "info")

	cwd, err := os.Getwd()
	if err != nil {
		return session.Config{}, lspdockerr.New(lspdockerr.Config, errors.Wrap(err, "getting working directory"))
	}

	localRoot := cli.LocalPath
	if localRoot == "" {
		localRoot = file.LocalPath
	}
	if localRoot == "" {
		localRoot = cwd
	}

	patchNames := file.PatchPID
	if len(cli.PatchPID) > 0 {
		patchNames = cli.PatchPID
	}

	stagingDir, err := os.MkdirTemp("", proxyName+"-staging-")
	if err != nil {
		return session.Config{}, lspdockerr.New(lspdockerr.Config, errors.Wrap(err, "creating staging directory"))
	}

	serverCfg := server.Config{
		Container:  container,
		Pattern:    pattern,
		Executable: executable,
		ExtraArgs:  cli.ExtraArgs,
		Runtime:    firstNonEmpty(cli.Runtime, file.Runtime, server.DefaultRuntime),
	}

	return session.Config{
		Mapping: rewrite.PathMapping{
			LocalRoot:     localRoot,
			ContainerRoot: containerRoot,
		},
		Server:     serverCfg,
		PatchPID:   rewrite.NewPatchPIDSet(patchNames),
		StagingDir: stagingDir,
		LogLevel:   logLevel,
		ParentPID:  parentPID,
		DockerMode: serverCfg.DockerModeSelected(cwd),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
