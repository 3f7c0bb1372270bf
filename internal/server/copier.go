package server

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// ContainerCopier implements rewrite.Materializer by driving the host's
// container CLI's `cp` subcommand — the same runtime binary the Docker-mode
// spawn path uses, never a container engine API client.
type ContainerCopier struct {
	Runtime   string // docker/podman CLI binary; defaults to DefaultRuntime
	Container string
}

func (c ContainerCopier) runtime() string {
	if c.Runtime != "" {
		return c.Runtime
	}
	return DefaultRuntime
}

// Materialize copies containerPath out of the target container to
// localDest on the host, creating localDest's parent directory first.
func (c ContainerCopier) Materialize(ctx context.Context, containerPath, localDest string) error {
	if err := os.MkdirAll(filepath.Dir(localDest), 0o755); err != nil {
		return errors.Wrapf(err, "creating destination directory for %s", localDest)
	}

	src := c.Container + ":" + containerPath
	cmd := exec.CommandContext(ctx, c.runtime(), "cp", src, localDest)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s cp %s %s: %s", c.runtime(), src, localDest, string(out))
	}
	return nil
}
