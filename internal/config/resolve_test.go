package config

import "testing"

func TestResolveMergesCLIOverFile(t *testing.T) {
	file := &FileConfig{
		Container:          "file-container",
		DockerInternalPath: "/workspace",
		Executable:         "file-exec",
		LogLevel:           "debug",
	}
	cli := CLIOverrides{
		Container: "cli-container",
		LocalPath: "/home/u/proj",
	}

	cfg, err := Resolve(cli, file, "/usr/local/bin/lspdock", "lspdock", 100)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cfg.Server.Container != "cli-container" {
		t.Fatalf("got container %q want cli-container", cfg.Server.Container)
	}
	if cfg.Server.Executable != "file-exec" {
		t.Fatalf("got executable %q want file-exec (configured, lowest-priority source, but only source here)", cfg.Server.Executable)
	}
	if cfg.Mapping.ContainerRoot != "/workspace" {
		t.Fatalf("got container root %q want /workspace", cfg.Mapping.ContainerRoot)
	}
	if cfg.Mapping.LocalRoot != "/home/u/proj" {
		t.Fatalf("got local root %q want /home/u/proj", cfg.Mapping.LocalRoot)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("got log level %q want debug", cfg.LogLevel)
	}
	if cfg.ParentPID != 100 {
		t.Fatalf("got parent pid %d want 100", cfg.ParentPID)
	}
}

func TestResolveArgv0SymlinkBeatsConfigFile(t *testing.T) {
	file := &FileConfig{Executable: "file-exec"}
	cfg, err := Resolve(CLIOverrides{}, file, "/usr/local/bin/pyright-langserver", "lspdock", 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Server.Executable != "pyright-langserver" {
		t.Fatalf("got %q want pyright-langserver", cfg.Server.Executable)
	}
}

func TestResolveFailsWhenNoExecutableSource(t *testing.T) {
	_, err := Resolve(CLIOverrides{}, &FileConfig{}, "/usr/local/bin/lspdock", "lspdock", 0)
	if err == nil {
		t.Fatal("expected a ResolutionError when nothing names an executable")
	}
}

func TestResolveDockerModeReflectsPatternMatch(t *testing.T) {
	cfg, err := Resolve(CLIOverrides{
		Container:  "my-container",
		DockerPath: "/workspace",
		Pattern:    "/nonexistent-pattern-root",
		Executable: "gopls",
	}, &FileConfig{}, "/usr/local/bin/lspdock", "lspdock", 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.DockerMode {
		t.Fatal("got DockerMode true, want false: container configured but pattern can't match this process's cwd")
	}
}

func TestResolveDockerModeTrueWithNoPattern(t *testing.T) {
	cfg, err := Resolve(CLIOverrides{
		Container:  "my-container",
		DockerPath: "/workspace",
		Executable: "gopls",
	}, &FileConfig{}, "/usr/local/bin/lspdock", "lspdock", 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !cfg.DockerMode {
		t.Fatal("got DockerMode false, want true: container configured with no pattern always selects Docker mode")
	}
}

func TestResolveDefaultsLogLevelToInfo(t *testing.T) {
	cfg, err := Resolve(CLIOverrides{Executable: "gopls"}, &FileConfig{}, "/usr/local/bin/lspdock", "lspdock", 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("got log level %q want info", cfg.LogLevel)
	}
}
