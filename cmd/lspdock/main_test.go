package main

import "testing"

func TestSplitArgsDoubleDashSeparator(t *testing.T) {
	ours, srv := splitArgs([]string{"-c", "dev", "--", "--stdio", "-v"})
	if len(ours) != 2 || ours[0] != "-c" || ours[1] != "dev" {
		t.Fatalf("unexpected ours: %v", ours)
	}
	if len(srv) != 2 || srv[0] != "--stdio" || srv[1] != "-v" {
		t.Fatalf("unexpected server args: %v", srv)
	}
}

func TestSplitArgsSniffsUnknownFlagAsServerArg(t *testing.T) {
	ours, srv := splitArgs([]string{"-c", "dev", "--stdio"})
	if len(ours) != 2 {
		t.Fatalf("unexpected ours: %v", ours)
	}
	if len(srv) != 1 || srv[0] != "--stdio" {
		t.Fatalf("unexpected server args: %v", srv)
	}
}

func TestSplitArgsNoServerArgs(t *testing.T) {
	ours, srv := splitArgs([]string{"-c", "dev", "-l", "debug"})
	if len(ours) != 4 {
		t.Fatalf("unexpected ours: %v", ours)
	}
	if len(srv) != 0 {
		t.Fatalf("expected no server args, got %v", srv)
	}
}

func TestSplitArgsHandlesFlagWithEquals(t *testing.T) {
	ours, srv := splitArgs([]string{"--container=dev", "--stdio"})
	if len(ours) != 1 || ours[0] != "--container=dev" {
		t.Fatalf("unexpected ours: %v", ours)
	}
	if len(srv) != 1 || srv[0] != "--stdio" {
		t.Fatalf("unexpected server args: %v", srv)
	}
}
