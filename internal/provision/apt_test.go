package provision

import (
	"context"
	"slices"
	"testing"
)

func TestNewAptRequiresAptGet(t *testing.T) {
	if _, err := NewApt(newFakeRunner("dpkg-query")); err == nil {
		t.Error("NewApt should fail when apt-get is missing")
	}
}

func TestAptUpdateArgs(t *testing.T) {
	r := newFakeRunner("apt-get", "dpkg-query")
	apt, err := NewApt(r)
	if err != nil {
		t.Fatalf("NewApt() error: %v", err)
	}
	apt.SetSudo(false)

	if err := apt.Update(context.Background()); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if got := r.ran(); len(got) != 1 || got[0] != "apt-get update" {
		t.Errorf("ran %v, want [apt-get update]", got)
	}
}

func TestAptInstallPreservesOrder(t *testing.T) {
	r := newFakeRunner("apt-get")
	apt, _ := NewApt(r)
	apt.SetSudo(false)

	pkgs := []string{"tesseract-ocr", "imagemagick", "poppler-utils"}
	if err := apt.Install(context.Background(), pkgs, false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	want := Command{
		Name: "apt-get",
		Args: []string{"install", "-y", "tesseract-ocr", "imagemagick", "poppler-utils"},
	}
	got := r.commands[0]
	if got.Name != want.Name || !slices.Equal(got.Args, want.Args) {
		t.Errorf("command = %v, want %v", got, want)
	}
	if !slices.Contains(got.Env, "DEBIAN_FRONTEND=noninteractive") {
		t.Error("install should run with DEBIAN_FRONTEND=noninteractive")
	}
}

func TestAptInstallReinstallFlag(t *testing.T) {
	r := newFakeRunner("apt-get")
	apt, _ := NewApt(r)
	apt.SetSudo(false)

	if err := apt.Install(context.Background(), []string{"imagemagick"}, true); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if !slices.Contains(r.commands[0].Args, "--reinstall") {
		t.Errorf("args = %v, want --reinstall", r.commands[0].Args)
	}
}

func TestAptInstallEmptyListNoop(t *testing.T) {
	r := newFakeRunner("apt-get")
	apt, _ := NewApt(r)
	apt.SetSudo(false)

	if err := apt.Install(context.Background(), nil, false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if len(r.commands) != 0 {
		t.Errorf("empty install should run nothing, ran %v", r.ran())
	}
}

func TestAptSudoPrefix(t *testing.T) {
	r := newFakeRunner("apt-get")
	apt, _ := NewApt(r)
	apt.SetSudo(true)

	_ = apt.Update(context.Background())
	got := r.commands[0]
	if got.Name != "sudo" || got.Args[0] != "apt-get" {
		t.Errorf("unprivileged update should go through sudo, got %v", got)
	}
}

func TestAptInstalled(t *testing.T) {
	r := newFakeRunner("apt-get", "dpkg-query")
	r.outputs["dpkg-query -W -f=${Status} tesseract-ocr"] = "install ok installed"
	apt, _ := NewApt(r)

	if !apt.Installed(context.Background(), "tesseract-ocr") {
		t.Error("Installed() should report true for installed package")
	}
	if apt.Installed(context.Background(), "not-a-package") {
		t.Error("Installed() should report false when dpkg-query fails")
	}
}
