package build

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDirTarRoundTrip(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "cache", "download"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "cache", "download", "mod.zip"), []byte("zip-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := writeDirToTar(tw, src, "."); err != nil {
		t.Fatalf("writeDirToTar failed: %v", err)
	}
	tw.Close()

	dest := t.TempDir()
	if err := extractTar(&buf, dest); err != nil {
		t.Fatalf("extractTar failed: %v", err)
	}

	top, err := os.ReadFile(filepath.Join(dest, "top.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(top) != "top" {
		t.Errorf("top.txt = %q, want %q", top, "top")
	}

	mod, err := os.ReadFile(filepath.Join(dest, "cache", "download", "mod.zip"))
	if err != nil {
		t.Fatal(err)
	}
	if string(mod) != "zip-bytes" {
		t.Errorf("mod.zip = %q, want %q", mod, "zip-bytes")
	}
}

func TestWriteFileToTar(t *testing.T) {
	src := filepath.Join(t.TempDir(), "newsletter")
	if err := os.WriteFile(src, []byte("binary"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := writeFileToTar(tw, src, "newsletter"); err != nil {
		t.Fatalf("writeFileToTar failed: %v", err)
	}
	tw.Close()

	tr := tar.NewReader(&buf)
	header, err := tr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if header.Name != "newsletter" {
		t.Errorf("name = %q, want newsletter", header.Name)
	}
	if header.FileInfo().Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", header.FileInfo().Mode().Perm())
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(tr); err != nil {
		t.Fatal(err)
	}
	if out.String() != "binary" {
		t.Errorf("content = %q, want binary", out.String())
	}
}

func TestExtractTarRejectsEscape(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../outside.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     0,
	}); err != nil {
		t.Fatal(err)
	}
	tw.Close()

	if err := extractTar(&buf, t.TempDir()); err == nil {
		t.Fatal("expected error for entry escaping destination")
	}
}

func TestExtractTarSkipsSymlinks(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "link",
		Typeflag: tar.TypeSymlink,
		Linkname: "/etc/passwd",
		Mode:     0o777,
	}); err != nil {
		t.Fatal(err)
	}
	tw.Close()

	dest := t.TempDir()
	if err := extractTar(&buf, dest); err != nil {
		t.Fatalf("extractTar failed: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(dest, "link")); !os.IsNotExist(err) {
		t.Fatal("symlink should not be materialized")
	}
}
