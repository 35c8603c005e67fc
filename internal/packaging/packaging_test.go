package packaging

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shaiso/Annotata/internal/domain"
)

func TestInitAndLoad(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "my-app"); err != nil {
		t.Fatalf("init: %v", err)
	}

	manifest, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "my-app" || manifest.Version != "1.0.0" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); err != nil {
		t.Fatalf("src dir missing: %v", err)
	}

	// Повторный init поверх существующего манифеста — ошибка.
	if err := Init(dir, "my-app"); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest, got %v", err)
	}
}

func TestInit_BadName(t *testing.T) {
	if err := Init(t.TempDir(), "my app"); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest, got %v", err)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	if _, err := LoadManifest(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestManifest_ValidatesFunctionIO(t *testing.T) {
	dir := t.TempDir()
	manifest := &Manifest{
		Name: "my-app",
		Modules: []domain.DpkModule{{
			Name: "main",
			Functions: []domain.DpkFunction{{
				Name: "run",
				// Для типа Item имя обязано быть "item".
				Inputs: []domain.FunctionIO{{Type: domain.IOTypeItem, Name: "input"}},
			}},
		}},
	}
	if err := SaveManifest(dir, manifest); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest, got %v", err)
	}
}

func TestPackAndUnpack(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "my-app"); err != nil {
		t.Fatalf("init: %v", err)
	}
	writeFile(t, filepath.Join(dir, "src", "main.py"), "print('hi')")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main")

	archivePath, err := Pack(context.Background(), dir)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if filepath.Base(archivePath) != "my-app_1.0.0.dpk" {
		t.Fatalf("unexpected archive name %q", archivePath)
	}

	names := archiveNames(t, archivePath)
	if !names["dpk.json"] || !names["src/main.py"] {
		t.Fatalf("missing entries in archive: %v", names)
	}
	// Скрытые каталоги и артефакты не упаковываются.
	for name := range names {
		if name == ".git/HEAD" || strings.HasPrefix(name, ".annotata") {
			t.Fatalf("unexpected entry %q in archive", name)
		}
	}

	dst := t.TempDir()
	if err := Unpack(archivePath, dst); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dst, "src", "main.py"))
	if err != nil || string(content) != "print('hi')" {
		t.Fatalf("unpacked content mismatch: %q, %v", content, err)
	}
}

func TestPack_DefaultVersion(t *testing.T) {
	dir := t.TempDir()
	if err := SaveManifest(dir, &Manifest{Name: "my-app"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	archivePath, err := Pack(context.Background(), dir)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if filepath.Base(archivePath) != "my-app_1.0.0.dpk" {
		t.Fatalf("expected default version in name, got %q", archivePath)
	}
}

// Повторная упаковка перезаписывает архив той же версии.
func TestPack_Idempotent(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "my-app"); err != nil {
		t.Fatalf("init: %v", err)
	}

	first, err := Pack(context.Background(), dir)
	if err != nil {
		t.Fatalf("first pack: %v", err)
	}
	second, err := Pack(context.Background(), dir)
	if err != nil {
		t.Fatalf("second pack: %v", err)
	}
	if first != second {
		t.Fatalf("archive path changed: %q vs %q", first, second)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func archiveNames(t *testing.T, path string) map[string]bool {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer reader.Close()

	names := make(map[string]bool, len(reader.File))
	for _, entry := range reader.File {
		names[entry.Name] = true
	}
	return names
}
