package packaging

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/telemetry"
)

// ManifestName — имя файла манифеста в корне пакета.
const ManifestName = "dpk.json"

// artifactsDir — служебный каталог с собранными архивами,
// исключается из упаковки.
const artifactsDir = ".annotata"

// defaultVersion подставляется, когда версия в манифесте не задана.
const defaultVersion = "1.0.0"

var (
	// ErrNoManifest — в каталоге пакета нет манифеста.
	ErrNoManifest = errors.New("dpk manifest not found")

	// ErrInvalidManifest — манифест не проходит валидацию.
	ErrInvalidManifest = errors.New("invalid dpk manifest")
)

// Manifest — содержимое dpk.json.
type Manifest struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"display_name,omitempty"`
	Version     string             `json:"version,omitempty"`
	Scope       domain.DpkScope    `json:"scope,omitempty"`
	Description string             `json:"description,omitempty"`
	Modules     []domain.DpkModule `json:"modules,omitempty"`
}

// Validate проверяет обязательные поля манифеста.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidManifest)
	}
	if strings.ContainsAny(m.Name, "/\\ ") {
		return fmt.Errorf("%w: name %q contains forbidden characters", ErrInvalidManifest, m.Name)
	}
	for _, module := range m.Modules {
		for _, fn := range module.Functions {
			for _, input := range fn.Inputs {
				if err := input.Validate(); err != nil {
					return fmt.Errorf("%w: module %s function %s: %v",
						ErrInvalidManifest, module.Name, fn.Name, err)
				}
			}
			for _, output := range fn.Outputs {
				if err := output.Validate(); err != nil {
					return fmt.Errorf("%w: module %s function %s: %v",
						ErrInvalidManifest, module.Name, fn.Name, err)
				}
			}
		}
	}
	return nil
}

// LoadManifest читает и валидирует манифест из каталога пакета.
func LoadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, dir)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// SaveManifest записывает манифест в каталог пакета.
func SaveManifest(dir string, manifest *Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(filepath.Join(dir, ManifestName), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Init создаёт скелет нового пакета: манифест и каталог src.
func Init(dir, name string) error {
	manifest := &Manifest{
		Name:    name,
		Version: defaultVersion,
		Scope:   domain.DpkScopeProject,
	}
	if err := manifest.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return fmt.Errorf("create src dir: %w", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
		return fmt.Errorf("%w: manifest already exists in %s", ErrInvalidManifest, dir)
	}
	return SaveManifest(dir, manifest)
}

// Pack собирает каталог пакета в zip-архив <name>_<version>.dpk
// внутри служебного каталога и возвращает путь к архиву.
//
// Служебный каталог и скрытые файлы в архив не попадают.
// Отсутствующая версия заменяется на 1.0.0.
func Pack(ctx context.Context, dir string) (string, error) {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return "", err
	}
	version := manifest.Version
	if version == "" {
		version = defaultVersion
		telemetry.FromContext(ctx).Warn("dpk version not set, using default",
			"dpk", manifest.Name,
			"version", version,
		)
	}

	outDir := filepath.Join(dir, artifactsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	archivePath := filepath.Join(outDir, fmt.Sprintf("%s_%s.dpk", manifest.Name, version))

	out, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if skipEntry(rel, entry) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		return addFile(writer, path, filepath.ToSlash(rel))
	})
	if err != nil {
		writer.Close()
		return "", fmt.Errorf("pack %s: %w", dir, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	return archivePath, nil
}

// skipEntry решает, исключить ли запись из архива.
func skipEntry(rel string, entry fs.DirEntry) bool {
	base := filepath.Base(rel)
	if base == artifactsDir {
		return true
	}
	// Скрытые файлы и каталоги (.git, .DS_Store и т.п.),
	// кроме самого манифеста.
	if strings.HasPrefix(base, ".") {
		return true
	}
	return false
}

func addFile(writer *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := writer.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, file)
	return err
}

// Unpack распаковывает dpk-архив в каталог dst.
func Unpack(archivePath, dst string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open dpk archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		target := filepath.Join(dst, filepath.FromSlash(entry.Name))
		// Защита от выхода за пределы dst (zip slip).
		if !strings.HasPrefix(target, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", entry.Name)
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(entry, target); err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}
	return nil
}

func extractFile(entry *zip.File, target string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
