package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/ariel-frischer/folio/internal/progress"
	"go.uber.org/zap"
)

// IndexFile is the name of the rendered page.
const IndexFile = "index.html"

// Options configures a site build.
type Options struct {
	RenderOptions
	// Root is the site root. The assets directory keeps its path relative to
	// Root inside the output directory so asset references stay valid.
	Root      string
	AssetsDir string
	OutputDir string
	Logger    *zap.Logger
	Progress  progress.Reporter
	// FirstStage and TotalStages number the reported stages when the build
	// is part of a longer run. Zero values number them 1 and 2 of 2.
	FirstStage  int
	TotalStages int
}

// Output describes a finished build.
type Output struct {
	Dir    string
	Index  string
	Assets int
}

// buildStages is the number of stages Build reports.
const buildStages = 2

// Build renders p into opts.OutputDir and copies the assets directory. The
// output directory is created if needed; existing files are overwritten.
func Build(p *content.Portfolio, opts Options) (*Output, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := opts.Progress
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if opts.OutputDir == "" {
		return nil, errors.New("site: output directory is required")
	}

	renderer, err := NewRenderer(opts.RenderOptions)
	if err != nil {
		return nil, err
	}

	out := &Output{Dir: opts.OutputDir, Index: filepath.Join(opts.OutputDir, IndexFile)}
	first, total := stageNumbers(opts)

	err = progress.Run(reporter, progress.StageInfo{Name: "render page", Number: first, TotalStages: total}, func() (string, error) {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		if err := writeIndex(renderer, p, out.Index); err != nil {
			return "", err
		}
		logger.Info("wrote page", zap.String("file", out.Index))
		return IndexFile, nil
	})
	if err != nil {
		return nil, err
	}

	err = progress.Run(reporter, progress.StageInfo{Name: "copy assets", Number: first + 1, TotalStages: total}, func() (string, error) {
		if opts.AssetsDir == "" {
			return "no assets directory", nil
		}
		if _, err := os.Stat(opts.AssetsDir); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no assets directory", zap.String("dir", opts.AssetsDir))
			return "no assets directory", nil
		}
		dst := filepath.Join(opts.OutputDir, assetsTarget(opts.Root, opts.AssetsDir))
		n, err := CopyTree(opts.AssetsDir, dst)
		if err != nil {
			return "", err
		}
		out.Assets = n
		logger.Info("copied assets", zap.String("dir", dst), zap.Int("files", n))
		return fmt.Sprintf("%d file(s)", n), nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func stageNumbers(opts Options) (first, total int) {
	first = opts.FirstStage
	if first <= 0 {
		first = 1
	}
	total = opts.TotalStages
	if total < first+buildStages-1 {
		total = first + buildStages - 1
	}
	return first, total
}

func writeIndex(r *Renderer, p *content.Portfolio, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", IndexFile, err)
	}
	if err := r.Render(f, p); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", IndexFile, err)
	}
	return nil
}

// assetsTarget returns where the assets directory goes inside the output
// directory: its path relative to the site root, or its base name when it
// lives outside the root.
func assetsTarget(root, assetsDir string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, assetsDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.Base(assetsDir)
}

// CopyTree copies every regular file under src into dst, keeping relative
// paths. Hidden files and directories are skipped. It returns the number of
// files copied.
func CopyTree(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != src && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copying assets: %w", err)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
