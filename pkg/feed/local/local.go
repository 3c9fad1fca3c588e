// Package local serves photos from a directory on disk.
//
// Files are listed once, sorted by name and paged in that order. Only the
// image header is decoded, so large files cost one short read each.
// JPEG, PNG, GIF, WebP, BMP and TIFF are recognized.
package local

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
)

var extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// Source lists image files under a directory.
type Source struct {
	dir    string
	logger *log.Logger

	once  sync.Once
	files []string
	err   error
}

// New returns a Source for dir. The directory must exist.
func New(dir string, logger *log.Logger) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid directory %q", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "photo directory %q", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%q is not a directory", dir)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Source{dir: abs, logger: logger}, nil
}

// Name returns "local".
func (s *Source) Name() string { return "local" }

// Dir returns the absolute directory path.
func (s *Source) Dir() string { return s.dir }

// Page decodes the headers of one page of files. Files whose header cannot
// be read are skipped with a warning, so a page may hold fewer than perPage
// photos.
func (s *Source) Page(ctx context.Context, number, perPage int) (*feed.Page, error) {
	files, err := s.list()
	if err != nil {
		return nil, err
	}

	number = max(number, 1)
	perPage = max(perPage, 1)
	page := &feed.Page{Number: number, PerPage: perPage, Total: len(files)}

	start := (number - 1) * perPage
	if start >= len(files) {
		return page, nil
	}
	end := min(start+perPage, len(files))
	if end < len(files) {
		page.Next = number + 1
	}

	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := readPhoto(files[i], i+1)
		if err != nil {
			s.logger.Warn("skipping unreadable image", "file", files[i], "error", err)
			continue
		}
		page.Items = append(page.Items, p)
	}
	return page, nil
}

func (s *Source) list() ([]string, error) {
	s.once.Do(func() {
		s.err = filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != s.dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
				s.files = append(s.files, path)
			}
			return nil
		})
		slices.Sort(s.files)
		s.logger.Debug("listed photo directory", "dir", s.dir, "files", len(s.files))
	})
	if s.err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, s.err)
	}
	return s.files, nil
}

func readPhoto(path string, id int) (feed.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return feed.Photo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return feed.Photo{}, err
	}

	url := "file://" + filepath.ToSlash(path)
	name := filepath.Base(path)
	return feed.Photo{
		ID:     id,
		Width:  cfg.Width,
		Height: cfg.Height,
		URL:    url,
		Alt:    strings.TrimSuffix(name, filepath.Ext(name)) + " (" + format + ")",
		Src: feed.Src{
			Original:  url,
			Large2x:   url,
			Large:     url,
			Medium:    url,
			Small:     url,
			Portrait:  url,
			Landscape: url,
			Tiny:      url,
		},
	}, nil
}
