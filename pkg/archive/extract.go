// pkg/archive/extract.go
package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// Format identifies an archive layout
type Format string

const (
	FormatTarXZ Format = "tar.xz"
	FormatTarGZ Format = "tar.gz"
	FormatTar   Format = "tar"
	FormatZip   Format = "zip"
	FormatNAR   Format = "nar"
	FormatNARXZ Format = "nar.xz"
)

// Stats counts what an extraction wrote
type Stats struct {
	Files    int
	Dirs     int
	Symlinks int
}

// Extractor unpacks local SDK archives
type Extractor struct {
	logger *log.Logger
}

// New creates an Extractor; a nil logger discards output
func New(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Extractor{logger: logger}
}

// DetectFormat picks the archive format from the file name
func DetectFormat(name string) (Format, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXZ, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGZ, nil
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".nar.xz"):
		return FormatNARXZ, nil
	case strings.HasSuffix(lower, ".nar"):
		return FormatNAR, nil
	}
	return "", fmt.Errorf("unsupported archive format: %s", filepath.Base(name))
}

// Extract unpacks src into dest, creating dest if needed
func (e *Extractor) Extract(ctx context.Context, src, dest string) (*Stats, error) {
	format, err := DetectFormat(src)
	if err != nil {
		return nil, err
	}
	e.logger.Printf("Extracting %s archive: %s -> %s", format, src, dest)

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}

	if format == FormatZip {
		return e.extractZip(ctx, src, dest)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	switch format {
	case FormatTarXZ, FormatNARXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		r = xzReader
	case FormatTarGZ:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	var stats *Stats
	switch format {
	case FormatNAR, FormatNARXZ:
		stats, err = e.extractNAR(ctx, r, dest)
	default:
		stats, err = e.extractTar(ctx, r, dest)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Printf("Extraction complete: %d files, %d directories, %d symlinks",
		stats.Files, stats.Dirs, stats.Symlinks)
	return stats, nil
}

func (e *Extractor) extractTar(ctx context.Context, r io.Reader, dest string) (*Stats, error) {
	tarReader := tar.NewReader(r)
	stats := &Stats{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}

		targetPath, err := safeJoin(dest, header.Name)
		if err != nil {
			return nil, err
		}
		if targetPath == dest {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
			stats.Dirs++

		case tar.TypeSymlink:
			if err := writeSymlink(dest, targetPath, header.Linkname); err != nil {
				return nil, err
			}
			stats.Symlinks++

		case tar.TypeReg:
			if err := writeFile(targetPath, tarReader, fs.FileMode(header.Mode).Perm(), header.Size); err != nil {
				return nil, err
			}
			stats.Files++

		default:
			e.logger.Printf("  skipping unsupported entry type %v for %s", header.Typeflag, header.Name)
		}
	}

	return stats, nil
}

func (e *Extractor) extractNAR(ctx context.Context, r io.Reader, dest string) (*Stats, error) {
	narReader := nar.NewReader(r)
	stats := &Stats{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading NAR entry: %w", err)
		}

		targetPath, err := safeJoin(dest, hdr.Path)
		if err != nil {
			return nil, err
		}

		switch hdr.Mode.Type() {
		case fs.ModeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
			stats.Dirs++
		case fs.ModeSymlink:
			if err := writeSymlink(dest, targetPath, hdr.LinkTarget); err != nil {
				return nil, err
			}
			stats.Symlinks++
		case 0:
			perm := fs.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}
			if err := writeFile(targetPath, narReader, perm, hdr.Size); err != nil {
				return nil, err
			}
			stats.Files++
		}
	}

	return stats, nil
}

func (e *Extractor) extractZip(ctx context.Context, src, dest string) (*Stats, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	stats := &Stats{}
	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		targetPath, err := safeJoin(dest, zf.Name)
		if err != nil {
			return nil, err
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
			stats.Dirs++
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		err = writeFile(targetPath, rc, zf.Mode().Perm(), int64(zf.UncompressedSize64))
		rc.Close()
		if err != nil {
			return nil, err
		}
		stats.Files++
	}

	e.logger.Printf("Extraction complete: %d files, %d directories", stats.Files, stats.Dirs)
	return stats, nil
}

// safeJoin resolves an archive entry name under dest, rejecting entries
// that would land outside of it, either by name or through a symlink
// already on disk
func safeJoin(dest, name string) (string, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "./")
	target := filepath.Join(dest, filepath.FromSlash(clean))
	rel, err := filepath.Rel(dest, target)
	if err != nil || escapes(rel) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}

	dir := dest
	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts[:len(parts)-1] {
		dir = filepath.Join(dir, part)
		info, err := os.Lstat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", dir, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return "", fmt.Errorf("archive entry %q escapes destination through symlink %s", name, dir)
		}
	}
	return target, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// writeSymlink creates target -> linkname. Absolute links and links
// resolving outside dest are rejected.
func writeSymlink(dest, target, linkname string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return fmt.Errorf("symlink %s -> %s escapes destination: absolute target", target, linkname)
	}
	if !linkStaysInside(dest, filepath.Dir(target), linkname) {
		return fmt.Errorf("symlink %s -> %s escapes destination", target, linkname)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory for symlink: %w", err)
	}
	if err := unlink(target); err != nil {
		return err
	}
	if err := os.Symlink(linkname, target); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", target, linkname, err)
	}
	return nil
}

// linkStaysInside resolves linkname from dir one component at a time.
// Following an earlier symlink is refused, since ".." after it would be
// resolved against the link's target rather than the path as written.
func linkStaysInside(dest, dir, linkname string) bool {
	parts := strings.Split(filepath.ToSlash(linkname), "/")
	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			dir = filepath.Dir(dir)
		default:
			dir = filepath.Join(dir, part)
			if i < len(parts)-1 {
				if info, err := os.Lstat(dir); err == nil && info.Mode()&fs.ModeSymlink != 0 {
					return false
				}
			}
		}
		if rel, err := filepath.Rel(dest, dir); err != nil || escapes(rel) {
			return false
		}
	}
	return true
}

// unlink removes an earlier entry at path so a new one is never written through it
func unlink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot replace directory %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func writeFile(target string, r io.Reader, perm fs.FileMode, size int64) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if perm == 0 {
		perm = 0644
	}
	if err := unlink(target); err != nil {
		return err
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	written, err := io.Copy(outFile, r)
	outFile.Close()
	if err != nil {
		return fmt.Errorf("writing file %s: %w", target, err)
	}
	if written != size {
		return fmt.Errorf("file size mismatch for %s: expected %d, got %d", target, size, written)
	}
	return nil
}
