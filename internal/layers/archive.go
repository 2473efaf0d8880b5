package layers

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/ik-hxr/cms-backend/internal/messages"
)

// archiveEpoch is stamped on every entry so identical trees produce identical archives.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// collectFiles returns the regular files under dir as slash-separated paths
// relative to dir, skipping any path in exclude and packager temp files.
func collectFiles(sys System, dir string, exclude map[string]struct{}) ([]string, error) {
	var files []string
	err := sys.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if _, skip := exclude[filepath.Clean(path)]; skip {
			return nil
		}
		if isTempArchive(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf(messages.LayersWalkFailedFmt, dir, err)
	}
	sort.Strings(files)
	return files, nil
}

const tempArchiveMarker = ".hxr-tmp-"

// archiveMode is the permission published archives get; temp files start at 0600.
const archiveMode os.FileMode = 0o644

func isTempArchive(name string) bool {
	return strings.HasPrefix(name, ".") && strings.Contains(name, tempArchiveMarker)
}

// writeArchive zips files (relative to dir) into archivePath. The archive is
// written to a temp file beside archivePath and renamed into place, so an
// existing archive is replaced whole and never appended to.
func writeArchive(sys System, dir string, files []string, archivePath string) (err error) {
	if err := sys.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	tmp, err := sys.CreateTemp(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+tempArchiveMarker+"*")
	if err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = sys.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, rel := range files {
		if err := addFile(sys, zw, dir, rel); err != nil {
			return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	if err := tmp.Chmod(archiveMode); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	if err := sys.Rename(tmpName, archivePath); err != nil {
		return fmt.Errorf(messages.LayersArchiveFailedFmt, archivePath, err)
	}
	return nil
}

func addFile(sys System, zw *zip.Writer, dir string, rel string) error {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	info, err := sys.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = rel
	header.Method = zip.Deflate
	header.Modified = archiveEpoch

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	f, err := sys.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	_, err = io.Copy(w, f)
	return err
}

// List returns the sorted file entries of the archive at path.
func List(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf(messages.LayersReadArchiveFmt, path, err)
	}
	defer func() {
		_ = r.Close()
	}()
	files := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		files = append(files, f.Name)
	}
	sort.Strings(files)
	return files, nil
}

// listIfExists lists path, reporting false when the archive does not exist.
func listIfExists(path string) ([]string, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.LayersReadArchiveFmt, path, err)
	}
	files, err := List(path)
	if err != nil {
		return nil, true, err
	}
	return files, true, nil
}
