package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractZIP unpacks every file in the archive under destDir and returns the
// members that can be loaded as input (see inputExts). Sidecars such as a
// shapefile's .dbf and .shx are written but not returned. macOS resource
// fork entries are skipped.
func ExtractZIP(zipPath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open archive %s", zipPath)
	}
	defer zr.Close() //nolint:errcheck

	var inputs []string
	for _, member := range zr.File {
		if member.FileInfo().IsDir() || strings.HasPrefix(member.Name, "__MACOSX/") {
			continue
		}
		dest, err := memberPath(destDir, member.Name)
		if err != nil {
			return nil, err
		}
		if err := writeMember(member, dest); err != nil {
			return nil, err
		}
		if isInputFile(dest) {
			inputs = append(inputs, dest)
		}
	}
	return inputs, nil
}

// memberPath joins name onto destDir and rejects names that escape it.
func memberPath(destDir, name string) (string, error) {
	root := filepath.Clean(destDir)
	dest := filepath.Join(root, name)
	if !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", eris.Errorf("fetcher: archive member %q escapes %s (zip slip)", name, destDir)
	}
	return dest, nil
}

func writeMember(member *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return eris.Wrapf(err, "fetcher: create directory for %s", member.Name)
	}

	src, err := member.Open()
	if err != nil {
		return eris.Wrapf(err, "fetcher: open archive member %s", member.Name)
	}
	defer src.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return eris.Wrapf(err, "fetcher: create %s", dest)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return eris.Wrapf(err, "fetcher: write %s", dest)
	}
	if err := out.Close(); err != nil {
		return eris.Wrapf(err, "fetcher: close %s", dest)
	}
	return nil
}

func isInputFile(path string) bool {
	return slices.Contains(inputExts, strings.ToLower(filepath.Ext(path)))
}
