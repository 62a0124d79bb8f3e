package fetcher

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// inputExts are the loadable file types, in the order Resolve prefers them
// when an archive holds more than one kind.
var inputExts = []string{".shp", ".xlsx", ".csv", ".yaml", ".yml"}

// Resolve turns an input source into a local file path. http(s) URLs are
// downloaded into workDir with f, and .zip archives are extracted into
// workDir and replaced by the single input file they hold. Local non-zip
// paths are returned unchanged.
func Resolve(ctx context.Context, f Fetcher, src, workDir string) (string, error) {
	local := src
	if u, err := url.Parse(src); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		name := path.Base(u.Path)
		if name == "" || name == "/" || name == "." {
			return "", eris.Errorf("fetcher: cannot derive a file name from %s", src)
		}
		local = filepath.Join(workDir, name)
		n, err := f.DownloadToFile(ctx, src, local)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: download %s", src)
		}
		zap.L().Info("fetcher: downloaded input", zap.String("url", src), zap.Int64("bytes", n))
	}

	if !strings.EqualFold(filepath.Ext(local), ".zip") {
		return local, nil
	}

	dest := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(local), filepath.Ext(local)))
	files, err := ExtractZIP(local, dest)
	if err != nil {
		return "", err
	}
	return pickInput(local, files)
}

func pickInput(archive string, files []string) (string, error) {
	for _, ext := range inputExts {
		var matches []string
		for _, f := range files {
			if strings.EqualFold(filepath.Ext(f), ext) {
				matches = append(matches, f)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return "", eris.Errorf("fetcher: %s holds %d %s files, expected one", archive, len(matches), ext)
		}
	}
	return "", eris.Errorf("fetcher: %s holds no .shp, .xlsx, .csv or .yaml file", archive)
}
