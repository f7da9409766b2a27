package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/schuko"
)

// Reference schemes
const (
	SchemeFile   = "file://"
	SchemeAssets = "assets://"
	SchemeSystem = "system://"
)

// DefaultAssetsDir is used for assets:// references if configuration key
// `assets-dir` is not set.
const DefaultAssetsDir = "assets"

// NotFound returns an application error for a missing font resource.
func NotFound(ref string) error {
	e := fmt.Errorf("resource missing: %v", ref)
	return core.WrapError(e, core.EMISSING, "font not found: %s", ref)
}

// ResolveFontPath locates the file a font reference points to.
// conf may be nil, in which case defaults apply.
//
// If the reference cannot be resolved to a readable regular file, an error
// with code core.EMISSING is returned.
func ResolveFontPath(conf schuko.Configuration, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", NotFound(ref)
	}
	var fpath string
	switch {
	case strings.HasPrefix(ref, SchemeFile):
		fpath = ref[len(SchemeFile):]
	case strings.HasPrefix(ref, SchemeAssets):
		fpath = filepath.Join(AssetsDir(conf), filepath.FromSlash(ref[len(SchemeAssets):]))
	case strings.HasPrefix(ref, SchemeSystem):
		name := ref[len(SchemeSystem):]
		p, err := findfont.Find(name)
		if err != nil {
			tracer().Debugf("findfont does not know system font %s: %v", name, err)
			var ok bool
			if p, ok = findFontConfigFont(conf, name); !ok {
				return "", NotFound(ref)
			}
		}
		fpath = p
	case strings.Contains(ref, "://"):
		tracer().Errorf("unsupported font reference scheme: %s", ref)
		return "", NotFound(ref)
	default:
		fpath = ref
	}
	fi, err := os.Stat(fpath)
	if err != nil || !fi.Mode().IsRegular() {
		tracer().Debugf("font reference %s does not point to a file (%s)", ref, fpath)
		return "", NotFound(ref)
	}
	return fpath, nil
}

// AssetsDir returns the folder assets:// references are relative to.
func AssetsDir(conf schuko.Configuration) string {
	if conf != nil {
		if dir := conf.GetString("assets-dir"); dir != "" {
			return dir
		}
	}
	return DefaultAssetsDir
}

// NormalizePath returns a clean, absolute version of a font path. It is used
// as part of the identity of loaded fonts.
func NormalizePath(fpath string) string {
	if abs, err := filepath.Abs(fpath); err == nil {
		fpath = abs
	}
	return filepath.Clean(fpath)
}
