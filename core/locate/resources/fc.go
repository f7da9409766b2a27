package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/schuko"
)

// fontConfigEntry is a font file as listed by fontconfig's fc-list.
type fontConfigEntry struct {
	Path   string
	Family string
}

func findFontConfigBinary(conf schuko.Configuration) (string, bool) {
	if conf == nil || conf.GetString("fontconfig") == "" {
		tracer().Debugf("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		return "", false
	}
	return conf.GetString("fontconfig"), true
}

// cacheFontConfigList writes the output of fc-list to the user's cache
// directory, once. It returns the path of the list.
func cacheFontConfigList(conf schuko.Configuration) (string, bool) {
	fcpath, ok := findFontConfigBinary(conf)
	if !ok {
		return "", false
	}
	dir, err := CacheDirPath(conf)
	if err != nil {
		tracer().Errorf("user cache directory not available: %v", err)
		return "", false
	}
	fcListFilename := filepath.Join(dir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil {
		return fcListFilename, true
	}
	if !filepath.IsAbs(fcpath) {
		err = core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
		tracer().Errorf("%v", err)
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
		tracer().Errorf("%v", err)
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		defer fontlistFile.Close()
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
	}
	if err != nil {
		os.Remove(fcListFilename)
		err = core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
		tracer().Errorf("%v", err)
		return "", false
	}
	return fcListFilename, true
}

// parseFontConfigList reads lines of the form
//
//	/usr/share/fonts/noto/NotoSans-Regular.ttf: Noto Sans:style=Regular
//
// Font collections are skipped.
func parseFontConfigList(r io.Reader) ([]fontConfigEntry, error) {
	var entries []fontConfigEntry
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
			continue
		}
		family, _, _ := strings.Cut(fields[1], ",")
		entries = append(entries, fontConfigEntry{
			Path:   fontpath,
			Family: strings.TrimPrefix(strings.TrimSpace(family), "."),
		})
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return entries, scanner.Err()
}

func loadFontConfigList(conf schuko.Configuration) ([]fontConfigEntry, bool) {
	fclist, ok := cacheFontConfigList(conf)
	if !ok {
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		tracer().Errorf("fontconfig font list cannot be opened: %s", fclist)
		return nil, false
	}
	defer fc.Close()
	entries, err := parseFontConfigList(fc)
	if err != nil {
		tracer().Errorf("encountered a problem during reading of fontconfig font list: %v", err)
		return entries, false
	}
	return entries, true
}

// matchFontConfig finds a font by file name (e.g. "NotoSans-Regular.ttf") or,
// if that fails, by family name. Matching is case-insensitive.
func matchFontConfig(entries []fontConfigEntry, name string) (string, bool) {
	for _, e := range entries {
		if strings.EqualFold(filepath.Base(e.Path), name) {
			return e.Path, true
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Family, name) {
			return e.Path, true
		}
	}
	return "", false
}

var loadFontConfigListTask sync.Once
var fontConfigEntries []fontConfigEntry

// findFontConfigFont searches for a locally installed font using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured by setting the absolute path of the
// 'fc-list' binary as configuration key `fontconfig`.
//
// The output of fc-list is copied to the user's cache directory once.
// Subsequent calls will use the cached entries.
func findFontConfigFont(conf schuko.Configuration, name string) (string, bool) {
	if _, ok := findFontConfigBinary(conf); !ok {
		return "", false
	}
	loadFontConfigListTask.Do(func() {
		fontConfigEntries, _ = loadFontConfigList(conf)
		tracer().Infof("loaded fontconfig list with %d fonts", len(fontConfigEntries))
	})
	return matchFontConfig(fontConfigEntries, name)
}
