package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko"
)

// DefaultAppKey names the application's folder in the user's cache directory
// if configuration key `app-key` is not set.
const DefaultAppKey = "linelayout"

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := DefaultAppKey
	if conf != nil && conf.GetString("app-key") != "" {
		appkey = conf.GetString("app-key")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	cachedir = filepath.Join(append([]string{cachedir, appkey}, subfolders...)...)
	tracer().Debugf("caching in %s", cachedir)
	if _, err = os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", err
		}
	}
	return cachedir, nil
}
