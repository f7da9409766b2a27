package fallback

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/npillmayer/linelayout/core"
)

// DefaultTag is the language tag of the fallback chain used for languages
// without a chain of their own. A configuration entry with an empty lang
// attribute is treated the same.
const DefaultTag = "default"

// Config is a fallback configuration: a list of languages, each with an
// ordered list of font variants.
type Config struct {
	Languages []Language
}

// Language assigns a chain of font variants to one or more language tags.
type Language struct {
	Tags     []string
	Variants []Variant
}

// Variant is either a single font reference or a group of alternative font
// references. Exactly one of Ref and Group is set.
type Variant struct {
	Ref   string
	Group []string
}

// IsGroup is a predicate.
func (v Variant) IsGroup() bool {
	return len(v.Group) > 0
}

// Compiled selectors for the VirtualFont configuration tree.
var (
	xpRoot     = xpath.MustCompile("/*")
	xpFonts    = xpath.MustCompile("/VirtualFont/Font")
	xpVariants = xpath.MustCompile("*")
	xpRefs     = xpath.MustCompile("Ref")
)

// ReadConfig reads a fallback configuration in XML format.
// Errors carry code core.EINVALID.
func ReadConfig(r io.Reader) (*Config, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read fallback configuration")
	}
	root := xmlquery.QuerySelector(doc, xpRoot)
	if root == nil || root.Data != "VirtualFont" {
		name := "none"
		if root != nil {
			name = root.Data
		}
		return nil, core.Error(core.EINVALID,
			"fallback configuration must have root element VirtualFont, has %s", name)
	}
	cfg := &Config{}
	for _, fnode := range xmlquery.QuerySelectorAll(doc, xpFonts) {
		langs := fnode.SelectAttr("lang")
		lang := Language{Tags: splitLanguageList(langs)}
		// document order is chain order, so Ref and Group are not selected separately
		for _, vnode := range xmlquery.QuerySelectorAll(fnode, xpVariants) {
			switch vnode.Data {
			case "Ref":
			case "Group":
				v := Variant{}
				for _, rnode := range xmlquery.QuerySelectorAll(vnode, xpRefs) {
					if ref := strings.TrimSpace(rnode.InnerText()); ref != "" {
						v.Group = append(v.Group, ref)
					}
				}
				if len(v.Group) == 0 {
					return nil, core.Error(core.EINVALID, "empty font group for language %q", langs)
				}
				lang.Variants = append(lang.Variants, v)
				continue
			default:
				tracer().Infof("ignoring element %s in fallback configuration", vnode.Data)
				continue
			}
			ref := strings.TrimSpace(vnode.InnerText())
			if ref == "" {
				return nil, core.Error(core.EINVALID, "empty font reference for language %q", langs)
			}
			lang.Variants = append(lang.Variants, Variant{Ref: ref})
		}
		cfg.Languages = append(cfg.Languages, lang)
	}
	tracer().Debugf("read fallback configuration with %d language entries", len(cfg.Languages))
	return cfg, nil
}

// ReadConfigFile reads a fallback configuration from an XML file.
// If the file cannot be opened, an error with code core.EMISSING is returned.
func ReadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open fallback configuration %s", path)
	}
	defer f.Close()
	return ReadConfig(f)
}

// splitLanguageList splits a list of language tags separated by ':'.
// An empty list denotes the default chain.
func splitLanguageList(langs string) []string {
	var tags []string
	for _, l := range strings.Split(langs, ":") {
		if l = strings.TrimSpace(l); l != "" {
			tags = append(tags, l)
		}
	}
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}
	return tags
}
