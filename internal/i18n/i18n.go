// Package i18n stores menu captions in resource bundles, one TOML file per
// bundle and locale, and resolves keys with the usual resource bundle
// fallback: exact locale, then base language, then the root file.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_CA"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"

	"github.com/atomicstack/viewmenu/internal/logging/events"
)

var (
	ErrMissingBundle = errors.New("missing bundle")
	ErrMissingKey    = errors.New("missing key")
)

//go:embed bundles/*.toml
var defaultBundles embed.FS

const fileExt = ".toml"

var supported = map[string]func() locales.Translator{
	"de":    de.New,
	"de_AT": de_AT.New,
	"de_CH": de_CH.New,
	"en":    en.New,
	"en_GB": en_GB.New,
	"en_US": en_US.New,
	"es":    es.New,
	"es_ES": es_ES.New,
	"fr":    fr.New,
	"fr_CA": fr_CA.New,
}

// Supported lists the locale suffixes bundle files may carry.
func Supported() []string {
	out := make([]string, 0, len(supported))
	for name := range supported {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func unsupportedLocale(locale string) error {
	return fmt.Errorf("unsupported locale %q (supported: %s)", locale, strings.Join(Supported(), ", "))
}

type bundle struct {
	root map[string]string
	uni  *ut.UniversalTranslator
}

func newBundle() *bundle {
	return &bundle{root: make(map[string]string), uni: ut.New(en.New())}
}

// Provider resolves keys against the loaded bundles. It is safe for
// concurrent use.
type Provider struct {
	mu      sync.RWMutex
	bundles map[string]*bundle
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{bundles: make(map[string]*bundle)}
}

// Default returns a provider loaded with the bundles shipped in the binary.
func Default() (*Provider, error) {
	sub, err := fs.Sub(defaultBundles, "bundles")
	if err != nil {
		return nil, err
	}
	p := NewProvider()
	if err := p.LoadFS(sub); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadDir loads every bundle file in dir.
func (p *Provider) LoadDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("load bundles: %w", err)
	}
	return p.LoadFS(os.DirFS(dir))
}

// LoadFS loads every *.toml file at the root of fsys. Files loaded later
// override keys of earlier ones.
func (p *Provider) LoadFS(fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*"+fileExt)
	if err != nil {
		return err
	}
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		err = p.Load(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Load reads one bundle file. name must be <bundle>.toml or
// <bundle>_<locale>.toml.
func (p *Provider) Load(name string, r io.Reader) error {
	bundleName, locale, err := parseFileName(name)
	if err != nil {
		return err
	}
	var raw map[string]interface{}
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	texts := make(map[string]string)
	if err := flatten("", raw, texts); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	if err := p.Add(bundleName, locale, texts); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	events.I18n.Load(bundleName, locale, name, len(texts))
	return nil
}

// Add registers texts for bundle in locale. An empty locale targets the
// root file.
func (p *Provider) Add(bundleName, locale string, texts map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.bundles[bundleName]
	if !ok {
		b = newBundle()
		p.bundles[bundleName] = b
	}
	if locale == "" {
		for k, v := range texts {
			b.root[k] = v
		}
		return nil
	}
	factory, ok := supported[locale]
	if !ok {
		return unsupportedLocale(locale)
	}
	trans, found := b.uni.GetTranslator(locale)
	if !found {
		if err := b.uni.AddTranslator(factory(), true); err != nil {
			return err
		}
		trans, _ = b.uni.GetTranslator(locale)
	}
	for k, v := range texts {
		if err := trans.Add(k, v, true); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// Bundles returns the loaded bundle names.
func (p *Provider) Bundles() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.bundles))
	for name := range p.bundles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Translate looks key up in bundle for tag.
func (p *Provider) Translate(bundleName, key string, tag language.Tag) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.bundles[bundleName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingBundle, bundleName)
	}
	for _, locale := range Chain(tag) {
		trans, found := b.uni.GetTranslator(locale)
		if !found {
			continue
		}
		if text, err := trans.T(key); err == nil {
			return text, nil
		}
	}
	if text, ok := b.root[key]; ok {
		return text, nil
	}
	return "", fmt.Errorf("%w: %s in %s (%s)", ErrMissingKey, key, bundleName, tag)
}

// Chain returns the locale names tried for tag, most specific first. The
// root file is implied after the last one.
func Chain(tag language.Tag) []string {
	base, _, region := tag.Raw()
	if base.String() == "und" {
		return nil
	}
	var chain []string
	if region.String() != "ZZ" {
		chain = append(chain, base.String()+"_"+region.String())
	}
	return append(chain, base.String())
}

func parseFileName(name string) (bundleName, locale string, err error) {
	base := path.Base(name)
	if !strings.HasSuffix(base, fileExt) {
		return "", "", fmt.Errorf("%s: not a %s file", name, fileExt)
	}
	stem := strings.TrimSuffix(base, fileExt)
	bundleName, locale, _ = strings.Cut(stem, "_")
	if bundleName == "" {
		return "", "", fmt.Errorf("%s: empty bundle name", name)
	}
	if locale != "" {
		if _, ok := supported[locale]; !ok {
			return "", "", fmt.Errorf("%s: %w", name, unsupportedLocale(locale))
		}
	}
	return bundleName, locale, nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]interface{}:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("value of %q is %T, want string", key, v)
		}
	}
	return nil
}
