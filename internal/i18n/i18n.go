// Package i18n loads the embedded message catalogs and resolves display
// strings by key.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/talis/internal/errors"
)

// BaseLocale is the locale every other catalog falls back to
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale
type Bundle struct {
	builder  *catalog.Builder
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// Load reads the catalogs embedded in the binary
func Load() (*Bundle, error) {
	return LoadFS(embeddedLocales)
}

// LoadFS reads locales/*.yaml from fsys
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to glob locale catalogs")
	}
	sort.Strings(paths)

	base := language.Make(BaseLocale)
	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(base)),
		messages: make(map[language.Tag]map[string]string),
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", path)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog "+path)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.messages[base]; !ok {
		return nil, errors.FailedPreconditionf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// the matcher prefers the first tag when nothing matches
	sort.SliceStable(b.tags, func(i, j int) bool {
		return b.tags[i] == base && b.tags[j] != base
	})
	b.matcher = language.NewMatcher(b.tags)

	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return errors.InvalidArgumentf("catalog %s: locale is required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, fmt.Sprintf("catalog %s: invalid locale %q", path, locale))
	}
	if _, exists := b.messages[tag]; exists {
		return errors.InvalidArgumentf("catalog %s: locale %q defined twice", path, locale)
	}
	if len(file.Messages) == 0 {
		return errors.InvalidArgumentf("catalog %s: messages are required", path)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.InvalidArgumentf("catalog %s: message key cannot be blank", path)
		}
		if err := b.builder.SetString(tag, key, value); err != nil {
			return errors.Wrapf(err, "catalog %s: failed to register %q", path, key)
		}
		msgs[key] = value
	}

	b.messages[tag] = msgs
	b.tags = append(b.tags, tag)
	return nil
}

// Languages returns the loaded locale identifiers, sorted
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// Keys returns every message key of a locale, sorted
func (b *Bundle) Keys(locale string) []string {
	msgs := b.messages[language.Make(locale)]
	out := make([]string, 0, len(msgs))
	for key := range msgs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Match resolves a requested language to the closest loaded locale
func (b *Bundle) Match(lang string) (language.Tag, error) {
	requested, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.Und, errors.InvalidArgumentf("invalid language %q", lang)
	}
	_, idx, conf := b.matcher.Match(requested)
	if conf == language.No {
		return language.Und, errors.InvalidArgumentf("unsupported language %q", lang)
	}
	return b.tags[idx], nil
}

// Localizer translates keys in the currently selected language. It is safe
// for concurrent use and may switch language at any time.
type Localizer struct {
	bundle *Bundle

	mu      sync.RWMutex
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer creates a localizer for lang
func NewLocalizer(bundle *Bundle, lang string) (*Localizer, error) {
	l := &Localizer{bundle: bundle}
	if err := l.SetLanguage(lang); err != nil {
		return nil, err
	}
	return l, nil
}

// SetLanguage switches the active locale
func (l *Localizer) SetLanguage(lang string) error {
	tag, err := l.bundle.Match(lang)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tag = tag
	l.printer = message.NewPrinter(tag, message.Catalog(l.bundle.builder))
	return nil
}

// Language returns the active locale
func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tag.String()
}

// T returns the message for key formatted with args. Unknown keys come back
// as the key itself.
func (l *Localizer) T(key string, args ...any) string {
	l.mu.RLock()
	p := l.printer
	l.mu.RUnlock()
	return p.Sprintf(key, args...)
}
