package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

// Translator owns a message bundle. Build one per process and pass it to whoever renders labels.
type Translator struct {
	bundle *i18n.Bundle
	lang   string
}

// New loads every embedded locale, using lang as the bundle's default language.
func New(lang string) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
		slog.Debug("loaded locale file", "file", e.Name())
	}

	return &Translator{bundle: bundle, lang: lang}, nil
}

// Lang is the default language.
func (t *Translator) Lang() string {
	return t.lang
}

// NewLocalizer creates a localizer preferring langs in order, then the default language.
// Each entry may be a tag or an Accept-Language header value.
func (t *Translator) NewLocalizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(t.bundle, append(langs, t.lang)...)
}

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

func (t *Translator) localizerFromCtx(ctx context.Context) *i18n.Localizer {
	if loc, ok := ctx.Value(ctxKey{}).(*i18n.Localizer); ok {
		return loc
	}
	return t.NewLocalizer()
}

// T translates a message by ID. A missing message yields its ID.
func (t *Translator) T(ctx context.Context, msgID string) string {
	return t.localize(ctx, &i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (t *Translator) Td(ctx context.Context, msgID string, data map[string]any) string {
	return t.localize(ctx, &i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
}

// Tp translates a pluralized message by ID.
func (t *Translator) Tp(ctx context.Context, msgID string, count int) string {
	return t.localize(ctx, &i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(ctx context.Context, cfg *i18n.LocalizeConfig) string {
	s, err := t.localizerFromCtx(ctx).Localize(cfg)
	if err != nil {
		slog.Warn("missing translation", "id", cfg.MessageID, "error", err)
		return cfg.MessageID
	}
	return s
}
