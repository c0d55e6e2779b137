package privacykit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/privacykit/pkg/allowlist"
	"github.com/dmitrymomot/privacykit/pkg/injection"
	"github.com/dmitrymomot/privacykit/pkg/logger"
	"github.com/dmitrymomot/privacykit/pkg/pii"
	"github.com/dmitrymomot/privacykit/pkg/sanitizer"
	"github.com/dmitrymomot/privacykit/pkg/textnorm"
)

// Gateway applies one configuration to every sanitization and validation
// call and writes audit logs. It never logs content or payload values.
// A Gateway is safe for concurrent use.
type Gateway struct {
	cfg         Config
	log         *slog.Logger
	registry    *allowlist.Registry
	sanitizer   *sanitizer.Sanitizer
	redactor    *pii.Redactor
	neutralizer *injection.Neutralizer
	newID       func() string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRegistry replaces the built-in category registry. CategoriesFile is
// still loaded into it.
func WithRegistry(r *allowlist.Registry) Option {
	return func(g *Gateway) {
		if r != nil {
			g.registry = r
		}
	}
}

// WithRedactor restricts or replaces the PII kinds redacted from content.
func WithRedactor(r *pii.Redactor) Option {
	return func(g *Gateway) {
		if r != nil {
			g.redactor = r
		}
	}
}

// WithNeutralizer replaces the injection phrase set.
func WithNeutralizer(n *injection.Neutralizer) Option {
	return func(g *Gateway) {
		if n != nil {
			g.neutralizer = n
		}
	}
}

// WithIDGenerator replaces the audit id generator.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New validates cfg and builds a Gateway.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Gateway{
		cfg:         cfg,
		redactor:    pii.NewRedactor(),
		neutralizer: injection.Default,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.log == nil {
		g.log = logger.New(
			logger.WithEnvironment(cfg.Env, cfg.ServiceName),
			logger.WithLevelName(cfg.LogLevel),
			logger.WithRedaction(),
			logger.WithContextValue("request_id", requestIDKey),
		)
	}
	g.log = g.log.With(logger.Component("privacykit"))

	if g.registry == nil {
		g.registry = allowlist.Default()
	}
	if cfg.CategoriesFile != "" {
		schemas, err := allowlist.LoadFile(cfg.CategoriesFile)
		if err != nil {
			return nil, errors.Join(ErrLoadingCategories, err)
		}
		for _, s := range schemas {
			if err := g.registry.Register(s); err != nil {
				return nil, errors.Join(ErrLoadingCategories, err)
			}
		}
	}

	g.sanitizer = sanitizer.New(
		sanitizer.WithRedactor(g.redactor),
		sanitizer.WithNeutralizer(g.neutralizer),
		sanitizer.WithMaxInputBytes(cfg.MaxInputBytes),
	)
	return g, nil
}

// Config returns the configuration the Gateway was built with.
func (g *Gateway) Config() Config {
	return g.cfg
}

// Categories lists the registered allowlist categories in registration order.
func (g *Gateway) Categories() []allowlist.Category {
	return g.registry.Categories()
}

// SanitizeHTML runs the structural sanitizer with the configured options.
func (g *Gateway) SanitizeHTML(input string) string {
	return g.sanitizer.Sanitize(input, sanitizer.Options{
		StripHTML:      g.cfg.StripHTML,
		StripAllStyles: g.cfg.StripAllStyles,
		MaxLen:         g.cfg.MaxOutputLen,
	})
}

// SanitizeContent runs the content pipeline with the configured limits.
// Extra options are applied last and may turn steps off.
func (g *Gateway) SanitizeContent(ctx context.Context, content string, opts ...sanitizer.ContentOption) sanitizer.ContentResult {
	all := append([]sanitizer.ContentOption{
		sanitizer.WithMaxChars(g.cfg.MaxContentChars),
		sanitizer.WithContentMaxInputBytes(g.cfg.MaxInputBytes),
		sanitizer.WithContentRedactor(g.redactor),
		sanitizer.WithContentNeutralizer(g.neutralizer),
	}, opts...)

	res := sanitizer.SanitizeContent(content, all...)
	g.logReport(ctx, res.Report, res.Content)
	return res
}

// PreparedText is text ready to be embedded in a prompt.
type PreparedText struct {
	Content         string           `json:"content"`
	Report          sanitizer.Report `json:"metadata"`
	EstimatedTokens int              `json:"estimated_tokens"`
	// BudgetTruncated is true when the token budget cut the content.
	BudgetTruncated bool `json:"budget_truncated"`
}

// PrepareText collapses whitespace and duplicate lines, runs the content
// pipeline and finally trims the result to the configured token budget.
func (g *Gateway) PrepareText(ctx context.Context, content string) PreparedText {
	normalized := textnorm.Normalize(content, textnorm.Options{
		CollapseWhitespace: true,
		RemoveDuplicates:   true,
	})

	res := g.SanitizeContent(ctx, normalized.Content)
	out := textnorm.TruncateToTokenBudget(res.Content, g.cfg.TokenBudget, textnorm.DefaultCharsPerToken)
	return PreparedText{
		Content:         out,
		Report:          res.Report,
		EstimatedTokens: textnorm.EstimateTokens(out),
		BudgetTruncated: out != res.Content,
	}
}

// Validation is an allowlist result stamped with the audit id it was
// logged under.
type Validation struct {
	allowlist.Result
	AuditID string `json:"audit_id"`
}

// ValidatePayload filters payload through the category allowlist and fails
// closed on PII. An unknown category is an error; a rejected payload is not.
func (g *Gateway) ValidatePayload(ctx context.Context, category allowlist.Category, payload allowlist.Value) (Validation, error) {
	auditID := AuditIDFromContext(ctx)
	if auditID == "" {
		auditID = g.newID()
	}

	schema, err := g.registry.Lookup(category)
	if err != nil {
		g.log.ErrorContext(ctx, "payload validation failed",
			logger.Category(category),
			logger.AuditID(auditID),
			logger.Error(err),
		)
		return Validation{AuditID: auditID}, err
	}

	res := schema.Validate(payload)
	if !res.Safe {
		paths := make([]string, 0, len(res.Findings))
		for _, f := range res.Findings {
			paths = append(paths, f.Path)
		}
		g.log.WarnContext(ctx, "payload rejected",
			logger.Category(category),
			logger.Reason(res.Reason),
			logger.AuditID(auditID),
			logger.Paths(paths),
		)
		return Validation{Result: res, AuditID: auditID}, nil
	}

	g.log.InfoContext(ctx, "payload accepted",
		logger.Category(category),
		logger.AuditID(auditID),
		slog.Int("fields", res.Payload.Len()),
	)
	return Validation{Result: res, AuditID: auditID}, nil
}

// ValidateJSON parses raw JSON and validates it like ValidatePayload.
func (g *Gateway) ValidateJSON(ctx context.Context, category allowlist.Category, data []byte) (Validation, error) {
	v, err := allowlist.ParseJSON(data)
	if err != nil {
		return Validation{}, err
	}
	return g.ValidatePayload(ctx, category, v)
}

// ValidateAny converts plain Go data with allowlist.FromAny and validates it.
func (g *Gateway) ValidateAny(ctx context.Context, category allowlist.Category, payload any) (Validation, error) {
	v, err := allowlist.FromAny(payload)
	if err != nil {
		return Validation{}, err
	}
	return g.ValidatePayload(ctx, category, v)
}

// SafePayload returns the filtered payload or an error wrapping
// ErrUnsafePayload. It suits callers that abort on any error before the
// outbound call.
func (g *Gateway) SafePayload(ctx context.Context, category allowlist.Category, payload any) (allowlist.Value, error) {
	res, err := g.ValidateAny(ctx, category, payload)
	if err != nil {
		return allowlist.Value{}, err
	}
	if !res.Safe {
		return allowlist.Value{}, fmt.Errorf("%w: %s (audit id %s)", ErrUnsafePayload, res.Reason, res.AuditID)
	}
	return res.Payload, nil
}

func (g *Gateway) logReport(ctx context.Context, r sanitizer.Report, content string) {
	if r.InjectionDetected {
		g.log.WarnContext(ctx, "prompt injection neutralized",
			logger.Report(r),
			logger.Length(utf8.RuneCountInString(content)),
		)
		return
	}
	g.log.DebugContext(ctx, "content sanitized",
		logger.Report(r),
		logger.Length(utf8.RuneCountInString(content)),
	)
}
