package recommendation

import (
	"context"
	"strings"
	"unicode"

	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"

	"github.com/rs/zerolog"
)

const MissingDestinationMessage = "Missing 'destination'"

// CompletionRequest is a single system+user exchange.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// Completion is the raw assistant text and the model that produced it.
type Completion struct {
	Text  string
	Model string
}

// Completer performs one synchronous model call.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Service describes the recommendation use case.
type Service interface {
	Recommend(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	completer Completer
	prompts   PromptSet
	sanitizer *Sanitizer
	log       zerolog.Logger
}

// NewService wires the recommendation pipeline. A nil sanitizer leaves model strings untouched.
func NewService(completer Completer, prompts PromptSet, sanitizer *Sanitizer, log zerolog.Logger) Service {
	return &service{
		completer: completer,
		prompts:   prompts,
		sanitizer: sanitizer,
		log:       log.With().Str("component", "recommendation-service").Logger(),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (*Result, error) {
	if IsBlank(req.Destination) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, MissingDestinationMessage, nil, "8b1f0e52-3c7a-4d9e-a6b4-2f5c9d0e7a13")
	}

	country := ResolveCountry(req.Locale, req.CountryHeader)
	domain := RetailerDomain(country)

	completion, err := s.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: s.prompts.System,
		UserPrompt:   s.prompts.UserPrompt(req.Destination),
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "request recommendations")
	}

	set, err := ParseModelOutput(completion.Text)
	if err != nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "unusable model output", err, "c42d7e19-0b6f-4a85-9e3d-71a8f5b2c6e0", map[string]any{
			"model":       completion.Model,
			"text_length": len(completion.Text),
		})
	}

	for _, warning := range SoftWarnings(set) {
		s.log.Warn().Str("model", completion.Model).Msg(warning)
	}

	s.sanitizer.Set(set)
	AddLinks(set, domain)

	s.log.Debug().
		Str("country", country).
		Str("retailer_domain", domain).
		Int("categories", len(set.Categories)).
		Int("books", set.BookCount()).
		Msg("recommendations ready")

	return &Result{Set: set, Country: country, Domain: domain}, nil
}

// IsBlank reports whether s is empty once the characters JavaScript's trim removes are stripped.
// That is Unicode white space and U+FEFF, but not U+0085.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085')
	}) == ""
}
