package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
	"git.home.luguber.info/inful/cosmofactory/internal/foundation/normalization"
)

// AliasFallback selects which target template an alias with several candidates uses.
type AliasFallback string

const (
	// AliasFallbackFirst always uses the first template.
	AliasFallbackFirst AliasFallback = "first"
	// AliasFallbackFirstExisting uses the first template whose directory exists in the
	// output tree, and the first template when none does.
	AliasFallbackFirstExisting AliasFallback = "first-existing"
)

var aliasFallbackNormalizer = normalization.NewNormalizer("aliasFallback", map[string]AliasFallback{
	string(AliasFallbackFirst):         AliasFallbackFirst,
	string(AliasFallbackFirstExisting): AliasFallbackFirstExisting,
}, AliasFallbackFirstExisting)

// ErrInvalidConfig is wrapped by every shape validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// rawConfig mirrors Config with pointers so missing required fields are detectable.
type rawConfig struct {
	Files         *FileMap    `json:"files"`
	Tailwind      *bool       `json:"tailwind"`
	Exclude       *rawExclude `json:"exclude"`
	Strict        *bool       `json:"strict"`
	AliasFallback *string     `json:"aliasFallback"`
}

type rawExclude struct {
	Extensions *[]string `json:"extensions"`
	Patterns   []string  `json:"patterns"`
}

// Parse decodes and validates a configuration document. Unknown fields, wrong
// types and missing required fields are all reported as validation errors.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, validationError(describeDecodeError(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, validationError([]string{"unexpected data after the configuration object"})
	}

	v := newConfigurationValidator(&raw)
	if problems := v.validate(); len(problems) > 0 {
		return nil, validationError(problems)
	}
	return v.config(), nil
}

// configurationValidator collects every shape problem instead of stopping at the first.
type configurationValidator struct {
	raw      *rawConfig
	problems []string
	fallback AliasFallback
}

func newConfigurationValidator(raw *rawConfig) *configurationValidator {
	return &configurationValidator{raw: raw}
}

func (cv *configurationValidator) validate() []string {
	cv.validateFiles()
	cv.validateTailwind()
	cv.validateExclude()
	cv.validateAliasFallback()
	return cv.problems
}

func (cv *configurationValidator) addf(format string, args ...any) {
	cv.problems = append(cv.problems, fmt.Sprintf(format, args...))
}

func (cv *configurationValidator) validateFiles() {
	if cv.raw.Files == nil {
		cv.addf("files: required")
		return
	}
	for _, e := range *cv.raw.Files {
		if strings.TrimSpace(e.Source) == "" {
			cv.addf("files: source path must not be empty")
		}
	}
}

func (cv *configurationValidator) validateTailwind() {
	if cv.raw.Tailwind == nil {
		cv.addf("tailwind: required")
	}
}

func (cv *configurationValidator) validateExclude() {
	if cv.raw.Exclude == nil {
		cv.addf("exclude: required")
		return
	}
	if cv.raw.Exclude.Extensions == nil {
		cv.addf("exclude.extensions: required")
		return
	}
	for i, ext := range *cv.raw.Exclude.Extensions {
		if ext == "" {
			cv.addf("exclude.extensions[%d]: must not be empty", i)
		}
	}
}

func (cv *configurationValidator) validateAliasFallback() {
	if cv.raw.AliasFallback == nil {
		cv.fallback = AliasFallbackFirstExisting
		return
	}
	fb, err := aliasFallbackNormalizer.Parse(*cv.raw.AliasFallback)
	if err != nil {
		cv.addf("%v", err)
		return
	}
	cv.fallback = fb
}

// config converts a validated raw document into a Config.
func (cv *configurationValidator) config() *Config {
	cfg := &Config{
		Files:         cv.raw.Files.Clone(),
		Tailwind:      *cv.raw.Tailwind,
		AliasFallback: cv.fallback,
		Exclude: ExcludeConfig{
			Extensions: append([]string(nil), (*cv.raw.Exclude.Extensions)...),
			Patterns:   append([]string(nil), cv.raw.Exclude.Patterns...),
		},
	}
	if cv.raw.Strict != nil {
		cfg.Strict = *cv.raw.Strict
	}
	return cfg
}

func describeDecodeError(err error) []string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return []string{fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)}
	case errors.As(err, &syntaxErr):
		return []string{fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err)}
	default:
		return []string{err.Error()}
	}
}

func validationError(problems []string) error {
	return ferrors.WrapError(ErrInvalidConfig, ferrors.CategoryValidation,
		fmt.Sprintf("%s does not match the expected shape: %s", FileName, strings.Join(problems, "; "))).
		Fatal().
		WithContext("problems", problems).
		Build()
}
