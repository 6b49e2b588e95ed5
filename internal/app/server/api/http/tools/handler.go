package tools

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/breach"
	"windkey/internal/domain/passgen"
)

type Handler struct {
	generator *passgen.Generator
	checker   breach.Checker
	log       *slog.Logger

	middleware huma.Middlewares
}

func NewHandler(generator *passgen.Generator, checker breach.Checker, log *slog.Logger, mws huma.Middlewares) *Handler {
	if generator == nil {
		generator = passgen.NewGenerator(nil)
	}
	return &Handler{
		generator:  generator,
		checker:    checker,
		log:        log.With(slog.String("component", "tools_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.generateOp(), h.generate)
	huma.Register(api, h.strengthOp(), h.strength)
	huma.Register(api, h.breachOp(), h.breach)
}

func (h *Handler) generate(_ context.Context, input *generateInput) (*generateOutput, error) {
	password, err := h.generator.Generate(passgen.Policy{
		Length:           input.Length,
		IncludeUppercase: input.Uppercase,
		IncludeLowercase: input.Lowercase,
		IncludeDigits:    input.Numbers,
		IncludeSymbols:   input.Special,
	})
	if err != nil {
		switch {
		case errors.Is(err, passgen.ErrNoCharacterClassSelected):
			return nil, huma.Error400BadRequest("Please select at least one character type")
		case errors.Is(err, passgen.ErrInvalidLength):
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, huma.Error500InternalServerError("Password generation failed")
	}

	out := &generateOutput{}
	out.Body.Password = password
	out.Body.Length = len(password)
	out.Body.Strength = passgen.Score(password)
	return out, nil
}

func (h *Handler) strength(_ context.Context, input *passwordInput) (*strengthOutput, error) {
	return &strengthOutput{Body: passgen.Score(input.Body.Password)}, nil
}

func (h *Handler) breach(ctx context.Context, input *passwordInput) (*breachOutput, error) {
	if input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Password is required")
	}
	if h.checker == nil {
		return nil, huma.Error503ServiceUnavailable("Breach check is not configured")
	}

	res, err := h.checker.Check(ctx, input.Body.Password)
	if err != nil {
		h.log.Warn("breach check failed", slog.String("error", err.Error()))
		return nil, huma.Error503ServiceUnavailable("Breach service unavailable")
	}

	return &breachOutput{Body: res}, nil
}
