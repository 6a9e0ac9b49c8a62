package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/placescout/placescout/cmd/placescout/container"
	"github.com/placescout/placescout/internal/settings"
)

type API struct {
	settings  settings.Settings
	container container.Container
	validate  *validator.Validate
	logger    *zerolog.Logger
}

type Error struct {
	Error string `json:"error"`
}

func New(
	settings settings.Settings,
	container container.Container,
	validate *validator.Validate,
	logger *zerolog.Logger,
) *API {
	return &API{
		settings:  settings,
		container: container,
		validate:  validate,
		logger:    logger,
	}
}
