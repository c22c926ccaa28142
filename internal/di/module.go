package di

import (
	"github.com/polkiloo/registrar/internal/app"
	"github.com/polkiloo/registrar/internal/config"
	"github.com/polkiloo/registrar/internal/logger"
	"github.com/polkiloo/registrar/internal/pkg/auth"
	"github.com/polkiloo/registrar/internal/server/http/router"
	"github.com/polkiloo/registrar/internal/storage/postgres"
	"github.com/polkiloo/registrar/internal/usecase"
	"go.uber.org/fx"
)

// Module assembles the registrar dependency graph. opts are appended last so
// callers can fx.Replace any component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
