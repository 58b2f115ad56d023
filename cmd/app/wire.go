//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/funzone-site/internal/bootstrap"
	"github.com/yanqian/funzone-site/internal/domain/catalog"
	"github.com/yanqian/funzone-site/internal/domain/contact"
	"github.com/yanqian/funzone-site/internal/domain/gallery"
	"github.com/yanqian/funzone-site/internal/infra/config"
	httpiface "github.com/yanqian/funzone-site/internal/interface/http"
	"github.com/yanqian/funzone-site/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideTelemetry,
		provideContactConfig,
		provideCatalogRepository,
		provideContactStore,
		provideGalleryResolver,
		catalog.NewService,
		contact.NewService,
		gallery.NewService,
		wire.Bind(new(contact.BranchFinder), new(catalog.Service)),
		wire.Bind(new(gallery.BranchReader), new(catalog.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
