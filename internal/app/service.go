package app

import (
	"cody-schema/internal/adapters"
	"cody-schema/internal/ports"
)

type Service struct {
	Documents        ports.DocumentSourcePort
	Watcher          ports.DocumentWatcherPort
	DefinitionsStore func(path string) ports.DefinitionsStorePort
	ReferenceLoader  func(dir string) ports.ReferenceLoaderPort
}

func NewService() Service {
	return Service{
		Documents: adapters.NewDocumentFileAdapter(),
		Watcher:   adapters.NewDocumentWatcher(0),
		DefinitionsStore: func(path string) ports.DefinitionsStorePort {
			return adapters.NewDefinitionsFileAdapter(path)
		},
		ReferenceLoader: func(dir string) ports.ReferenceLoaderPort {
			return adapters.NewReferenceFileAdapter(dir)
		},
	}
}
