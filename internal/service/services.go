package service

import (
	"github.com/partydeck/monikers-server/internal/config"
	"github.com/partydeck/monikers-server/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Catalog *CatalogService
	History *HistoryService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(cfg),
		Catalog: NewCatalogService(repos.Card),
		History: NewHistoryService(repos.Match),
	}
}
