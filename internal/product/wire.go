package product

import (
	"net/http"

	"go.uber.org/zap"

	"tracknstock/internal/product/controller"
	"tracknstock/internal/product/repository"
	"tracknstock/internal/product/service"
	"tracknstock/internal/product/usecase"
)

// NewUseCase wires the API repository, the cached store and the use case.
func NewUseCase(client *http.Client, baseURL string, logger *zap.Logger, observer repository.CallObserver) *usecase.ManageProductsUseCase {
	repo := repository.NewAPIRepository(client, baseURL, logger, observer)
	store := service.NewInventoryService(repo, logger)
	return usecase.NewManageProductsUseCase(store, logger)
}

func NewModule(client *http.Client, baseURL string, views controller.Renderer, logger *zap.Logger, observer repository.CallObserver) *controller.InventoryController {
	uc := NewUseCase(client, baseURL, logger, observer)
	return controller.NewInventoryController(uc, views, logger)
}
