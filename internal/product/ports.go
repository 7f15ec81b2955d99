package product

import (
	"tracknstock/internal/product/controller"
	"tracknstock/internal/product/repository"
	"tracknstock/internal/product/service"
	"tracknstock/internal/product/usecase"
)

var (
	_ service.Repository               = (*repository.APIRepository)(nil)
	_ usecase.Store                    = (*service.InventoryService)(nil)
	_ controller.ManageProductsUseCase = (*usecase.ManageProductsUseCase)(nil)
)
