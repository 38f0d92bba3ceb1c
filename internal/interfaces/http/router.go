package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias que el router inyecta en los handlers.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	TagUC      *usecase.TagUseCase
	ProductUC  *usecase.ProductUseCase
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	tags := api.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Post("/", tagHandler.Create)
	tags.Get("/", tagHandler.List)
	tags.Get("/:id", tagHandler.GetByID)
	tags.Patch("/:id", tagHandler.Update)
	tags.Delete("/:id", tagHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
