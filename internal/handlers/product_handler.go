package handlers

import (
	"duckstore/internal/middleware"
	"duckstore/internal/models"
	"duckstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MessageResponse is the success body of update and delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductHandler handles HTTP requests for the duck catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. auth guards the write routes
// and the key/value lookup.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", auth, h.HandleCreate)
	productRoutes.Get("/", h.HandleGetAll)
	productRoutes.Post("/query", h.HandleQueryGeneric)
	productRoutes.Get("/:id", h.HandleGetByID)
	productRoutes.Get("/:key/:value", auth, h.HandleQueryByKeyValue)
	productRoutes.Put("/:id", auth, h.HandleUpdate)
	productRoutes.Delete("/:id", auth, h.HandleDelete)
}

// HandleCreate creates a product owned by the authenticated user.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), middleware.UserID(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetAll lists every product.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetByID returns one product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleUpdate applies a partial update. The new state is not returned.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(err)
	}

	if err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), &patch); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: "Duck was successfully updated."})
}

// HandleDelete deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: "Duck was successfully deleted."})
}

// HandleQueryByKeyValue matches one allow-listed field against a path value.
func (h *ProductHandler) HandleQueryByKeyValue(c *fiber.Ctx) error {
	products, err := h.service.QueryByKeyValue(c.UserContext(), c.Params("key"), c.Params("value"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleQueryGeneric filters products by the fields of a JSON object body.
func (h *ProductHandler) HandleQueryGeneric(c *fiber.Ctx) error {
	body := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return invalidBody(err)
		}
	}

	products, err := h.service.QueryGeneric(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.JSON(products)
}
