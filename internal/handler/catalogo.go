package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// CrearProducto godoc
// @Summary Crea un producto del catálogo
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 409 {object} apierror.APIError "SKU duplicado"
// @Router /v1/productos [post]
func (h *CatalogoHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productoToDTO(p))
}

// ActualizarProducto godoc
// @Summary Actualiza campos de un producto
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id} [put]
func (h *CatalogoHandler) ActualizarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.ActualizarProducto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productoToDTO(p))
}

// DetalleProducto godoc
// @Summary Obtiene un producto con su receta
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id} [get]
func (h *CatalogoHandler) DetalleProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.DetalleProducto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productoToDTO(p))
}

// ListarProductos godoc
// @Summary Lista el catálogo
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Param incluir_inactivos query bool false "Incluye productos desactivados"
// @Success 200 {array} dto.ProductoResponse
// @Router /v1/productos [get]
func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	soloActivos := c.Query("incluir_inactivos") != "true"
	productos, err := h.svc.ListProductos(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToDTO(&productos[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PrecioVigente godoc
// @Summary Precio efectivo de un producto según la lista activa
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} map[string]string
// @Router /v1/productos/{id}/precio [get]
func (h *CatalogoHandler) PrecioVigente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	precio, err := h.svc.PrecioVigente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"producto_id": id.String(), "precio": precio})
}

// GuardarReceta godoc
// @Summary Reemplaza la receta de un producto de forma atómica
// @Tags recetas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarRecetaRequest true "Receta completa"
// @Success 200 {object} dto.RecetaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/recetas [put]
func (h *CatalogoHandler) GuardarReceta(c *gin.Context) {
	var req dto.GuardarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.GuardarReceta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recetaToDTO(p))
}

// DetalleReceta godoc
// @Summary Obtiene la receta de un producto
// @Tags recetas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.RecetaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id}/receta [get]
func (h *CatalogoHandler) DetalleReceta(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.DetalleProducto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recetaToDTO(p))
}

// CrearSubIngrediente godoc
// @Summary Define una subunidad de un ingrediente con factor de conversión
// @Tags recetas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSubIngredienteRequest true "Subingrediente"
// @Success 201 {object} map[string]string
// @Router /v1/subingredientes [post]
func (h *CatalogoHandler) CrearSubIngrediente(c *gin.Context) {
	var req dto.CrearSubIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sub, err := h.svc.CrearSubIngrediente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       sub.ID.String(),
		"padre_id": sub.PadreID.String(),
		"nombre":   sub.Nombre,
		"factor":   sub.Factor,
	})
}

// CrearLista godoc
// @Summary Crea una lista de precios inactiva
// @Tags precios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearListaPrecioRequest true "Lista"
// @Success 201 {object} map[string]string
// @Router /v1/listas-precio [post]
func (h *CatalogoHandler) CrearLista(c *gin.Context) {
	var req dto.CrearListaPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	lista, err := h.svc.CrearLista(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": lista.ID.String(), "nombre": lista.Nombre, "activa": lista.Activa})
}

// ActivarLista godoc
// @Summary Activa una lista de precios y desactiva la anterior
// @Tags precios
// @Security BearerAuth
// @Param id path string true "ID de la lista"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/listas-precio/{id}/activar [post]
func (h *CatalogoHandler) ActivarLista(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ActivarLista(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetListaItem godoc
// @Summary Fija el precio de un producto dentro de una lista
// @Tags precios
// @Accept json
// @Security BearerAuth
// @Param body body dto.SetListaItemRequest true "Precio por lista"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/listas-precio/items [put]
func (h *CatalogoHandler) SetListaItem(c *gin.Context) {
	var req dto.SetListaItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetListaItem(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
