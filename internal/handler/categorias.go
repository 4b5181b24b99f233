package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una categoría, opcionalmente colgada de otra
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCategoriaRequest true "Categoría"
// @Success 201 {object} dto.CategoriaResponse
// @Failure 404 {object} apierror.APIError "Categoría padre inexistente"
// @Router /v1/categorias [post]
func (h *CategoriasHandler) Crear(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.CategoriaResponse{ID: cat.ID.String(), Nombre: cat.Nombre}
	if cat.ParentID != nil {
		parent := cat.ParentID.String()
		resp.ParentID = &parent
	}
	c.JSON(http.StatusCreated, resp)
}

// Arbol godoc
// @Summary Devuelve el árbol completo de categorías
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/categorias [get]
func (h *CategoriasHandler) Arbol(c *gin.Context) {
	arbol, err := h.svc.Arbol(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, arbol)
}

// Descendientes godoc
// @Summary Lista todas las categorías bajo un nodo
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la categoría"
// @Success 200 {array} dto.CategoriaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categorias/{id}/descendientes [get]
func (h *CategoriasHandler) Descendientes(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	categorias, err := h.svc.Descendientes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, cat := range categorias {
		item := dto.CategoriaResponse{ID: cat.ID.String(), Nombre: cat.Nombre}
		if cat.ParentID != nil {
			parent := cat.ParentID.String()
			item.ParentID = &parent
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}
