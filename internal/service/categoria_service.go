package service

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
)

// CategoriaService manages the product category tree. The tree lives
// in a flat arena (id → node, nullable parent id); traversal is
// iterative over in-memory indexes, never recursive SQL.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*model.CategoriaProducto, error)
	// Arbol returns the full forest, children nested under parents.
	Arbol(ctx context.Context) ([]dto.CategoriaResponse, error)
	// Descendientes lists every category under one node, breadth-first.
	Descendientes(ctx context.Context, id uuid.UUID) ([]model.CategoriaProducto, error)
}

type categoriaService struct {
	categorias repository.CategoriaRepository
}

func NewCategoriaService(categorias repository.CategoriaRepository) CategoriaService {
	return &categoriaService{categorias: categorias}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*model.CategoriaProducto, error) {
	c := &model.CategoriaProducto{Nombre: req.Nombre}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "parent_id inválido"}
		}
		if _, err := s.categorias.FindByID(ctx, parentID); err != nil {
			return nil, notFoundOr("categoria", parentID, err)
		}
		c.ParentID = &parentID
	}
	if err := s.categorias.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoriaService) Arbol(ctx context.Context) ([]dto.CategoriaResponse, error) {
	todas, err := s.categorias.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	hijosDe := make(map[uuid.UUID][]int)
	var raices []int
	for i, c := range todas {
		if c.ParentID == nil {
			raices = append(raices, i)
			continue
		}
		hijosDe[*c.ParentID] = append(hijosDe[*c.ParentID], i)
	}

	// Iterative build: resolve leaves first by walking an explicit
	// stack instead of recursing.
	construir := func(raiz int) dto.CategoriaResponse {
		nodos := make(map[uuid.UUID]*dto.CategoriaResponse)
		orden := []int{raiz}
		for k := 0; k < len(orden); k++ {
			idx := orden[k]
			c := todas[idx]
			resp := dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre}
			if c.ParentID != nil {
				pid := c.ParentID.String()
				resp.ParentID = &pid
			}
			nodos[c.ID] = &resp
			orden = append(orden, hijosDe[c.ID]...)
		}
		// Attach children to parents from the deepest level up.
		for k := len(orden) - 1; k > 0; k-- {
			c := todas[orden[k]]
			padre := nodos[*c.ParentID]
			padre.Hijas = append([]dto.CategoriaResponse{*nodos[c.ID]}, padre.Hijas...)
		}
		return *nodos[todas[raiz].ID]
	}

	arbol := make([]dto.CategoriaResponse, 0, len(raices))
	for _, r := range raices {
		arbol = append(arbol, construir(r))
	}
	return arbol, nil
}

func (s *categoriaService) Descendientes(ctx context.Context, id uuid.UUID) ([]model.CategoriaProducto, error) {
	if _, err := s.categorias.FindByID(ctx, id); err != nil {
		return nil, notFoundOr("categoria", id, err)
	}
	todas, err := s.categorias.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	hijosDe := make(map[uuid.UUID][]model.CategoriaProducto)
	for _, c := range todas {
		if c.ParentID != nil {
			hijosDe[*c.ParentID] = append(hijosDe[*c.ParentID], c)
		}
	}

	var resultado []model.CategoriaProducto
	cola := []uuid.UUID{id}
	for len(cola) > 0 {
		actual := cola[0]
		cola = cola[1:]
		for _, hijo := range hijosDe[actual] {
			resultado = append(resultado, hijo)
			cola = append(cola, hijo.ID)
		}
	}
	return resultado, nil
}
