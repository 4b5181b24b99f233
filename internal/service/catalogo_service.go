package service

import (
	"context"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogoService manages productos, recetas, sub-ingredientes and
// price lists. It validates referential integrity (ingredients exist,
// sub-ingredients belong to the referenced parent) before anything
// touches the database.
type CatalogoService interface {
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*model.Producto, error)
	DetalleProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	ListProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error)
	PrecioVigente(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error)

	GuardarReceta(ctx context.Context, req dto.GuardarRecetaRequest) (*model.Producto, error)
	CrearSubIngrediente(ctx context.Context, req dto.CrearSubIngredienteRequest) (*model.SubIngrediente, error)

	CrearLista(ctx context.Context, req dto.CrearListaPrecioRequest) (*model.ListaPrecio, error)
	ActivarLista(ctx context.Context, id uuid.UUID) error
	SetListaItem(ctx context.Context, req dto.SetListaItemRequest) error
}

type catalogoService struct {
	catalogo   repository.CatalogoRepository
	stock      repository.StockRepository
	categorias repository.CategoriaRepository
}

func NewCatalogoService(catalogo repository.CatalogoRepository, stock repository.StockRepository, categorias repository.CategoriaRepository) CatalogoService {
	return &catalogoService{catalogo: catalogo, stock: stock, categorias: categorias}
}

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "categoria_id inválido"}
	}
	if _, err := s.categorias.FindByID(ctx, categoriaID); err != nil {
		return nil, notFoundOr("categoria", categoriaID, err)
	}
	p := &model.Producto{
		Nombre:        req.Nombre,
		SKU:           req.SKU,
		CategoriaID:   categoriaID,
		PrecioLista:   req.PrecioLista,
		ControlaStock: req.ControlaStock,
		Favorito:      req.Favorito,
		Activo:        true,
	}
	if err := s.catalogo.CreateProducto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*model.Producto, error) {
	p, err := s.catalogo.FindProductoByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("producto", id, err)
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.CategoriaID != nil {
		categoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "categoria_id inválido"}
		}
		if _, err := s.categorias.FindByID(ctx, categoriaID); err != nil {
			return nil, notFoundOr("categoria", categoriaID, err)
		}
		p.CategoriaID = categoriaID
	}
	if req.PrecioLista != nil {
		p.PrecioLista = *req.PrecioLista
	}
	if req.ControlaStock != nil {
		p.ControlaStock = *req.ControlaStock
	}
	if req.Favorito != nil {
		p.Favorito = *req.Favorito
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.catalogo.UpdateProducto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) DetalleProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := s.catalogo.FindProductoByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("producto", id, err)
	}
	return p, nil
}

func (s *catalogoService) ListProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error) {
	return s.catalogo.ListProductos(ctx, soloActivos)
}

func (s *catalogoService) PrecioVigente(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	return s.catalogo.PrecioActivo(ctx, productoID)
}

func (s *catalogoService) GuardarReceta(ctx context.Context, req dto.GuardarRecetaRequest) (*model.Producto, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "producto_id inválido"}
	}
	if _, err := s.catalogo.FindProductoByID(ctx, productoID); err != nil {
		return nil, notFoundOr("producto", productoID, err)
	}

	items := make([]model.RecetaItem, 0, len(req.Items))
	for _, it := range req.Items {
		ingredienteID, err := uuid.Parse(it.IngredienteID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "ingrediente_id inválido"}
		}
		if _, err := s.stock.FindIngrediente(ctx, ingredienteID); err != nil {
			return nil, notFoundOr("ingrediente", ingredienteID, err)
		}
		item := model.RecetaItem{
			IngredienteID: ingredienteID,
			Cantidad:      it.Cantidad,
		}
		if it.SubIngredienteID != nil {
			subID, err := uuid.Parse(*it.SubIngredienteID)
			if err != nil {
				return nil, &poserror.ConfigurationError{Detalle: "sub_ingrediente_id inválido"}
			}
			subs, err := s.catalogo.ListSubIngredientes(ctx, ingredienteID)
			if err != nil {
				return nil, err
			}
			encontrado := false
			for _, sub := range subs {
				if sub.ID == subID {
					encontrado = true
					break
				}
			}
			if !encontrado {
				return nil, &poserror.ConfigurationError{
					Detalle: fmt.Sprintf("subingrediente %s no pertenece al ingrediente %s", subID, ingredienteID),
				}
			}
			item.SubIngredienteID = &subID
		}
		items = append(items, item)
	}

	if err := s.catalogo.GuardarReceta(ctx, productoID, items); err != nil {
		return nil, err
	}
	return s.catalogo.FindProductoByID(ctx, productoID)
}

func (s *catalogoService) CrearSubIngrediente(ctx context.Context, req dto.CrearSubIngredienteRequest) (*model.SubIngrediente, error) {
	padreID, err := uuid.Parse(req.PadreID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "padre_id inválido"}
	}
	if _, err := s.stock.FindIngrediente(ctx, padreID); err != nil {
		return nil, notFoundOr("ingrediente", padreID, err)
	}
	sub := &model.SubIngrediente{
		PadreID: padreID,
		Nombre:  req.Nombre,
		Factor:  req.Factor,
	}
	if err := s.catalogo.CreateSubIngrediente(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *catalogoService) CrearLista(ctx context.Context, req dto.CrearListaPrecioRequest) (*model.ListaPrecio, error) {
	l := &model.ListaPrecio{Nombre: req.Nombre}
	if err := s.catalogo.CreateLista(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *catalogoService) ActivarLista(ctx context.Context, id uuid.UUID) error {
	return notFoundOrNil("lista de precios", id, s.catalogo.ActivarLista(ctx, id))
}

func (s *catalogoService) SetListaItem(ctx context.Context, req dto.SetListaItemRequest) error {
	listaID, err := uuid.Parse(req.ListaID)
	if err != nil {
		return &poserror.ConfigurationError{Detalle: "lista_id inválido"}
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return &poserror.ConfigurationError{Detalle: "producto_id inválido"}
	}
	if _, err := s.catalogo.FindProductoByID(ctx, productoID); err != nil {
		return notFoundOr("producto", productoID, err)
	}
	return s.catalogo.SetListaItem(ctx, &model.ListaPrecioItem{
		ListaID:    listaID,
		ProductoID: productoID,
		Precio:     req.Precio,
	})
}
