package repository

import (
	"context"
	"errors"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogoRepository serves the read-mostly catalog: productos,
// recetas, subingredientes and price lists. The sale engine consumes
// it read-only.
type CatalogoRepository interface {
	CreateProducto(ctx context.Context, p *model.Producto) error
	UpdateProducto(ctx context.Context, p *model.Producto) error
	// FindProductoByID preloads the receta tree needed by the resolver.
	FindProductoByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindProductoBySKU(ctx context.Context, sku string) (*model.Producto, error)
	ListProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error)

	// GuardarReceta replaces the producto's receta items atomically.
	GuardarReceta(ctx context.Context, productoID uuid.UUID, items []model.RecetaItem) error

	CreateSubIngrediente(ctx context.Context, s *model.SubIngrediente) error
	ListSubIngredientes(ctx context.Context, padreID uuid.UUID) ([]model.SubIngrediente, error)

	CreateLista(ctx context.Context, l *model.ListaPrecio) error
	// ActivarLista makes one list activa and deactivates the rest.
	ActivarLista(ctx context.Context, id uuid.UUID) error
	SetListaItem(ctx context.Context, item *model.ListaPrecioItem) error
	// PrecioActivo resolves the default unit price: the active price
	// list's entry when present, the producto's list price otherwise.
	PrecioActivo(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CreateProducto(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogoRepo) UpdateProducto(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *catalogoRepo) FindProductoByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Receta.Items.Ingrediente").
		Preload("Receta.Items.SubIngrediente").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *catalogoRepo) FindProductoBySKU(ctx context.Context, sku string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "sku = ?", sku).Error
	return &p, err
}

func (r *catalogoRepo) ListProductos(ctx context.Context, soloActivos bool) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Categoria")
	if soloActivos {
		q = q.Where("activo = true")
	}
	var productos []model.Producto
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *catalogoRepo) GuardarReceta(ctx context.Context, productoID uuid.UUID, items []model.RecetaItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var receta model.Receta
		err := tx.Where("producto_id = ?", productoID).First(&receta).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			receta = model.Receta{ProductoID: productoID}
			if err := tx.Create(&receta).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Where("receta_id = ?", receta.ID).Delete(&model.RecetaItem{}).Error; err != nil {
				return err
			}
		}
		for i := range items {
			items[i].RecetaID = receta.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *catalogoRepo) CreateSubIngrediente(ctx context.Context, s *model.SubIngrediente) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogoRepo) ListSubIngredientes(ctx context.Context, padreID uuid.UUID) ([]model.SubIngrediente, error) {
	var subs []model.SubIngrediente
	err := r.db.WithContext(ctx).Where("padre_id = ?", padreID).Find(&subs).Error
	return subs, err
}

func (r *catalogoRepo) CreateLista(ctx context.Context, l *model.ListaPrecio) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *catalogoRepo) ActivarLista(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ListaPrecio{}).Where("activa = true").
			Update("activa", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.ListaPrecio{}).Where("id = ?", id).Update("activa", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *catalogoRepo) SetListaItem(ctx context.Context, item *model.ListaPrecioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogoRepo) PrecioActivo(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	var item model.ListaPrecioItem
	err := r.db.WithContext(ctx).
		Joins("JOIN listas_precio ON listas_precio.id = listas_precio_items.lista_id AND listas_precio.activa = true").
		Where("listas_precio_items.producto_id = ?", productoID).
		First(&item).Error
	if err == nil {
		return item.Precio, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}
	var p model.Producto
	if err := r.db.WithContext(ctx).Select("precio_lista").First(&p, "id = ?", productoID).Error; err != nil {
		return decimal.Zero, err
	}
	return p.PrecioLista, nil
}
