package service

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error)
	Detalle(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, page, limit int) ([]model.Cliente, int64, error)
}

type clienteService struct {
	clientes repository.ClienteRepository
}

func NewClienteService(clientes repository.ClienteRepository) ClienteService {
	return &clienteService{clientes: clientes}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	c := &model.Cliente{
		Nombre:       req.Nombre,
		Email:        req.Email,
		Telefono:     req.Telefono,
		DescuentoPct: req.DescuentoPct,
	}
	if err := s.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error) {
	c, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("cliente", id, err)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.DescuentoPct != nil {
		c.DescuentoPct = req.DescuentoPct
	}
	if err := s.clientes.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) Detalle(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("cliente", id, err)
	}
	return c, nil
}

func (s *clienteService) List(ctx context.Context, page, limit int) ([]model.Cliente, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.clientes.List(ctx, page, limit)
}
