package service

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
)

type MesaService interface {
	Crear(ctx context.Context, req dto.CrearMesaRequest) (*model.Mesa, error)
	List(ctx context.Context) ([]model.Mesa, error)
	AsignarCamarero(ctx context.Context, mesaID, camareroID uuid.UUID) (*model.Mesa, error)
}

type mesaService struct {
	mesas repository.MesaRepository
}

func NewMesaService(mesas repository.MesaRepository) MesaService {
	return &mesaService{mesas: mesas}
}

func (s *mesaService) Crear(ctx context.Context, req dto.CrearMesaRequest) (*model.Mesa, error) {
	m := &model.Mesa{Sala: req.Sala, Numero: req.Numero}
	if req.CamareroID != nil {
		id, err := uuid.Parse(*req.CamareroID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "camarero_id inválido"}
		}
		m.CamareroID = &id
	}
	if err := s.mesas.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *mesaService) List(ctx context.Context) ([]model.Mesa, error) {
	return s.mesas.List(ctx)
}

func (s *mesaService) AsignarCamarero(ctx context.Context, mesaID, camareroID uuid.UUID) (*model.Mesa, error) {
	m, err := s.mesas.FindByID(ctx, mesaID)
	if err != nil {
		return nil, notFoundOr("mesa", mesaID, err)
	}
	m.CamareroID = &camareroID
	if err := s.mesas.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
