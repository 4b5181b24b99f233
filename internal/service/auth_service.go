package service

import (
	"context"
	"errors"
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrCredenciales is deliberately vague: the caller never learns
// whether the username or the secret was wrong.
var ErrCredenciales = errors.New("credenciales inválidas")

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

// AuthService authenticates operators and manages their accounts. Two
// login paths exist: username+password (back office) and username+PIN
// (fast keypad login at the till).
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ValidarToken(tokenStr string) (*Claims, error)

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*model.Usuario, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*model.Usuario, error)
	ListUsuarios(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	usuarios  repository.UsuarioRepository
	cajas     repository.CajaRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(usuarios repository.UsuarioRepository, cajas repository.CajaRepository, jwtSecret string, jwtTTL time.Duration) AuthService {
	return &authService{
		usuarios:  usuarios,
		cajas:     cajas,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Password == "" && req.Pin == "" {
		return nil, ErrCredenciales
	}
	u, err := s.usuarios.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if !u.Activo {
		return nil, ErrCredenciales
	}

	switch {
	case req.Password != "":
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return nil, ErrCredenciales
		}
	default:
		if u.PinHash == nil ||
			bcrypt.CompareHashAndPassword([]byte(*u.PinHash), []byte(req.Pin)) != nil {
			return nil, ErrCredenciales
		}
	}

	token, err := s.emitirToken(u)
	if err != nil {
		return nil, err
	}
	log.Info().Str("usuario", u.Username).Str("rol", string(u.Rol)).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, Usuario: usuarioToDTO(u)}, nil
}

func (s *authService) emitirToken(u *model.Usuario) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		Rol:      string(u.Rol),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*model.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Rol:          model.Rol(req.Rol),
		PasswordHash: string(hash),
		Activo:       true,
	}
	if req.Pin != nil {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(pinHash)
		u.PinHash = &h
	}
	cajas, err := s.resolverCajas(ctx, req.CajaIDs)
	if err != nil {
		return nil, err
	}
	u.CajasAsignadas = cajas

	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*model.Usuario, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("usuario", id, err)
	}
	if req.Nombre != nil {
		u.Nombre = *req.Nombre
	}
	if req.Rol != nil {
		u.Rol = model.Rol(*req.Rol)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if req.Pin != nil {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(pinHash)
		u.PinHash = &h
	}
	if req.CajaIDs != nil {
		cajas, err := s.resolverCajas(ctx, req.CajaIDs)
		if err != nil {
			return nil, err
		}
		u.CajasAsignadas = cajas
	}
	if err := s.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) resolverCajas(ctx context.Context, ids []string) ([]model.Caja, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cajas := make([]model.Caja, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "caja_id inválido"}
		}
		caja, err := s.cajas.FindCajaByID(ctx, id)
		if err != nil {
			return nil, notFoundOr("caja", id, err)
		}
		cajas = append(cajas, *caja)
	}
	return cajas, nil
}

func (s *authService) ListUsuarios(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	return s.usuarios.List(ctx, incluirInactivos)
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.Reactivar(ctx, id)
}

func usuarioToDTO(u *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Rol:      string(u.Rol),
		Activo:   u.Activo,
	}
	for _, c := range u.CajasAsignadas {
		resp.CajaIDs = append(resp.CajaIDs, c.ID.String())
	}
	return resp
}
