// Package auth contiene los casos de uso de sesión: login, restauración y logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
	"github.com/jhoicas/bakery-erp/pkg/jwt"
)

// Mensajes de login mostrados al usuario.
const (
	MsgFormatError        = "Error de formato: el código de empleado debe ser 'xxx-xxx'."
	MsgPasswordRequired   = "La contraseña es obligatoria."
	MsgInvalidCredentials = "Credenciales inválidas"
)

var empCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3}-[a-zA-Z0-9]{3}$`)

// ValidEmpCode informa si el código de empleado tiene el formato xxx-xxx.
func ValidEmpCode(code string) bool {
	return empCodePattern.MatchString(code)
}

// Error error de login con el texto para el usuario.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string { return "auth: " + e.Msg }

// Message implementa domain.Messager.
func (e *Error) Message() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// UseCase casos de uso de sesión sobre el estado persistido del cliente.
type UseCase struct {
	api   ports.AuthAPI
	state repository.SessionStateStore
	now   func() time.Time
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(api ports.AuthAPI, state repository.SessionStateStore, log zerolog.Logger) *UseCase {
	return &UseCase{api: api, state: state, now: time.Now, log: log}
}

// Login valida el formato del código antes de ir a la red, autentica contra el backend y
// persiste tokens y perfil.
func (uc *UseCase) Login(ctx context.Context, empCode, password string) (*entity.User, error) {
	empCode = strings.TrimSpace(empCode)
	if !ValidEmpCode(empCode) {
		return nil, &Error{Msg: MsgFormatError, Err: domain.ErrInvalidInput}
	}
	if password == "" {
		return nil, &Error{Msg: MsgPasswordRequired, Err: domain.ErrInvalidInput}
	}

	resp, err := uc.api.Login(ctx, dto.LoginRequest{EmpCode: empCode, Password: password})
	if err != nil {
		var re ports.ResponseError
		if errors.As(err, &re) && re.HasResponse() {
			msg := re.ServerDetail()
			if msg == "" {
				msg = MsgInvalidCredentials
			}
			uc.log.Warn().Str("emp_code", empCode).Msg("auth: login rechazado")
			return nil, &Error{Msg: msg, Err: err}
		}
		return nil, err
	}
	if resp.Access == "" {
		return nil, &Error{Msg: MsgInvalidCredentials, Err: domain.ErrUnauthorized}
	}

	user := toUser(resp.User, empCode)
	if err := uc.state.SaveTokens(entity.Tokens{Access: resp.Access, Refresh: resp.Refresh}); err != nil {
		return nil, fmt.Errorf("auth: guardar tokens: %w", err)
	}
	if err := uc.state.SaveUser(user); err != nil {
		return nil, fmt.Errorf("auth: guardar usuario: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("auth: sesión iniciada")
	return user, nil
}

func toUser(r dto.UserRecord, empCode string) *entity.User {
	role, ok := entity.ParseRole(r.Role)
	if !ok {
		role = entity.Role(strings.TrimSpace(r.Role))
	}
	code := r.EmpCode
	if code == "" {
		code = empCode
	}
	return &entity.User{
		ID:      r.ID.String(),
		Name:    r.Name,
		Email:   r.Email,
		EmpCode: code,
		Role:    role,
	}
}

// Restore devuelve el usuario persistido o nil si no hay sesión (o estaba corrupta).
func (uc *UseCase) Restore() (*entity.User, error) {
	user, err := uc.state.LoadUser()
	if err != nil {
		return nil, fmt.Errorf("auth: restaurar sesión: %w", err)
	}
	return user, nil
}

// CurrentUser como Restore pero sin sesión devuelve domain.ErrNotLoggedIn.
func (uc *UseCase) CurrentUser() (*entity.User, error) {
	user, err := uc.Restore()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return user, nil
}

// Logout borra todo el estado persistido.
func (uc *UseCase) Logout() error {
	if err := uc.state.Clear(); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	uc.log.Info().Msg("auth: sesión terminada")
	return nil
}

// Status estado de la sesión: usuario, bodega activa y expiración del access token
// (leída de los claims sin verificar la firma).
func (uc *UseCase) Status() (*dto.SessionResponse, error) {
	user, err := uc.Restore()
	if err != nil {
		return nil, err
	}
	out := &dto.SessionResponse{LoggedIn: user != nil, User: user}
	if user == nil {
		return out, nil
	}
	if out.Warehouse, err = uc.state.LoadWarehouse(); err != nil {
		return nil, fmt.Errorf("auth: leer bodega: %w", err)
	}
	token, err := uc.state.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: leer token: %w", err)
	}
	if token == "" {
		return out, nil
	}
	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		uc.log.Debug().Err(err).Msg("auth: access token ilegible")
		return out, nil
	}
	if exp != nil {
		out.TokenExpiresAt = exp
		out.TokenExpired = !uc.now().Before(*exp)
	}
	return out, nil
}
