package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/application/auth"
	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/api"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/storage"
	"github.com/jhoicas/bakery-erp/pkg/jwt"
)

type fakeAuthAPI struct {
	calls int
	resp  *dto.LoginResponse
	err   error
}

func (f *fakeAuthAPI) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	f.calls++
	return f.resp, f.err
}

func setup(t *testing.T, fake *fakeAuthAPI) (*auth.UseCase, *storage.FileStateStore) {
	t.Helper()
	state := storage.NewFileStateStore(afero.NewMemMapFs(), "/s/state.json", zerolog.Nop())
	return auth.NewUseCase(fake, state, zerolog.Nop()), state
}

func TestValidEmpCode(t *testing.T) {
	assert.True(t, auth.ValidEmpCode("abc-123"))
	assert.True(t, auth.ValidEmpCode("A1B-C2D"))
	assert.False(t, auth.ValidEmpCode("abc123"))
	assert.False(t, auth.ValidEmpCode("ab-1234"))
	assert.False(t, auth.ValidEmpCode("abc-12_"))
	assert.False(t, auth.ValidEmpCode(""))
}

func TestLogin_FormatoInvalidoNoLlamaAlBackend(t *testing.T) {
	fake := &fakeAuthAPI{}
	uc, _ := setup(t, fake)

	_, err := uc.Login(context.Background(), "abc123", "secreto")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, auth.MsgFormatError, domain.Message(err))
	assert.Zero(t, fake.calls)
}

func TestLogin_PersisteTokensYPerfil(t *testing.T) {
	access, err := jwt.Generate("k", "5", "access", time.Hour)
	require.NoError(t, err)
	fake := &fakeAuthAPI{resp: &dto.LoginResponse{
		Access:  access,
		Refresh: "refresh-1",
		User:    dto.UserRecord{ID: "5", Name: "Luis", Role: "warehouse"},
	}}
	uc, state := setup(t, fake)

	user, err := uc.Login(context.Background(), "lui-001", "secreto")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWarehouse, user.Role)
	assert.Equal(t, "lui-001", user.EmpCode)

	tok, err := state.AccessToken()
	require.NoError(t, err)
	assert.Equal(t, access, tok)

	restored, err := uc.Restore()
	require.NoError(t, err)
	assert.Equal(t, user, restored)

	st, err := uc.Status()
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	require.NotNil(t, st.TokenExpiresAt)
	assert.False(t, st.TokenExpired)
}

func TestLogin_ErrorDelServidorUsaDetail(t *testing.T) {
	fake := &fakeAuthAPI{err: &api.Error{Kind: api.KindServer, StatusCode: http.StatusUnauthorized, Detail: "No active account found"}}
	uc, _ := setup(t, fake)

	_, err := uc.Login(context.Background(), "abc-123", "x")
	assert.Equal(t, "No active account found", domain.Message(err))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ErrorDelServidorSinDetail(t *testing.T) {
	fake := &fakeAuthAPI{err: &api.Error{Kind: api.KindServer, StatusCode: http.StatusBadRequest}}
	uc, _ := setup(t, fake)

	_, err := uc.Login(context.Background(), "abc-123", "x")
	assert.Equal(t, auth.MsgInvalidCredentials, domain.Message(err))
}

func TestLogin_SinRespuesta(t *testing.T) {
	fake := &fakeAuthAPI{err: &api.Error{Kind: api.KindTransport, Err: errors.New("dial tcp: refused")}}
	uc, _ := setup(t, fake)

	_, err := uc.Login(context.Background(), "abc-123", "x")
	assert.Equal(t, api.MsgNoResponse, domain.Message(err))
}

func TestLogout_BorraLaSesion(t *testing.T) {
	uc, state := setup(t, &fakeAuthAPI{})
	require.NoError(t, state.SaveUser(&entity.User{ID: "1", Name: "Ana", Role: entity.RoleAdmin}))
	require.NoError(t, state.SaveWarehouse(&entity.Warehouse{ID: "w1"}))

	require.NoError(t, uc.Logout())

	_, err := uc.CurrentUser()
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
	st, err := uc.Status()
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)
}

func TestStatus_TokenExpirado(t *testing.T) {
	uc, state := setup(t, &fakeAuthAPI{})
	expired, err := jwt.Generate("k", "1", "access", -time.Minute)
	require.NoError(t, err)
	require.NoError(t, state.SaveTokens(entity.Tokens{Access: expired}))
	require.NoError(t, state.SaveUser(&entity.User{ID: "1", Name: "Ana", Role: entity.RoleAdmin}))

	st, err := uc.Status()
	require.NoError(t, err)
	assert.True(t, st.TokenExpired)
}
