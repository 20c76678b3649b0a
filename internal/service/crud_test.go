package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/mocks"
	"github.com/Olprog59/go-fromagerie/internal/repository/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newClientService() (*ClientService, *mocks.MockRepository[domain.Client, int64], *mocks.MockMetrics) {
	repo := mocks.NewMockRepository(
		func(c *domain.Client) int64 { return c.CodCli },
		func(c *domain.Client, id int64) { c.CodCli = id },
	)
	m := mocks.NewMockMetrics()
	return NewClientService(repo, m), repo, m
}

func newDepartementService() (*DepartementService, *mocks.MockRepository[domain.Departement, string]) {
	repo := mocks.NewMockRepository[domain.Departement, string](
		func(d *domain.Departement) string { return d.Code }, nil,
	)
	return NewDepartementService(repo, nil), repo
}

func TestCRUDService_CreateThenGet(t *testing.T) {
	svc, _, m := newClientService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ClientPatch{Nom: strPtr("John Doe"), Email: strPtr("john@example.com")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.CodCli)

	got, err := svc.Get(ctx, created.CodCli)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, m.Count("client", "create", OutcomeSuccess))
	assert.Equal(t, 1, m.Count("client", "get", OutcomeSuccess))
}

func TestCRUDService_NotFound(t *testing.T) {
	svc, _ := newDepartementService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "999")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "999")
	assert.Equal(t, `departement with code_dept 999 not found`, err.Error())

	_, err = svc.Update(ctx, "999", domain.DepartementPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "999"), ErrNotFound)
}

func TestCRUDService_DeleteThenGet(t *testing.T) {
	svc, _ := newDepartementService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.DepartementPatch{Code: strPtr("75"), Nom: strPtr("Paris")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "75"))
	_, err = svc.Get(ctx, "75")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "75"), ErrNotFound)
}

func TestCRUDService_EmptyUpdateLeavesRowUnchanged(t *testing.T) {
	svc, _ := newDepartementService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.DepartementPatch{Code: strPtr("13"), Nom: strPtr("Bouches-du-Rhône")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "13", domain.DepartementPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestCRUDService_KeyIsImmutable(t *testing.T) {
	svc, repo := newDepartementService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.DepartementPatch{Code: strPtr("01"), Nom: strPtr("Ain")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "01", domain.DepartementPatch{Code: strPtr("02")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "code_dept")
	assert.Equal(t, "01", repo.Items["01"].Code)

	// Repeating the current code is accepted / Répéter le code courant est accepté
	_, err = svc.Update(ctx, "01", domain.DepartementPatch{Code: strPtr("01"), Nom: strPtr("Ain (01)")})
	assert.NoError(t, err)
}

func TestCRUDService_ValidationStopsBeforeStore(t *testing.T) {
	repo := mocks.NewMockRepository(
		func(c *domain.Commune) int64 { return c.ID },
		func(c *domain.Commune, id int64) { c.ID = id },
	)
	svc := NewCommuneService(repo, nil)

	_, err := svc.Create(context.Background(), domain.CommunePatch{Dep: strPtr("123"), CP: strPtr("75001"), Ville: strPtr("X")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "dep")
	assert.Equal(t, 0, repo.CreateCalls)
	assert.Empty(t, repo.Items)
}

func TestCRUDService_ErrorCategories(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind error
		wantMsg  string
	}{
		{
			name:     "Duplicate email",
			repoErr:  &db.DuplicateError{Table: "clients", Column: "emailcli", Value: "john@example.com"},
			wantKind: ErrConflict,
			wantMsg:  `client with emailcli "john@example.com" already exists`,
		},
		{
			name:     "Duplicate without column",
			repoErr:  db.ErrDuplicate,
			wantKind: ErrConflict,
			wantMsg:  "client already exists",
		},
		{
			name:     "Dangling foreign key",
			repoErr:  db.ErrForeignKeyViolation,
			wantKind: ErrValidation,
		},
		{
			name:     "Unexpected failure",
			repoErr:  errors.New("disk I/O error"),
			wantKind: ErrInternal,
			wantMsg:  "disk I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newClientService()
			repo.CreateError = tt.repoErr

			_, err := svc.Create(context.Background(), domain.ClientPatch{Email: strPtr("john@example.com")})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCRUDService_DeleteReferencedIsConflict(t *testing.T) {
	svc, repo, m := newClientService()
	repo.DeleteError = db.ErrForeignKeyViolation

	err := svc.Delete(context.Background(), 4)
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "still referenced")
	assert.Equal(t, 1, m.Count("client", "delete", OutcomeConflict))
}

func TestCRUDService_InvalidEmail(t *testing.T) {
	svc, repo, m := newClientService()

	_, err := svc.Create(context.Background(), domain.ClientPatch{Email: strPtr("not-an-email")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "emailcli")
	assert.Zero(t, repo.CreateCalls)
	assert.Equal(t, 1, m.Count("client", "create", OutcomeValidation))
}

func TestUtilisateurService_DefaultsDate(t *testing.T) {
	repo := mocks.NewMockRepository(
		func(u *domain.Utilisateur) int64 { return u.Code },
		func(u *domain.Utilisateur, id int64) { u.Code = id },
	)
	svc := NewUtilisateurService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.UtilisateurPatch{Username: strPtr("marie")})
	require.NoError(t, err)
	assert.Equal(t, domain.Today().String(), created.DateInscription.String())

	d, err := domain.ParseDate("2021-09-01")
	require.NoError(t, err)
	created, err = svc.Create(ctx, domain.UtilisateurPatch{Username: strPtr("paul"), DateInscription: &d})
	require.NoError(t, err)
	assert.Equal(t, "2021-09-01", created.DateInscription.String())
}

func TestCommandeService_Defaults(t *testing.T) {
	repo := mocks.NewMockRepository(
		func(c *domain.Commande) int64 { return c.CodCde },
		func(c *domain.Commande, id int64) { c.CodCde = id },
	)
	svc := NewCommandeService(repo, nil)

	created, err := svc.Create(context.Background(), domain.CommandePatch{})
	require.NoError(t, err)
	assert.Equal(t, 1, created.NbColis)
	assert.Equal(t, domain.FlagOff, created.Archive)
	assert.Equal(t, domain.FlagOff, created.Stock)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCRUDService_ListError(t *testing.T) {
	svc, repo, m := newClientService()
	repo.ListError = errors.New("connection refused")

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, m.Count("client", "list", OutcomeError))
}
