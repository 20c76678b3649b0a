package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/jmoiron/sqlx"
)

func setupTestDB(t *testing.T) (*sqlx.DB, Repositories) {
	t.Helper()
	database, err := NewTestDB(context.Background())
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, NewSQLiteRepositories(database)
}

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, database *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := database.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func TestSQLiteClientRepo_CreateAndGet(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	on := domain.FlagOn
	created, err := repos.Clients.Create(ctx, &domain.Client{
		Nom:        strPtr("John Doe"),
		Email:      strPtr("john@example.com"),
		Newsletter: &on,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	if created.CodCli == 0 {
		t.Fatal("Expected generated codcli")
	}

	got, err := repos.Clients.GetByID(ctx, created.CodCli)
	if err != nil {
		t.Fatalf("Failed to get client: %v", err)
	}
	if *got.Nom != "John Doe" || *got.Email != "john@example.com" {
		t.Errorf("Unexpected client: %+v", got)
	}
	if got.Newsletter == nil || *got.Newsletter != domain.FlagOn {
		t.Errorf("Expected newsletter flag 1, got %v", got.Newsletter)
	}
	if got.Prenom != nil || got.VilleID != nil {
		t.Error("Expected unset optional fields to stay NULL")
	}
}

func TestSQLiteClientRepo_DuplicateEmail(t *testing.T) {
	database, repos := setupTestDB(t)
	ctx := context.Background()

	if _, err := repos.Clients.Create(ctx, &domain.Client{Email: strPtr("dup@example.com")}); err != nil {
		t.Fatalf("Failed to create first client: %v", err)
	}

	_, err := repos.Clients.Create(ctx, &domain.Client{Email: strPtr("dup@example.com")})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Column != "emailcli" {
		t.Errorf("Expected duplicate on emailcli, got %v", err)
	}
	if n := countRows(t, database, "clients"); n != 1 {
		t.Errorf("Expected exactly one stored client, got %d", n)
	}

	// Clients without email never collide / Les clients sans email ne se heurtent jamais
	for i := 0; i < 2; i++ {
		if _, err := repos.Clients.Create(ctx, &domain.Client{Nom: strPtr("Anonyme")}); err != nil {
			t.Fatalf("Failed to create client without email: %v", err)
		}
	}
}

func TestSQLiteClientRepo_UpdateKeepsOwnEmail(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	a, _ := repos.Clients.Create(ctx, &domain.Client{Email: strPtr("a@example.com")})
	b, _ := repos.Clients.Create(ctx, &domain.Client{Email: strPtr("b@example.com")})

	updated, err := repos.Clients.Update(ctx, a.CodCli, func(c *domain.Client) error {
		c.Tel = strPtr("0102030405")
		return nil
	})
	if err != nil {
		t.Fatalf("Update with unchanged email failed: %v", err)
	}
	if *updated.Tel != "0102030405" || *updated.Email != "a@example.com" {
		t.Errorf("Unexpected updated client: %+v", updated)
	}

	_, err = repos.Clients.Update(ctx, b.CodCli, func(c *domain.Client) error {
		c.Email = strPtr("a@example.com")
		return nil
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate when stealing an email, got %v", err)
	}

	got, _ := repos.Clients.GetByID(ctx, b.CodCli)
	if *got.Email != "b@example.com" {
		t.Errorf("Failed update must leave the row unchanged, got %s", *got.Email)
	}
}

func TestSQLiteClientRepo_ForeignKey(t *testing.T) {
	database, repos := setupTestDB(t)
	ctx := context.Background()

	missing := int64(999)
	_, err := repos.Clients.Create(ctx, &domain.Client{VilleID: &missing})
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("Expected ErrForeignKeyViolation, got %v", err)
	}
	if n := countRows(t, database, "clients"); n != 0 {
		t.Errorf("Expected no stored client, got %d", n)
	}

	commune, err := repos.Communes.Create(ctx, &domain.Commune{Dep: "75", CP: "75001", Ville: "Paris"})
	if err != nil {
		t.Fatalf("Failed to create commune: %v", err)
	}
	if _, err := repos.Clients.Create(ctx, &domain.Client{VilleID: &commune.ID}); err != nil {
		t.Fatalf("Failed to create client in existing commune: %v", err)
	}

	err = repos.Communes.Delete(ctx, commune.ID)
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("Expected ErrForeignKeyViolation deleting a referenced commune, got %v", err)
	}
}

func TestSQLiteDepartementRepo_SuppliedKey(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	created, err := repos.Departements.Create(ctx, &domain.Departement{Code: "2A", Nom: "Corse-du-Sud", OrdreAff: 20})
	if err != nil {
		t.Fatalf("Failed to create departement: %v", err)
	}
	if created.Code != "2A" || created.OrdreAff != 20 {
		t.Errorf("Unexpected departement: %+v", created)
	}

	_, err = repos.Departements.Create(ctx, &domain.Departement{Code: "2A", Nom: "Autre"})
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Column != "code_dept" {
		t.Fatalf("Expected duplicate code_dept, got %v", err)
	}

	_, err = repos.Departements.GetByID(ctx, "999")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord, got %v", err)
	}
}

func TestSQLiteRepo_ListOrderedByKey(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	list, err := repos.Departements.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("Expected empty non-nil list, got %v", list)
	}

	for _, code := range []string{"75", "01", "13"} {
		if _, err := repos.Departements.Create(ctx, &domain.Departement{Code: code, Nom: "D" + code}); err != nil {
			t.Fatalf("Failed to create departement %s: %v", code, err)
		}
	}

	list, err = repos.Departements.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := []string{list[0].Code, list[1].Code, list[2].Code}
	want := []string{"01", "13", "75"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestSQLiteRepo_UpdateAndDelete(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	cond, err := repos.Conditionnements.Create(ctx, &domain.Conditionnement{Libelle: "Carton", Poids: 250, OrdreImp: 1})
	if err != nil {
		t.Fatalf("Failed to create conditionnement: %v", err)
	}

	unchanged, err := repos.Conditionnements.Update(ctx, cond.IDCondit, nil)
	if err != nil {
		t.Fatalf("Empty update failed: %v", err)
	}
	if *unchanged != *cond {
		t.Errorf("Empty update changed the row: %+v vs %+v", unchanged, cond)
	}

	mutateErr := errors.New("rejected")
	_, err = repos.Conditionnements.Update(ctx, cond.IDCondit, func(c *domain.Conditionnement) error {
		c.Libelle = "Caisse"
		return mutateErr
	})
	if !errors.Is(err, mutateErr) {
		t.Fatalf("Expected mutate error to pass through, got %v", err)
	}

	_, err = repos.Conditionnements.Update(ctx, 404, func(*domain.Conditionnement) error { return nil })
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord updating a missing row, got %v", err)
	}

	if err := repos.Conditionnements.Delete(ctx, cond.IDCondit); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repos.Conditionnements.Delete(ctx, cond.IDCondit); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord on second delete, got %v", err)
	}
	if _, err := repos.Conditionnements.GetByID(ctx, cond.IDCondit); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Expected ErrNoRecord after delete, got %v", err)
	}
}

func TestSQLiteUtilisateurRepo_DateAndUsername(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	date, _ := domain.ParseDate("2024-03-15")
	u, err := repos.Utilisateurs.Create(ctx, &domain.Utilisateur{Username: strPtr("fromager"), DateInscription: date})
	if err != nil {
		t.Fatalf("Failed to create utilisateur: %v", err)
	}
	if u.DateInscription.String() != "2024-03-15" {
		t.Errorf("Expected date 2024-03-15, got %s", u.DateInscription)
	}

	_, err = repos.Utilisateurs.Create(ctx, &domain.Utilisateur{Username: strPtr("fromager"), DateInscription: date})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate on username, got %v", err)
	}
}

func TestSQLiteCommandeAndObjetRepo_RoundTrip(t *testing.T) {
	_, repos := setupTestDB(t)
	ctx := context.Background()

	cond, _ := repos.Conditionnements.Create(ctx, &domain.Conditionnement{Libelle: "Colis"})
	timbre := 4.5
	cmd := domain.NewCommande()
	cmd.TimbreCli = &timbre
	cmd.IDCondit = &cond.IDCondit
	cmd.Comment = strPtr("fragile")
	cmd.Stock = domain.FlagOn

	created, err := repos.Commandes.Create(ctx, cmd)
	if err != nil {
		t.Fatalf("Failed to create commande: %v", err)
	}
	if created.NbColis != 1 || *created.TimbreCli != 4.5 || created.Stock != domain.FlagOn || *created.Comment != "fragile" {
		t.Errorf("Unexpected commande: %+v", created)
	}

	obj, err := repos.Objets.Create(ctx, &domain.Objet{Libelle: strPtr("Comté 18 mois"), PrixUnitaire: 32.9, Aff: domain.FlagOn, Points: 3})
	if err != nil {
		t.Fatalf("Failed to create objet: %v", err)
	}
	if obj.PrixUnitaire != 32.9 || obj.Aff != domain.FlagOn || obj.Imp != domain.FlagOff || obj.Points != 3 {
		t.Errorf("Unexpected objet: %+v", obj)
	}
}

func TestSQLiteCommuneRepo_CheckConstraint(t *testing.T) {
	database, repos := setupTestDB(t)

	// The schema enforces the department length even when validation is bypassed
	_, err := repos.Communes.Create(context.Background(), &domain.Commune{Dep: "123", CP: "75001", Ville: "X"})
	if !errors.Is(err, ErrCheckViolation) {
		t.Fatalf("Expected ErrCheckViolation, got %v", err)
	}
	if n := countRows(t, database, "communes"); n != 0 {
		t.Errorf("Expected no stored commune, got %d", n)
	}
}
