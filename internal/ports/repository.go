package ports

import (
	"context"

	"github.com/Olprog59/go-fromagerie/internal/domain"
)

// Repository is the single-table CRUD contract shared by every entity / Contrat CRUD mono-table commun à toutes les entités
// T is the entity, K its primary key / T est l'entité, K sa clé primaire
type Repository[T any, K comparable] interface {
	// List returns every row ordered by key / Retourne toutes les lignes triées par clé
	List(ctx context.Context) ([]*T, error)

	// GetByID retrieves one row, db.ErrNoRecord when absent / Récupère une ligne, db.ErrNoRecord si absente
	GetByID(ctx context.Context, id K) (*T, error)

	// Create inserts a row and returns it as stored / Insère une ligne et la retourne telle que stockée
	Create(ctx context.Context, entity *T) (*T, error)

	// Update loads the row, lets mutate change it and writes it back in one transaction
	// Charge la ligne, la modifie via mutate et la réécrit dans une seule transaction
	Update(ctx context.Context, id K, mutate func(*T) error) (*T, error)

	// Delete removes one row / Supprime une ligne
	Delete(ctx context.Context, id K) error
}

// Per-entity repositories / Repositories par entité
type (
	ClientRepository          = Repository[domain.Client, int64]
	CommandeRepository        = Repository[domain.Commande, int64]
	CommuneRepository         = Repository[domain.Commune, int64]
	ConditionnementRepository = Repository[domain.Conditionnement, int64]
	DepartementRepository     = Repository[domain.Departement, string]
	ObjetRepository           = Repository[domain.Objet, int64]
	UtilisateurRepository     = Repository[domain.Utilisateur, int64]
)
