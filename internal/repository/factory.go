package repository

import (
	"github.com/Olprog59/go-fromagerie/internal/ports"
	"github.com/jmoiron/sqlx"
)

// DatabaseFactory must be implemented by each database package / Doit être implémenté par chaque package de BD
// Adding an entity means adding its method here; the compiler then flags every
// database package that lacks it.
// Ajouter une entité = ajouter sa méthode ici ; le compilateur signale alors
// chaque package de BD qui ne l'implémente pas.
type DatabaseFactory interface {
	NewClientRepository(db *sqlx.DB) ports.ClientRepository
	NewCommandeRepository(db *sqlx.DB) ports.CommandeRepository
	NewCommuneRepository(db *sqlx.DB) ports.CommuneRepository
	NewConditionnementRepository(db *sqlx.DB) ports.ConditionnementRepository
	NewDepartementRepository(db *sqlx.DB) ports.DepartementRepository
	NewObjetRepository(db *sqlx.DB) ports.ObjetRepository
	NewUtilisateurRepository(db *sqlx.DB) ports.UtilisateurRepository
}
