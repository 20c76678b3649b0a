package repository

import (
	"strings"

	"github.com/Olprog59/go-fromagerie/internal/ports"
	"github.com/Olprog59/go-fromagerie/internal/repository/mysql"
	"github.com/Olprog59/go-fromagerie/internal/repository/postgres"
	"github.com/Olprog59/go-fromagerie/internal/repository/sqlite"
	"github.com/jmoiron/sqlx"
)

// Compile-time checks to ensure all Factory implementations satisfy DatabaseFactory interface
// Vérifications à la compilation pour s'assurer que toutes les implémentations de Factory satisfont l'interface DatabaseFactory
var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*mysql.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

// factoryRegistry holds all database factories / Registre de toutes les factories de BD
var factoryRegistry = map[string]func() DatabaseFactory{
	"sqlite":     func() DatabaseFactory { return sqlite.NewFactory() },
	"sqlite3":    func() DatabaseFactory { return sqlite.NewFactory() },
	"mysql":      func() DatabaseFactory { return mysql.NewFactory() },
	"mariadb":    func() DatabaseFactory { return mysql.NewFactory() },
	"postgres":   func() DatabaseFactory { return postgres.NewFactory() },
	"postgresql": func() DatabaseFactory { return postgres.NewFactory() },
}

// Repositories groups one repository per entity / Regroupe un repository par entité
type Repositories struct {
	Clients          ports.ClientRepository
	Commandes        ports.CommandeRepository
	Communes         ports.CommuneRepository
	Conditionnements ports.ConditionnementRepository
	Departements     ports.DepartementRepository
	Objets           ports.ObjetRepository
	Utilisateurs     ports.UtilisateurRepository
}

// Adapter adapts database connection to repositories / Adapte la connexion BD vers les repositories
type Adapter struct {
	db      *sqlx.DB
	factory DatabaseFactory
}

// NewAdapter creates repository adapter / Crée l'adapteur de repositories
func NewAdapter(db *sqlx.DB, driver string) *Adapter {
	newFactory := factoryRegistry[strings.ToLower(driver)]
	if newFactory == nil {
		newFactory = factoryRegistry["sqlite"] // default fallback
	}

	return &Adapter{
		db:      db,
		factory: newFactory(),
	}
}

// Repositories builds every entity repository / Construit tous les repositories d'entité
func (a *Adapter) Repositories() Repositories {
	return Repositories{
		Clients:          a.factory.NewClientRepository(a.db),
		Commandes:        a.factory.NewCommandeRepository(a.db),
		Communes:         a.factory.NewCommuneRepository(a.db),
		Conditionnements: a.factory.NewConditionnementRepository(a.db),
		Departements:     a.factory.NewDepartementRepository(a.db),
		Objets:           a.factory.NewObjetRepository(a.db),
		Utilisateurs:     a.factory.NewUtilisateurRepository(a.db),
	}
}
