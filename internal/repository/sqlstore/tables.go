package sqlstore

import (
	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/ports"
	"github.com/jmoiron/sqlx"
)

// Compile-time checks that Store satisfies every entity repository
var (
	_ ports.ClientRepository          = (*Store[domain.Client, int64])(nil)
	_ ports.CommandeRepository        = (*Store[domain.Commande, int64])(nil)
	_ ports.CommuneRepository         = (*Store[domain.Commune, int64])(nil)
	_ ports.ConditionnementRepository = (*Store[domain.Conditionnement, int64])(nil)
	_ ports.DepartementRepository     = (*Store[domain.Departement, string])(nil)
	_ ports.ObjetRepository           = (*Store[domain.Objet, int64])(nil)
	_ ports.UtilisateurRepository     = (*Store[domain.Utilisateur, int64])(nil)
)

// stringValue dereferences an optional unique value / Déréférence une valeur unique optionnelle
func stringValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// ClientTable maps domain.Client / Associe domain.Client
var ClientTable = Table[domain.Client, int64]{
	Name: "clients",
	Key:  "codcli",
	Columns: []string{
		"genrecli", "nomcli", "prenomcli", "adresse1cli", "adresse2cli", "adresse3cli",
		"villecli_id", "telcli", "emailcli", "portcli", "newsletter",
	},
	Values: func(c *domain.Client) []any {
		return []any{
			c.Genre, c.Nom, c.Prenom, c.Adresse1, c.Adresse2, c.Adresse3,
			c.VilleID, c.Tel, c.Email, c.Portable, c.Newsletter,
		}
	},
	KeyOf:  func(c *domain.Client) int64 { return c.CodCli },
	SetKey: func(c *domain.Client, id int64) { c.CodCli = id },
	Unique: []Unique[domain.Client]{
		{Column: "emailcli", Value: func(c *domain.Client) any { return stringValue(c.Email) }},
	},
}

// CommandeTable maps domain.Commande / Associe domain.Commande
var CommandeTable = Table[domain.Commande, int64]{
	Name:    "commandes",
	Key:     "codcde",
	Columns: []string{"timbrecli", "timbrecde", "nbcolis", "cheqcli", "idcondit", "cdecomt", "barchive", "bstock"},
	Values: func(c *domain.Commande) []any {
		return []any{c.TimbreCli, c.TimbreCde, c.NbColis, c.CheqCli, c.IDCondit, c.Comment, c.Archive, c.Stock}
	},
	KeyOf:  func(c *domain.Commande) int64 { return c.CodCde },
	SetKey: func(c *domain.Commande, id int64) { c.CodCde = id },
}

// CommuneTable maps domain.Commune / Associe domain.Commune
var CommuneTable = Table[domain.Commune, int64]{
	Name:    "communes",
	Key:     "id",
	Columns: []string{"dep", "cp", "ville"},
	Values: func(c *domain.Commune) []any {
		return []any{c.Dep, c.CP, c.Ville}
	},
	KeyOf:  func(c *domain.Commune) int64 { return c.ID },
	SetKey: func(c *domain.Commune, id int64) { c.ID = id },
}

// ConditionnementTable maps domain.Conditionnement / Associe domain.Conditionnement
var ConditionnementTable = Table[domain.Conditionnement, int64]{
	Name:    "conditionnements",
	Key:     "idcondit",
	Columns: []string{"libcondit", "poidscondit", "ordreimp"},
	Values: func(c *domain.Conditionnement) []any {
		return []any{c.Libelle, c.Poids, c.OrdreImp}
	},
	KeyOf:  func(c *domain.Conditionnement) int64 { return c.IDCondit },
	SetKey: func(c *domain.Conditionnement, id int64) { c.IDCondit = id },
}

// DepartementTable maps domain.Departement; its key is supplied by the caller
// Associe domain.Departement ; sa clé est fournie par l'appelant
var DepartementTable = Table[domain.Departement, string]{
	Name:    "departements",
	Key:     "code_dept",
	Columns: []string{"nom_dept", "ordre_aff_dept"},
	Values: func(d *domain.Departement) []any {
		return []any{d.Nom, d.OrdreAff}
	},
	KeyOf: func(d *domain.Departement) string { return d.Code },
}

// ObjetTable maps domain.Objet / Associe domain.Objet
var ObjetTable = Table[domain.Objet, int64]{
	Name: "objets",
	Key:  "codobj",
	Columns: []string{
		"libobj", "tailleobj", "puobj", "poidsobj", "indispobj",
		"o_imp", "o_aff", "o_cartp", "points", "o_ordre_aff",
	},
	Values: func(o *domain.Objet) []any {
		return []any{
			o.Libelle, o.Taille, o.PrixUnitaire, o.Poids, o.Indisponible,
			o.Imp, o.Aff, o.CartP, o.Points, o.OrdreAff,
		}
	},
	KeyOf:  func(o *domain.Objet) int64 { return o.CodObj },
	SetKey: func(o *domain.Objet, id int64) { o.CodObj = id },
}

// UtilisateurTable maps domain.Utilisateur / Associe domain.Utilisateur
var UtilisateurTable = Table[domain.Utilisateur, int64]{
	Name:    "utilisateurs",
	Key:     "code_utilisateur",
	Columns: []string{"nom_utilisateur", "prenom_utilisateur", "username", "date_insc_utilisateur"},
	Values: func(u *domain.Utilisateur) []any {
		return []any{u.Nom, u.Prenom, u.Username, u.DateInscription}
	},
	KeyOf:  func(u *domain.Utilisateur) int64 { return u.Code },
	SetKey: func(u *domain.Utilisateur, id int64) { u.Code = id },
	Unique: []Unique[domain.Utilisateur]{
		{Column: "username", Value: func(u *domain.Utilisateur) any { return stringValue(u.Username) }},
	},
}

// Factory builds the entity repositories for one dialect / Construit les repositories d'entité pour un dialecte
type Factory struct {
	Dialect Dialect
}

// NewClientRepository creates client repository / Crée le repository client
func (f Factory) NewClientRepository(database *sqlx.DB) ports.ClientRepository {
	return New(database, f.Dialect, ClientTable)
}

// NewCommandeRepository creates order repository / Crée le repository commande
func (f Factory) NewCommandeRepository(database *sqlx.DB) ports.CommandeRepository {
	return New(database, f.Dialect, CommandeTable)
}

// NewCommuneRepository creates commune repository / Crée le repository commune
func (f Factory) NewCommuneRepository(database *sqlx.DB) ports.CommuneRepository {
	return New(database, f.Dialect, CommuneTable)
}

// NewConditionnementRepository creates packaging repository / Crée le repository conditionnement
func (f Factory) NewConditionnementRepository(database *sqlx.DB) ports.ConditionnementRepository {
	return New(database, f.Dialect, ConditionnementTable)
}

// NewDepartementRepository creates department repository / Crée le repository département
func (f Factory) NewDepartementRepository(database *sqlx.DB) ports.DepartementRepository {
	return New(database, f.Dialect, DepartementTable)
}

// NewObjetRepository creates product repository / Crée le repository objet
func (f Factory) NewObjetRepository(database *sqlx.DB) ports.ObjetRepository {
	return New(database, f.Dialect, ObjetTable)
}

// NewUtilisateurRepository creates user repository / Crée le repository utilisateur
func (f Factory) NewUtilisateurRepository(database *sqlx.DB) ports.UtilisateurRepository {
	return New(database, f.Dialect, UtilisateurTable)
}
