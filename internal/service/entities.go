package service

import (
	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/ports"
)

// Entity services / Services par entité
type (
	ClientService          = CRUDService[domain.Client, int64, domain.ClientPatch]
	CommandeService        = CRUDService[domain.Commande, int64, domain.CommandePatch]
	CommuneService         = CRUDService[domain.Commune, int64, domain.CommunePatch]
	ConditionnementService = CRUDService[domain.Conditionnement, int64, domain.ConditionnementPatch]
	DepartementService     = CRUDService[domain.Departement, string, domain.DepartementPatch]
	ObjetService           = CRUDService[domain.Objet, int64, domain.ObjetPatch]
	UtilisateurService     = CRUDService[domain.Utilisateur, int64, domain.UtilisateurPatch]
)

// NewClientService creates client service / Crée le service client
func NewClientService(repo ports.ClientRepository, metrics OperationRecorder) *ClientService {
	return NewCRUDService(repo, Rules[domain.Client, int64, domain.ClientPatch]{
		Entity:   "client",
		KeyName:  "codcli",
		New:      func() *domain.Client { return &domain.Client{} },
		Apply:    domain.ClientPatch.Apply,
		Validate: (*domain.Client).Validate,
		KeyOf:    func(c *domain.Client) int64 { return c.CodCli },
	}, metrics)
}

// NewCommandeService creates order service / Crée le service commande
func NewCommandeService(repo ports.CommandeRepository, metrics OperationRecorder) *CommandeService {
	return NewCRUDService(repo, Rules[domain.Commande, int64, domain.CommandePatch]{
		Entity:   "commande",
		KeyName:  "codcde",
		New:      domain.NewCommande,
		Apply:    domain.CommandePatch.Apply,
		Validate: (*domain.Commande).Validate,
		KeyOf:    func(c *domain.Commande) int64 { return c.CodCde },
	}, metrics)
}

// NewCommuneService creates commune service / Crée le service commune
func NewCommuneService(repo ports.CommuneRepository, metrics OperationRecorder) *CommuneService {
	return NewCRUDService(repo, Rules[domain.Commune, int64, domain.CommunePatch]{
		Entity:   "commune",
		KeyName:  "id",
		New:      func() *domain.Commune { return &domain.Commune{} },
		Apply:    domain.CommunePatch.Apply,
		Validate: (*domain.Commune).Validate,
		KeyOf:    func(c *domain.Commune) int64 { return c.ID },
	}, metrics)
}

// NewConditionnementService creates packaging service / Crée le service conditionnement
func NewConditionnementService(repo ports.ConditionnementRepository, metrics OperationRecorder) *ConditionnementService {
	return NewCRUDService(repo, Rules[domain.Conditionnement, int64, domain.ConditionnementPatch]{
		Entity:   "conditionnement",
		KeyName:  "idcondit",
		New:      func() *domain.Conditionnement { return &domain.Conditionnement{} },
		Apply:    domain.ConditionnementPatch.Apply,
		Validate: (*domain.Conditionnement).Validate,
		KeyOf:    func(c *domain.Conditionnement) int64 { return c.IDCondit },
	}, metrics)
}

// NewDepartementService creates department service / Crée le service département
// The code is supplied on creation and immutable afterwards.
func NewDepartementService(repo ports.DepartementRepository, metrics OperationRecorder) *DepartementService {
	return NewCRUDService(repo, Rules[domain.Departement, string, domain.DepartementPatch]{
		Entity:   "departement",
		KeyName:  "code_dept",
		New:      func() *domain.Departement { return &domain.Departement{} },
		Apply:    domain.DepartementPatch.Apply,
		Validate: (*domain.Departement).Validate,
		KeyOf:    func(d *domain.Departement) string { return d.Code },
	}, metrics)
}

// NewObjetService creates product service / Crée le service objet
func NewObjetService(repo ports.ObjetRepository, metrics OperationRecorder) *ObjetService {
	return NewCRUDService(repo, Rules[domain.Objet, int64, domain.ObjetPatch]{
		Entity:   "objet",
		KeyName:  "codobj",
		New:      func() *domain.Objet { return &domain.Objet{} },
		Apply:    domain.ObjetPatch.Apply,
		Validate: (*domain.Objet).Validate,
		KeyOf:    func(o *domain.Objet) int64 { return o.CodObj },
	}, metrics)
}

// NewUtilisateurService creates user service; the registration date defaults to today
// Crée le service utilisateur ; la date d'inscription vaut aujourd'hui par défaut
func NewUtilisateurService(repo ports.UtilisateurRepository, metrics OperationRecorder) *UtilisateurService {
	return NewCRUDService(repo, Rules[domain.Utilisateur, int64, domain.UtilisateurPatch]{
		Entity:   "utilisateur",
		KeyName:  "code_utilisateur",
		New:      func() *domain.Utilisateur { return &domain.Utilisateur{} },
		Apply:    domain.UtilisateurPatch.Apply,
		Validate: (*domain.Utilisateur).Validate,
		KeyOf:    func(u *domain.Utilisateur) int64 { return u.Code },
		Prepare:  (*domain.Utilisateur).SetDefaults,
	}, metrics)
}
