package dto

import "github.com/Olprog59/go-fromagerie/internal/domain"

// ClientResponse is the client body / Corps de réponse client
type ClientResponse struct {
	CodCli     int64        `json:"codcli"`
	Genre      *string      `json:"genrecli"`
	Nom        *string      `json:"nomcli"`
	Prenom     *string      `json:"prenomcli"`
	Adresse1   *string      `json:"adresse1cli"`
	Adresse2   *string      `json:"adresse2cli"`
	Adresse3   *string      `json:"adresse3cli"`
	VilleID    *int64       `json:"villecli_id"`
	Tel        *string      `json:"telcli"`
	Email      *string      `json:"emailcli"`
	Portable   *string      `json:"portcli"`
	Newsletter *domain.Flag `json:"newsletter"`
}

// ClientToDTO converts domain.Client / Convertit domain.Client
func ClientToDTO(c *domain.Client) ClientResponse {
	return ClientResponse{
		CodCli:     c.CodCli,
		Genre:      c.Genre,
		Nom:        c.Nom,
		Prenom:     c.Prenom,
		Adresse1:   c.Adresse1,
		Adresse2:   c.Adresse2,
		Adresse3:   c.Adresse3,
		VilleID:    c.VilleID,
		Tel:        c.Tel,
		Email:      c.Email,
		Portable:   c.Portable,
		Newsletter: c.Newsletter,
	}
}

// CommandeResponse is the order body / Corps de réponse commande
type CommandeResponse struct {
	CodCde    int64       `json:"codcde"`
	TimbreCli *float64    `json:"timbrecli"`
	TimbreCde *float64    `json:"timbrecde"`
	NbColis   int         `json:"nbcolis"`
	CheqCli   *float64    `json:"cheqcli"`
	IDCondit  *int64      `json:"idcondit"`
	Comment   *string     `json:"cdeComt"`
	Archive   domain.Flag `json:"barchive"`
	Stock     domain.Flag `json:"bstock"`
}

// CommandeToDTO converts domain.Commande / Convertit domain.Commande
func CommandeToDTO(c *domain.Commande) CommandeResponse {
	return CommandeResponse{
		CodCde:    c.CodCde,
		TimbreCli: c.TimbreCli,
		TimbreCde: c.TimbreCde,
		NbColis:   c.NbColis,
		CheqCli:   c.CheqCli,
		IDCondit:  c.IDCondit,
		Comment:   c.Comment,
		Archive:   c.Archive,
		Stock:     c.Stock,
	}
}

// CommuneResponse is the commune body / Corps de réponse commune
type CommuneResponse struct {
	ID    int64  `json:"id"`
	Dep   string `json:"dep"`
	CP    string `json:"cp"`
	Ville string `json:"ville"`
}

// CommuneToDTO converts domain.Commune / Convertit domain.Commune
func CommuneToDTO(c *domain.Commune) CommuneResponse {
	return CommuneResponse{ID: c.ID, Dep: c.Dep, CP: c.CP, Ville: c.Ville}
}

// ConditionnementResponse is the packaging body / Corps de réponse conditionnement
type ConditionnementResponse struct {
	IDCondit int64  `json:"idcondit"`
	Libelle  string `json:"libcondit"`
	Poids    int    `json:"poidscondit"`
	OrdreImp int    `json:"ordreimp"`
}

// ConditionnementToDTO converts domain.Conditionnement / Convertit domain.Conditionnement
func ConditionnementToDTO(c *domain.Conditionnement) ConditionnementResponse {
	return ConditionnementResponse{IDCondit: c.IDCondit, Libelle: c.Libelle, Poids: c.Poids, OrdreImp: c.OrdreImp}
}

// DepartementResponse is the department body / Corps de réponse département
type DepartementResponse struct {
	Code     string `json:"code_dept"`
	Nom      string `json:"nom_dept"`
	OrdreAff int    `json:"ordre_aff_dept"`
}

// DepartementToDTO converts domain.Departement / Convertit domain.Departement
func DepartementToDTO(d *domain.Departement) DepartementResponse {
	return DepartementResponse{Code: d.Code, Nom: d.Nom, OrdreAff: d.OrdreAff}
}

// ObjetResponse is the product body / Corps de réponse objet
type ObjetResponse struct {
	CodObj       int64       `json:"codobj"`
	Libelle      *string     `json:"libobj"`
	Taille       *string     `json:"tailleobj"`
	PrixUnitaire float64     `json:"puobj"`
	Poids        float64     `json:"poidsobj"`
	Indisponible domain.Flag `json:"indispobj"`
	Imp          domain.Flag `json:"o_imp"`
	Aff          domain.Flag `json:"o_aff"`
	CartP        domain.Flag `json:"o_cartp"`
	Points       int         `json:"points"`
	OrdreAff     int         `json:"o_ordre_aff"`
}

// ObjetToDTO converts domain.Objet / Convertit domain.Objet
func ObjetToDTO(o *domain.Objet) ObjetResponse {
	return ObjetResponse{
		CodObj:       o.CodObj,
		Libelle:      o.Libelle,
		Taille:       o.Taille,
		PrixUnitaire: o.PrixUnitaire,
		Poids:        o.Poids,
		Indisponible: o.Indisponible,
		Imp:          o.Imp,
		Aff:          o.Aff,
		CartP:        o.CartP,
		Points:       o.Points,
		OrdreAff:     o.OrdreAff,
	}
}

// UtilisateurResponse is the user body / Corps de réponse utilisateur
type UtilisateurResponse struct {
	Code            int64       `json:"code_utilisateur"`
	Nom             *string     `json:"nom_utilisateur"`
	Prenom          *string     `json:"prenom_utilisateur"`
	Username        *string     `json:"username"`
	DateInscription domain.Date `json:"date_insc_utilisateur"`
}

// UtilisateurToDTO converts domain.Utilisateur / Convertit domain.Utilisateur
func UtilisateurToDTO(u *domain.Utilisateur) UtilisateurResponse {
	return UtilisateurResponse{
		Code:            u.Code,
		Nom:             u.Nom,
		Prenom:          u.Prenom,
		Username:        u.Username,
		DateInscription: u.DateInscription,
	}
}

// Map converts a slice of entities, never returning nil / Convertit une liste d'entités, jamais nil
func Map[T any, D any](items []*T, convert func(*T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
