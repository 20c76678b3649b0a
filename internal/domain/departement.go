package domain

import "strings"

// DepartementCodeMaxLen is the maximum length of a department code ("2A", "971") / Longueur max d'un code département
const DepartementCodeMaxLen = 3

// Departement represents a French department keyed by its code / Représente un département identifié par son code
type Departement struct {
	Code     string `db:"code_dept"`
	Nom      string `db:"nom_dept"`
	OrdreAff int    `db:"ordre_aff_dept"`
}

// DepartementPatch lists the writable fields of a department / Liste les champs modifiables d'un département
// Code is only honoured on creation / Code n'est pris en compte qu'à la création
type DepartementPatch struct {
	Code     *string `json:"code_dept"`
	Nom      *string `json:"nom_dept"`
	OrdreAff *int    `json:"ordre_aff_dept"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p DepartementPatch) Apply(d *Departement) {
	if p.Code != nil {
		d.Code = strings.TrimSpace(*p.Code)
	}
	if p.Nom != nil {
		d.Nom = *p.Nom
	}
	if p.OrdreAff != nil {
		d.OrdreAff = *p.OrdreAff
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (d *Departement) Validate() error {
	if blank(d.Code) {
		return invalid("code_dept", "is required")
	}
	if tooLong(d.Code, DepartementCodeMaxLen) {
		return invalid("code_dept", "must be at most %d characters, got %q", DepartementCodeMaxLen, d.Code)
	}
	if blank(d.Nom) {
		return invalid("nom_dept", "is required")
	}
	if tooLong(d.Nom, 100) {
		return invalid("nom_dept", "must be at most 100 characters")
	}
	return nil
}
