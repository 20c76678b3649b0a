package domain

// Conditionnement represents a packaging type / Représente un type de conditionnement
type Conditionnement struct {
	IDCondit int64  `db:"idcondit"`
	Libelle  string `db:"libcondit"`
	Poids    int    `db:"poidscondit"`
	OrdreImp int    `db:"ordreimp"`
}

// ConditionnementPatch lists the writable fields of a packaging / Liste les champs modifiables d'un conditionnement
type ConditionnementPatch struct {
	Libelle  *string `json:"libcondit"`
	Poids    *int    `json:"poidscondit"`
	OrdreImp *int    `json:"ordreimp"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p ConditionnementPatch) Apply(c *Conditionnement) {
	if p.Libelle != nil {
		c.Libelle = *p.Libelle
	}
	if p.Poids != nil {
		c.Poids = *p.Poids
	}
	if p.OrdreImp != nil {
		c.OrdreImp = *p.OrdreImp
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (c *Conditionnement) Validate() error {
	if blank(c.Libelle) {
		return invalid("libcondit", "is required")
	}
	if tooLong(c.Libelle, 100) {
		return invalid("libcondit", "must be at most 100 characters")
	}
	if c.Poids < 0 {
		return invalid("poidscondit", "must not be negative")
	}
	return nil
}
