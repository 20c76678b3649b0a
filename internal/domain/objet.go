package domain

// Objet represents a product sold by the shop / Représente un objet vendu par la boutique
type Objet struct {
	CodObj       int64   `db:"codobj"`
	Libelle      *string `db:"libobj"`
	Taille       *string `db:"tailleobj"`
	PrixUnitaire float64 `db:"puobj"`
	Poids        float64 `db:"poidsobj"`
	Indisponible Flag    `db:"indispobj"`
	Imp          Flag    `db:"o_imp"`
	Aff          Flag    `db:"o_aff"`
	CartP        Flag    `db:"o_cartp"`
	Points       int     `db:"points"`
	OrdreAff     int     `db:"o_ordre_aff"`
}

// ObjetPatch lists the writable fields of a product / Liste les champs modifiables d'un objet
type ObjetPatch struct {
	Libelle      *string  `json:"libobj"`
	Taille       *string  `json:"tailleobj"`
	PrixUnitaire *float64 `json:"puobj"`
	Poids        *float64 `json:"poidsobj"`
	Indisponible *Flag    `json:"indispobj"`
	Imp          *Flag    `json:"o_imp"`
	Aff          *Flag    `json:"o_aff"`
	CartP        *Flag    `json:"o_cartp"`
	Points       *int     `json:"points"`
	OrdreAff     *int     `json:"o_ordre_aff"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p ObjetPatch) Apply(o *Objet) {
	if p.Libelle != nil {
		o.Libelle = p.Libelle
	}
	if p.Taille != nil {
		o.Taille = p.Taille
	}
	if p.PrixUnitaire != nil {
		o.PrixUnitaire = *p.PrixUnitaire
	}
	if p.Poids != nil {
		o.Poids = *p.Poids
	}
	if p.Indisponible != nil {
		o.Indisponible = *p.Indisponible
	}
	if p.Imp != nil {
		o.Imp = *p.Imp
	}
	if p.Aff != nil {
		o.Aff = *p.Aff
	}
	if p.CartP != nil {
		o.CartP = *p.CartP
	}
	if p.Points != nil {
		o.Points = *p.Points
	}
	if p.OrdreAff != nil {
		o.OrdreAff = *p.OrdreAff
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (o *Objet) Validate() error {
	if o.PrixUnitaire < 0 {
		return invalid("puobj", "must not be negative")
	}
	if o.Poids < 0 {
		return invalid("poidsobj", "must not be negative")
	}
	return checkWidths(
		column{"libobj", o.Libelle, 50},
		column{"tailleobj", o.Taille, 50},
	)
}
