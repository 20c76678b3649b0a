package domain

// CommuneDepMaxLen is the maximum length of a commune department code / Longueur max du code département
const CommuneDepMaxLen = 2

// Commune represents a municipality / Représente une commune
type Commune struct {
	ID    int64  `db:"id"`
	Dep   string `db:"dep"`
	CP    string `db:"cp"`
	Ville string `db:"ville"`
}

// CommunePatch lists the writable fields of a commune / Liste les champs modifiables d'une commune
type CommunePatch struct {
	Dep   *string `json:"dep"`
	CP    *string `json:"cp"`
	Ville *string `json:"ville"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p CommunePatch) Apply(c *Commune) {
	if p.Dep != nil {
		c.Dep = *p.Dep
	}
	if p.CP != nil {
		c.CP = *p.CP
	}
	if p.Ville != nil {
		c.Ville = *p.Ville
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (c *Commune) Validate() error {
	if blank(c.Dep) {
		return invalid("dep", "is required")
	}
	if tooLong(c.Dep, CommuneDepMaxLen) {
		return invalid("dep", "must be at most %d characters, got %q", CommuneDepMaxLen, c.Dep)
	}
	if blank(c.CP) {
		return invalid("cp", "is required")
	}
	if tooLong(c.CP, 5) {
		return invalid("cp", "must be at most 5 characters")
	}
	if blank(c.Ville) {
		return invalid("ville", "is required")
	}
	if tooLong(c.Ville, 100) {
		return invalid("ville", "must be at most 100 characters")
	}
	return nil
}
