package domain

// Utilisateur represents a back-office user / Représente un utilisateur du back-office
type Utilisateur struct {
	Code            int64   `db:"code_utilisateur"`
	Nom             *string `db:"nom_utilisateur"`
	Prenom          *string `db:"prenom_utilisateur"`
	Username        *string `db:"username"` // Unique when set / Unique si renseigné
	DateInscription Date    `db:"date_insc_utilisateur"`
}

// UtilisateurPatch lists the writable fields of a user / Liste les champs modifiables d'un utilisateur
type UtilisateurPatch struct {
	Nom             *string `json:"nom_utilisateur"`
	Prenom          *string `json:"prenom_utilisateur"`
	Username        *string `json:"username"`
	DateInscription *Date   `json:"date_insc_utilisateur"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p UtilisateurPatch) Apply(u *Utilisateur) {
	if p.Nom != nil {
		u.Nom = p.Nom
	}
	if p.Prenom != nil {
		u.Prenom = p.Prenom
	}
	if p.Username != nil {
		u.Username = trimmed(p.Username)
	}
	if p.DateInscription != nil {
		u.DateInscription = *p.DateInscription
	}
}

// SetDefaults fills the registration date when missing / Renseigne la date d'inscription si absente
func (u *Utilisateur) SetDefaults() {
	if u.DateInscription.IsZero() {
		u.DateInscription = Today()
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (u *Utilisateur) Validate() error {
	if u.Username != nil && blank(*u.Username) {
		return invalid("username", "must not be empty")
	}
	if u.DateInscription.IsZero() {
		return invalid("date_insc_utilisateur", "is required")
	}
	return checkWidths(
		column{"nom_utilisateur", u.Nom, 50},
		column{"prenom_utilisateur", u.Prenom, 50},
		column{"username", u.Username, 50},
	)
}
