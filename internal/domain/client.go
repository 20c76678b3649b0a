package domain

// Client represents a customer of the shop / Représente un client de la boutique
type Client struct {
	CodCli     int64   `db:"codcli"`
	Genre      *string `db:"genrecli"`
	Nom        *string `db:"nomcli"`
	Prenom     *string `db:"prenomcli"`
	Adresse1   *string `db:"adresse1cli"`
	Adresse2   *string `db:"adresse2cli"`
	Adresse3   *string `db:"adresse3cli"`
	VilleID    *int64  `db:"villecli_id"` // Commune.ID
	Tel        *string `db:"telcli"`
	Email      *string `db:"emailcli"` // Unique among clients / Unique parmi les clients
	Portable   *string `db:"portcli"`
	Newsletter *Flag   `db:"newsletter"`
}

// ClientPatch lists the writable fields of a client / Liste les champs modifiables d'un client
type ClientPatch struct {
	Genre      *string `json:"genrecli"`
	Nom        *string `json:"nomcli"`
	Prenom     *string `json:"prenomcli"`
	Adresse1   *string `json:"adresse1cli"`
	Adresse2   *string `json:"adresse2cli"`
	Adresse3   *string `json:"adresse3cli"`
	VilleID    *int64  `json:"villecli_id"`
	Tel        *string `json:"telcli"`
	Email      *string `json:"emailcli"`
	Portable   *string `json:"portcli"`
	Newsletter *Flag   `json:"newsletter"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
// The email is stored trimmed so uniqueness holds on the address itself.
func (p ClientPatch) Apply(c *Client) {
	if p.Genre != nil {
		c.Genre = p.Genre
	}
	if p.Nom != nil {
		c.Nom = p.Nom
	}
	if p.Prenom != nil {
		c.Prenom = p.Prenom
	}
	if p.Adresse1 != nil {
		c.Adresse1 = p.Adresse1
	}
	if p.Adresse2 != nil {
		c.Adresse2 = p.Adresse2
	}
	if p.Adresse3 != nil {
		c.Adresse3 = p.Adresse3
	}
	if p.VilleID != nil {
		c.VilleID = p.VilleID
	}
	if p.Tel != nil {
		c.Tel = p.Tel
	}
	if p.Email != nil {
		c.Email = trimmed(p.Email)
	}
	if p.Portable != nil {
		c.Portable = p.Portable
	}
	if p.Newsletter != nil {
		c.Newsletter = p.Newsletter
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (c *Client) Validate() error {
	if c.Email != nil && !isValidEmail(*c.Email) {
		return invalid("emailcli", "invalid email format %q", *c.Email)
	}
	return checkWidths(
		column{"genrecli", c.Genre, 8},
		column{"nomcli", c.Nom, 40},
		column{"prenomcli", c.Prenom, 30},
		column{"adresse1cli", c.Adresse1, 50},
		column{"adresse2cli", c.Adresse2, 50},
		column{"adresse3cli", c.Adresse3, 50},
		column{"telcli", c.Tel, 10},
		column{"portcli", c.Portable, 10},
	)
}
