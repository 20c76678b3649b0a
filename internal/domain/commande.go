package domain

// Commande represents a customer order / Représente une commande client
type Commande struct {
	CodCde    int64    `db:"codcde"`
	TimbreCli *float64 `db:"timbrecli"`
	TimbreCde *float64 `db:"timbrecde"`
	NbColis   int      `db:"nbcolis"`
	CheqCli   *float64 `db:"cheqcli"`
	IDCondit  *int64   `db:"idcondit"` // Conditionnement.IDCondit
	Comment   *string  `db:"cdecomt"`
	Archive   Flag     `db:"barchive"`
	Stock     Flag     `db:"bstock"`
}

// NewCommande returns an order with its defaults / Retourne une commande avec ses valeurs par défaut
func NewCommande() *Commande {
	return &Commande{NbColis: 1}
}

// CommandePatch lists the writable fields of an order / Liste les champs modifiables d'une commande
type CommandePatch struct {
	TimbreCli *float64 `json:"timbrecli"`
	TimbreCde *float64 `json:"timbrecde"`
	NbColis   *int     `json:"nbcolis"`
	CheqCli   *float64 `json:"cheqcli"`
	IDCondit  *int64   `json:"idcondit"`
	Comment   *string  `json:"cdeComt"`
	Archive   *Flag    `json:"barchive"`
	Stock     *Flag    `json:"bstock"`
}

// Apply copies the fields present in the patch / Copie les champs présents dans le patch
func (p CommandePatch) Apply(c *Commande) {
	if p.TimbreCli != nil {
		c.TimbreCli = p.TimbreCli
	}
	if p.TimbreCde != nil {
		c.TimbreCde = p.TimbreCde
	}
	if p.NbColis != nil {
		c.NbColis = *p.NbColis
	}
	if p.CheqCli != nil {
		c.CheqCli = p.CheqCli
	}
	if p.IDCondit != nil {
		c.IDCondit = p.IDCondit
	}
	if p.Comment != nil {
		c.Comment = p.Comment
	}
	if p.Archive != nil {
		c.Archive = *p.Archive
	}
	if p.Stock != nil {
		c.Stock = *p.Stock
	}
}

// Validate checks field constraints / Vérifie les contraintes de champ
func (c *Commande) Validate() error {
	if c.NbColis < 0 {
		return invalid("nbcolis", "must not be negative")
	}
	return nil
}
