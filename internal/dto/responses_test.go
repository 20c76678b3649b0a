package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientToDTO_JSONShape(t *testing.T) {
	nom, email := "John Doe", "john@example.com"
	on := domain.FlagOn
	body, err := json.Marshal(dto.ClientToDTO(&domain.Client{CodCli: 7, Nom: &nom, Email: &email, Newsletter: &on}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"codcli": 7,
		"genrecli": null,
		"nomcli": "John Doe",
		"prenomcli": null,
		"adresse1cli": null,
		"adresse2cli": null,
		"adresse3cli": null,
		"villecli_id": null,
		"telcli": null,
		"emailcli": "john@example.com",
		"portcli": null,
		"newsletter": 1
	}`, string(body))
}

func TestCommandeToDTO_CommentKey(t *testing.T) {
	comment := "fragile"
	c := domain.NewCommande()
	c.CodCde = 3
	c.Comment = &comment
	c.Archive = domain.FlagOn

	body, err := json.Marshal(dto.CommandeToDTO(c))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "fragile", got["cdeComt"])
	assert.EqualValues(t, 1, got["nbcolis"])
	assert.EqualValues(t, 1, got["barchive"])
	assert.EqualValues(t, 0, got["bstock"])
}

func TestUtilisateurToDTO_Date(t *testing.T) {
	d, err := domain.ParseDate("2024-01-31")
	require.NoError(t, err)

	body, err := json.Marshal(dto.UtilisateurToDTO(&domain.Utilisateur{Code: 1, DateInscription: d}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"date_insc_utilisateur":"2024-01-31"`)
}

func TestMap(t *testing.T) {
	assert.Equal(t, []dto.DepartementResponse{}, dto.Map[domain.Departement](nil, dto.DepartementToDTO))

	items := []*domain.Departement{{Code: "01", Nom: "Ain"}, {Code: "02", Nom: "Aisne", OrdreAff: 2}}
	got := dto.Map(items, dto.DepartementToDTO)
	require.Len(t, got, 2)
	assert.Equal(t, dto.DepartementResponse{Code: "02", Nom: "Aisne", OrdreAff: 2}, got[1])
}
