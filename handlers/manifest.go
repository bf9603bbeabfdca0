package handlers

import (
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/services/catalog"
)

const (
	ManifestID          = "org.kidsflix.stremio"
	AddonName           = "KidsFlix"
	ManifestDescription = "Catálogo infantil seguro. Solo contenido apropiado para niños con filtrado multinivel."
	ManifestLogo        = "https://img.icons8.com/color/512/children.png"
)

type ManifestExtra struct {
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

type ManifestCatalog struct {
	Type  models.MediaKind `json:"type"`
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Extra []ManifestExtra  `json:"extra,omitempty"`
}

type BehaviorHints struct {
	Adult bool `json:"adult"`
	P2P   bool `json:"p2p"`
}

// Manifest is the addon descriptor served at /{config}/manifest.json.
type Manifest struct {
	ID            string             `json:"id"`
	Version       string             `json:"version"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Logo          string             `json:"logo"`
	Resources     []string           `json:"resources"`
	Types         []models.MediaKind `json:"types"`
	IDPrefixes    []string           `json:"idPrefixes"`
	BehaviorHints BehaviorHints      `json:"behaviorHints"`
	Catalogs      []ManifestCatalog  `json:"catalogs"`
}

// BuildManifest lists every published catalog. Searchable catalogs advertise
// the skip, search and genre extras.
func BuildManifest() Manifest {
	specs := catalog.All()
	catalogs := make([]ManifestCatalog, 0, len(specs))
	for _, s := range specs {
		mc := ManifestCatalog{Type: s.Kind, ID: s.ID, Name: s.Name}
		if s.Searchable() {
			options := catalog.GenreOptions(s.Kind)
			names := make([]string, 0, len(options))
			for _, g := range options {
				names = append(names, g.Name)
			}
			mc.Extra = []ManifestExtra{{Name: "skip"}, {Name: "search"}, {Name: "genre", Options: names}}
		}
		catalogs = append(catalogs, mc)
	}

	return Manifest{
		ID:            ManifestID,
		Version:       Version,
		Name:          AddonName,
		Description:   ManifestDescription,
		Logo:          ManifestLogo,
		Resources:     []string{"catalog", "meta"},
		Types:         []models.MediaKind{models.MediaMovie, models.MediaSeries},
		IDPrefixes:    []string{"tt"},
		BehaviorHints: BehaviorHints{Adult: false, P2P: false},
		Catalogs:      catalogs,
	}
}
