package resolver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Aliases maps source-language station and area names onto curated
// English forms, bypassing machine translation for names it mangles.
type Aliases struct {
	Stations map[string]string `yaml:"stations"`
	Areas    map[string]string `yaml:"areas"`
}

// defaultAliases returns the compiled-in tables: the stations the
// translator is known to get wrong, and 21 of the 23 special wards.
func defaultAliases() *Aliases {
	return &Aliases{
		Stations: map[string]string{
			"駒沢大学": "Komazawa-Daigaku",
			"南新宿":  "Minami-Shinjuku",
			"代々木":  "Yoyogi",
		},
		Areas: map[string]string{
			"世田谷": "Setagaya",
			"渋谷":  "Shibuya",
			"港":   "Minato",
			"新宿":  "Shinjuku",
			"目黒":  "Meguro",
			"品川":  "Shinagawa",
			"中野":  "Nakano",
			"杉並":  "Suginami",
			"大田":  "Ota",
			"中央":  "Chuo",
			"千代田": "Chiyoda",
			"文京":  "Bunkyo",
			"台東":  "Taito",
			"豊島":  "Toshima",
			"北":   "Kita",
			"荒川":  "Arakawa",
			"板橋":  "Itabashi",
			"練馬":  "Nerima",
			"足立":  "Adachi",
			"葛飾":  "Katsushika",
			"江戸川": "Edogawa",
		},
	}
}

// LoadAliases returns the curated alias tables. When path names a YAML
// file its entries merge on top of the defaults, so a deployment can
// patch a bad translation without a rebuild.
func LoadAliases(path string) (*Aliases, error) {
	aliases := defaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file %s: %w", path, err)
	}

	var overrides Aliases
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse aliases file %s: %w", path, err)
	}

	for jp, en := range overrides.Stations {
		aliases.Stations[jp] = en
	}
	for jp, en := range overrides.Areas {
		aliases.Areas[jp] = en
	}

	return aliases, nil
}
