package blocks

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//EnvPrefix prefix of environment variables overriding catalog entries
const EnvPrefix = "FLOWKIT_BLOCK_"

// Catalog maps property names to block names, so code refers to blocks by a
// stable property while deployments rename the underlying block. Loaded from
// YAML of the form:
//
//	blocks:
//	  db-password: secret-db-password-prod
//	  landing-path: landing-folder
//
// An environment variable FLOWKIT_BLOCK_<PROPERTY> (upper-cased, dashes and
// dots mapped to underscores) overrides the file entry for that property.
type Catalog struct {
	Blocks map[string]string `yaml:"blocks"`
}

//ParseCatalog parse catalog YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	catalog := &Catalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, errors.Wrap(err, "parse block catalog")
	}
	if catalog.Blocks == nil {
		catalog.Blocks = map[string]string{}
	}
	return catalog, nil
}

//LoadCatalog read and parse a catalog YAML file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read block catalog %v", path)
	}
	return ParseCatalog(data)
}

// BlockName resolves the block name for a property, environment override
// first, catalog entry second.
func (c *Catalog) BlockName(property string) (string, bool) {
	if env := os.Getenv(EnvPrefix + envKey(property)); env != "" {
		return env, true
	}
	name, ok := c.Blocks[property]
	return name, ok
}

// Bind creates one lazy cell per catalog property against the given store.
// Nothing is fetched until a cell's first Get.
func (c *Catalog) Bind(store Store) map[string]*Lazy {
	cells := make(map[string]*Lazy, len(c.Blocks))
	for property := range c.Blocks {
		name, _ := c.BlockName(property)
		cells[property] = NewLazy(store, name)
	}
	return cells
}

func envKey(property string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(property))
}
