package source

import (
	"fmt"

	"github.com/c360studio/sicindex/lookup"
	"github.com/c360studio/sicindex/meta"
	"github.com/c360studio/sicindex/sic"
)

// Paths names the data files a catalog is loaded from. Metadata holds
// glob patterns so the record set can be sharded across files.
// Descriptions and Rephrased are optional; when empty the matching
// lookup is left nil.
type Paths struct {
	Structure     string
	ActivityIndex string
	Metadata      []string
	Descriptions  string
	Rephrased     string
}

// Catalog bundles the loaded hierarchy with its lookup collaborators.
type Catalog struct {
	Hierarchy    *sic.Hierarchy
	Meta         *meta.Store
	Descriptions *lookup.DescriptionLookup
	Rephrase     *lookup.RephraseLookup
}

// Load reads the data files and assembles the catalog. Structure,
// metadata, and the activity index are required, since the hierarchy
// cannot be built without them.
func Load(paths Paths) (*Catalog, error) {
	structure, err := LoadStructure(paths.Structure)
	if err != nil {
		return nil, err
	}

	records, err := LoadMetadataGlob(paths.Metadata)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	store := meta.NewStore(records)

	activities, err := LoadActivityIndex(paths.ActivityIndex)
	if err != nil {
		return nil, err
	}

	hierarchy, err := sic.Build(structure, store, activities)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}

	catalog := &Catalog{
		Hierarchy: hierarchy,
		Meta:      store,
	}

	if paths.Descriptions != "" {
		rows, err := LoadDescriptions(paths.Descriptions)
		if err != nil {
			return nil, err
		}
		catalog.Descriptions = lookup.NewDescriptionLookup(rows, store)
	}

	if paths.Rephrased != "" {
		rows, err := LoadRephrased(paths.Rephrased)
		if err != nil {
			return nil, err
		}
		catalog.Rephrase = lookup.NewRephraseLookup(rows)
	}

	return catalog, nil
}
