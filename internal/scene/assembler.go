package scene

import (
	"strings"

	"github.com/decorvista/ar-backend/internal/catalog"

	"go.uber.org/zap"
)

// maxAssembledModels bounds how many instances a design payload may add to a
// fresh scene.
const maxAssembledModels = 5

// keywordMapping pairs a design keyword with the catalog model it stands for.
// Order matters: the first keyword contained in an element text wins, which
// is why "coffee table" sits before "table".
type keywordMapping struct {
	keyword string
	modelID string
}

var designKeywords = []keywordMapping{
	{"sofa", "modern_sofa_01"},
	{"chair", "accent_chair_01"},
	{"coffee table", "coffee_table_01"},
	{"bookshelf", "bookshelf_01"},
	{"lamp", "floor_lamp_01"},
	{"table", "dining_table_01"},
	{"desk", "antique_desk_01"},
	{"mirror", "mirror_decorative_01"},
	{"kitchen", "kitchen_setup_01"},
}

// Assembler populates a new scene from the free-text key elements of an
// upstream design recommendation. It is best-effort: unmatched elements are
// skipped silently and an empty result is not an error.
type Assembler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewAssembler builds an assembler over the given catalog.
func NewAssembler(cat *catalog.Catalog, logger *zap.Logger) *Assembler {
	return &Assembler{catalog: cat, logger: logger}
}

// Populate adds at most maxAssembledModels instances to the scene, one per
// matched key element, deduplicated by catalog model id (first occurrence
// wins). It returns the number of instances added.
func (a *Assembler) Populate(s *Scene, keyElements []string) int {
	added := make(map[string]bool, maxAssembledModels)
	count := 0

	for _, element := range keyElements {
		if count >= maxAssembledModels {
			break
		}
		elementLower := strings.ToLower(element)
		for _, km := range designKeywords {
			if !strings.Contains(elementLower, km.keyword) {
				continue
			}
			if !added[km.modelID] {
				entry, err := a.catalog.Get(km.modelID)
				if err != nil {
					// Keyword table references a model the seed does not
					// carry; treat like any other non-match.
					break
				}
				s.AddModel(entry)
				a.catalog.IncrementUsage(km.modelID)
				added[km.modelID] = true
				count++
			}
			break
		}
	}

	if count > 0 {
		a.logger.Debug("scene assembled from design payload",
			zap.String("scene_id", s.ID()),
			zap.Int("models_added", count),
			zap.Int("key_elements", len(keyElements)),
		)
	}
	return count
}
