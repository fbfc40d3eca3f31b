package analysis

import (
	"github.com/jdkato/prose/v2"
)

// ExtractEntities recognizes named entities and groups their surface text
// by entity label. Within a label, repeated surface forms keep only their
// first occurrence. The map is never nil, so an entity-free text still
// serializes as an empty object.
func (a *Analyzer) ExtractEntities(text string) map[string][]string {
	entities := make(map[string][]string)

	doc, err := prose.NewDocument(text)
	if err != nil {
		a.logger.Warn("entity recognition failed", "error", err)
		return entities
	}

	return groupEntities(doc.Entities(), entities)
}

// groupEntities folds recognized spans into the label map with
// order-preserving deduplication per label.
func groupEntities(spans []prose.Entity, entities map[string][]string) map[string][]string {
	for _, span := range spans {
		if containsString(entities[span.Label], span.Text) {
			continue
		}
		entities[span.Label] = append(entities[span.Label], span.Text)
	}
	return entities
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
