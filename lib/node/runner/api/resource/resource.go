package resource

import (
	"strings"

	"github.com/nvellon/hal"
)

// Resource is one record of the api, rendered as hal+json.
type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList embeds its records under "records" with the paging links.
type ResourceList struct {
	records []Resource
	links   map[string]string
}

func NewResourceList(records []Resource, self, next, prev string) *ResourceList {
	return &ResourceList{
		records: records,
		links:   map[string]string{"self": self, "next": next, "prev": prev},
	}
}

func (l *ResourceList) LinkSelf() string {
	return l.links["self"]
}

func (l *ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}

func (l *ResourceList) Resource() *hal.Resource {
	r := hal.NewResource(struct{}{}, l.LinkSelf())

	embedded := make(hal.ResourceCollection, 0, len(l.records))
	for _, record := range l.records {
		embedded = append(embedded, record.Resource())
	}
	r.EmbedCollection("records", embedded)

	for _, rel := range []string{"prev", "next"} {
		if href := l.links[rel]; href != "" {
			r.AddLink(hal.Relation(rel), hal.NewLink(href))
		}
	}

	return r
}

// expandURL fills the "{id}" of the url patterns in constant.go.
func expandURL(pattern, id string) string {
	return strings.Replace(pattern, "{id}", id, -1)
}
