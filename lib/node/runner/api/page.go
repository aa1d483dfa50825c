package api

import (
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
)

// page is the slice of an ordered list of `total` records a `PageQuery`
// asks for. With `reverse`, `offset` counts from the end of the list.
type page struct {
	query *httputils.PageQuery
	total uint64
	start uint64
	count uint64
}

func newPage(p *httputils.PageQuery, total uint64) page {
	pg := page{query: p, total: total}

	offset := p.Offset()
	if offset >= total {
		pg.start = total
		return pg
	}

	pg.count = p.Limit()
	if rest := total - offset; pg.count > rest {
		pg.count = rest
	}

	if p.Reverse() {
		pg.start = total - offset - pg.count
	} else {
		pg.start = offset
	}

	return pg
}

// positions returns the positions of the records in the order they are
// listed.
func (pg page) positions() []uint64 {
	positions := make([]uint64, 0, pg.count)
	for i := uint64(0); i < pg.count; i++ {
		if pg.query.Reverse() {
			positions = append(positions, pg.start+pg.count-1-i)
		} else {
			positions = append(positions, pg.start+i)
		}
	}

	return positions
}

func (pg page) resourceList(rs []resource.Resource) *resource.ResourceList {
	var next, prev string

	offset := pg.query.Offset()
	if end := offset + pg.count; pg.count > 0 && end < pg.total {
		next = pg.query.NextLink(end)
	}
	if offset > 0 && offset <= pg.total {
		prev = pg.query.PrevLink(pg.total - offset)
	}

	if rs == nil {
		rs = []resource.Resource{}
	}

	return resource.NewResourceList(rs, pg.query.SelfLink(), next, prev)
}
