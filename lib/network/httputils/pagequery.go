package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

const DefaultMaxLimit uint64 = 100

// PageQuery reads the paging parameters of a list request: `offset`,
// `limit` and `reverse`.
type PageQuery struct {
	request   *http.Request
	reverse   bool
	offset    uint64
	hasOffset bool
	limit     uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultMaxLimit,
	}
	if err := p.parseRequest(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Offset() uint64 {
	return p.offset
}

// HasOffset is false when the request did not give `offset`.
func (p *PageQuery) HasOffset() bool {
	return p.hasOffset
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

// NextLink points to the page starting at offset in the same direction.
func (p *PageQuery) NextLink(offset uint64) string {
	return p.link(offset, p.reverse)
}

// PrevLink points to the page starting at offset in the other direction.
func (p *PageQuery) PrevLink(offset uint64) string {
	return p.link(offset, !p.reverse)
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()

	if r := q.Get("reverse"); r != "" {
		reverse, err := common.ParseBoolQueryString(r)
		if err != nil {
			return err
		}
		p.reverse = reverse
	}

	if o := q.Get("offset"); o != "" {
		offset, err := strconv.ParseUint(o, 10, 64)
		if err != nil {
			return errors.InvalidQueryString.Describe("offset")
		}
		p.offset = offset
		p.hasOffset = true
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 {
			return errors.InvalidQueryString.Describe("limit")
		}
		if limit > DefaultMaxLimit {
			limit = DefaultMaxLimit
		}
		p.limit = limit
	}

	return nil
}

func (p *PageQuery) link(offset uint64, reverse bool) string {
	v := url.Values{
		"offset": []string{strconv.FormatUint(offset, 10)},
		"limit":  []string{strconv.FormatUint(p.limit, 10)},
	}
	if reverse {
		v.Set("reverse", "true")
	}

	return fmt.Sprintf("%s?%s", p.request.URL.Path, v.Encode())
}
