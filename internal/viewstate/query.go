package viewstate

import (
	"net/url"
	"strings"

	"tracknstock/internal/filter"
)

const (
	paramSearch   = "q"
	paramStatus   = "status"
	paramCategory = "category"
	paramBrand    = "brand"
	paramNotice   = "notice"
)

var noticeMessages = map[string]string{
	"created": "Product added successfully!",
	"updated": "Product updated successfully!",
	"deleted": "Product deleted successfully!",
}

// FromQuery rebuilds the filter selections and any success notice carried
// in a URL query.
func FromQuery(q url.Values) State {
	s := Reduce(New(),
		SetSearch{Text: q.Get(paramSearch)},
		SetStatus{Status: q.Get(paramStatus)},
		SelectCategory{Category: q.Get(paramCategory)},
		SelectBrand{Brand: q.Get(paramBrand)},
	)
	if msg, ok := noticeMessages[q.Get(paramNotice)]; ok {
		s = Reduce(s, Notify{Kind: NoticeSuccess, Message: msg})
	}
	return s
}

// Query encodes the non-default filter selections.
func (s State) Query() url.Values {
	q := url.Values{}
	c := s.Criteria
	if c.Search != "" {
		q.Set(paramSearch, c.Search)
	}
	if c.Status != "" && c.Status != filter.StatusAll {
		q.Set(paramStatus, string(c.Status))
	}
	if !isAll(c.Category) {
		q.Set(paramCategory, c.Category)
	}
	if !isAll(c.Brand) {
		q.Set(paramBrand, c.Brand)
	}
	return q
}

// URL returns path with the filter selections plus extra parameters.
func (s State) URL(path string, extra ...string) string {
	q := s.Query()
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// WithNotice is the redirect target after a successful mutation.
func (s State) WithNotice(path, code string) string {
	if _, ok := noticeMessages[code]; !ok {
		return s.URL(path)
	}
	return s.URL(path, paramNotice, code)
}

// ParseReturn decodes the filter selections a form carried in its hidden
// return field.
func ParseReturn(raw string) State {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return New()
	}
	q.Del(paramNotice)
	return FromQuery(q)
}
