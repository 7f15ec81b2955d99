package viewstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracknstock/internal/domain"
	"tracknstock/internal/filter"
	"tracknstock/internal/form"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, filter.DefaultCriteria(), s.Criteria)
	assert.False(t, s.Modal.IsOpen())
	assert.Equal(t, domain.AllBrands(), s.Brands())
	assert.Zero(t, s.DeleteID)
}

func TestReduce_IsPure(t *testing.T) {
	before := New()

	after := Reduce(before, SetSearch{Text: "apple"}, SetStatus{Status: "low"})

	assert.Equal(t, New(), before)
	assert.Equal(t, "apple", after.Criteria.Search)
	assert.Equal(t, filter.StatusLow, after.Criteria.Status)
}

func TestSetStatus_UnknownFallsBackToAll(t *testing.T) {
	s := Reduce(New(), SetStatus{Status: "low"}, SetStatus{Status: "sideways"})

	assert.Equal(t, filter.StatusAll, s.Criteria.Status)
}

func TestSelectCategory_NarrowsBrands(t *testing.T) {
	s := Reduce(New(), SelectCategory{Category: "Furniture"})

	assert.Equal(t, []string{"Ikea", "HomeTown", "Magnolia"}, s.Brands())
	assert.Equal(t, s.Brands(), s.QuickBrands())
}

func TestSelectCategory_ResetsBrandNotInCategory(t *testing.T) {
	s := Reduce(New(), SelectBrand{Brand: "Sony"}, SelectCategory{Category: "Kitchen"})

	assert.Equal(t, "Kitchen", s.Criteria.Category)
	assert.Equal(t, filter.All, s.Criteria.Brand)
}

func TestSelectCategory_KeepsBrandInCategory(t *testing.T) {
	s := Reduce(New(), SelectBrand{Brand: "Sony"}, SelectCategory{Category: "Electronics"})

	assert.Equal(t, "Sony", s.Criteria.Brand)
}

func TestSelectCategory_EmptyMeansAll(t *testing.T) {
	s := Reduce(New(), SelectCategory{Category: "Fruits"}, SelectCategory{Category: ""})

	assert.Equal(t, filter.All, s.Criteria.Category)
}

func TestSelectBrand_RejectsBrandOutsideCategory(t *testing.T) {
	s := Reduce(New(), SelectCategory{Category: "Fruits"}, SelectBrand{Brand: "Ikea"})

	assert.Equal(t, filter.All, s.Criteria.Brand)
}

func TestToggleBrand(t *testing.T) {
	s := Reduce(New(), ToggleBrand{Brand: "Zara"})
	assert.Equal(t, "Zara", s.Criteria.Brand)

	s = Reduce(s, ToggleBrand{Brand: "zara"})
	assert.Equal(t, filter.All, s.Criteria.Brand)
}

func TestQuickBrands_LimitedWhenAllCategories(t *testing.T) {
	assert.Equal(t, domain.AllBrands()[:6], New().QuickBrands())
}

func TestOpenAdd_SeedsCategoryFromFilter(t *testing.T) {
	s := Reduce(New(), SelectCategory{Category: "Clothes"}, OpenAdd{})

	assert.Equal(t, form.AddOpen, s.Modal.Mode())
	assert.Equal(t, "Clothes", s.Modal.Buffer().Category)

	plain := Reduce(New(), OpenAdd{})
	assert.Empty(t, plain.Modal.Buffer().Category)
}

func TestOpenEdit_And_Close(t *testing.T) {
	p := domain.Product{ID: 9, Name: "Pen", Category: "Stationery", Supplier: "Camlin", Quantity: 100, MinStock: 10, Price: 15}

	s := Reduce(New(), RequestDelete{ID: 3}, OpenEdit{Product: p})
	require.Equal(t, form.EditOpen, s.Modal.Mode())
	assert.Equal(t, int64(9), s.Modal.ProductID())
	assert.Zero(t, s.DeleteID)

	s = Reduce(s, CloseModal{})
	assert.False(t, s.Modal.IsOpen())
}

func TestEditBuffer_IgnoredWhenClosed(t *testing.T) {
	s := Reduce(New(), EditBuffer{Buffer: form.Buffer{Name: "x"}})

	assert.False(t, s.Modal.IsOpen())
	assert.Equal(t, form.Buffer{}, s.Modal.Buffer())
}

func TestRequestDelete(t *testing.T) {
	s := Reduce(New(), RequestDelete{ID: 5})
	assert.Equal(t, int64(5), s.DeleteID)

	s = Reduce(s, CancelDelete{})
	assert.Zero(t, s.DeleteID)

	open := Reduce(New(), OpenAdd{}, RequestDelete{ID: 5})
	assert.Zero(t, open.DeleteID)
}

func TestVisible(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Apple", Quantity: 5, MinStock: 10},
		{ID: 2, Name: "Banana", Quantity: 0, MinStock: 3},
	}

	s := Reduce(New(), SetSearch{Text: "ban"})

	visible := s.Visible(products)
	require.Len(t, visible, 1)
	assert.Equal(t, int64(2), visible[0].ID)
}

func TestQuery_RoundTrip(t *testing.T) {
	s := Reduce(New(),
		SetSearch{Text: "phone"},
		SetStatus{Status: "in-stock"},
		SelectCategory{Category: "Electronics"},
		SelectBrand{Brand: "Apple"},
	)

	q := s.Query()
	assert.Equal(t, "phone", q.Get("q"))
	assert.Equal(t, "in-stock", q.Get("status"))

	back := FromQuery(q)
	assert.Equal(t, s.Criteria, back.Criteria)
}

func TestQuery_DefaultsOmitted(t *testing.T) {
	assert.Empty(t, New().Query())
	assert.Equal(t, "/", New().URL("/"))
}

func TestURL_ExtraParams(t *testing.T) {
	s := Reduce(New(), SelectCategory{Category: "Fruits"})

	assert.Equal(t, "/?category=Fruits&modal=add", s.URL("/", "modal", "add"))
}

func TestWithNotice(t *testing.T) {
	s := Reduce(New(), SetSearch{Text: "a b"})

	assert.Equal(t, "/?notice=created&q=a+b", s.WithNotice("/", "created"))
	assert.Equal(t, "/?q=a+b", s.WithNotice("/", "bogus"))
}

func TestFromQuery_Notice(t *testing.T) {
	s := FromQuery(url.Values{"notice": {"deleted"}})
	assert.Equal(t, Notice{Kind: NoticeSuccess, Message: "Product deleted successfully!"}, s.Notice)

	unknown := FromQuery(url.Values{"notice": {"<script>"}})
	assert.Equal(t, Notice{}, unknown.Notice)
}

func TestParseReturn(t *testing.T) {
	s := ParseReturn("?category=Kitchen&brand=Philips&notice=created")

	assert.Equal(t, "Kitchen", s.Criteria.Category)
	assert.Equal(t, "Philips", s.Criteria.Brand)
	assert.Equal(t, Notice{}, s.Notice)

	assert.Equal(t, New(), ParseReturn("%zz"))
}
