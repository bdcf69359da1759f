// Package analyticsdto - Test resolve sort field theo whitelist.
package analyticsdto

import "testing"

func TestResolveSortField(t *testing.T) {
	cases := []struct {
		requested    string
		wantField    string
		wantFallback bool
	}{
		{SortFieldViews, SortFieldViews, false},
		{SortFieldCartAdds, SortFieldCartAdds, false},
		{SortFieldViewToCartRate, SortFieldViewToCartRate, false},
		{SortFieldPrice, SortFieldPrice, false},
		// Rỗng là "không yêu cầu", dùng mặc định nhưng không phải fallback
		{"", SortFieldViews, false},
		// Field lạ fallback về views và được đánh dấu
		{"bogus", SortFieldViews, true},
		{"Views", SortFieldViews, true}, // phân biệt hoa thường
		{"revenue", SortFieldViews, true},
	}

	for _, tc := range cases {
		got := ResolveSortField(tc.requested)
		if got.Field != tc.wantField {
			t.Errorf("ResolveSortField(%q).Field = %q, muốn %q", tc.requested, got.Field, tc.wantField)
		}
		if got.Fallback != tc.wantFallback {
			t.Errorf("ResolveSortField(%q).Fallback = %v, muốn %v", tc.requested, got.Fallback, tc.wantFallback)
		}
	}
}
