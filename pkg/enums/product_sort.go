package enums

import "fmt"

// ProductSort names the catalog list orderings exposed to clients.
type ProductSort string

const (
	ProductSortNew       ProductSort = "new"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortNameAsc   ProductSort = "name_asc"
)

var validProductSorts = []ProductSort{
	ProductSortNew,
	ProductSortPriceAsc,
	ProductSortPriceDesc,
	ProductSortNameAsc,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. Empty and unknown
// values fall back to the newest-first ordering.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortNew, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
