package converter

import "pos-checkout/internal/domain/catalog"

type ProductColumns struct {
	IDs        []int64
	Names      []string
	Categories []string
	Sizes      []string
	Prices     []int64
	Quantities []int32
}

func ProductsToColumns(products []*catalog.Product) ProductColumns {
	cols := ProductColumns{
		IDs:        make([]int64, len(products)),
		Names:      make([]string, len(products)),
		Categories: make([]string, len(products)),
		Sizes:      make([]string, len(products)),
		Prices:     make([]int64, len(products)),
		Quantities: make([]int32, len(products)),
	}
	for i, p := range products {
		cols.IDs[i] = p.ID()
		cols.Names[i] = p.Name()
		cols.Categories[i] = p.Category()
		cols.Sizes[i] = p.Size()
		cols.Prices[i] = p.Price().Minor()
		cols.Quantities[i] = int32(p.Quantity()) // #nosec G115 -- quantity column is INTEGER
	}
	return cols
}
