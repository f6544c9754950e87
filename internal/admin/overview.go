package admin

import (
	"github.com/aniverse-shop/aniverse-backend/internal/category"
	"github.com/aniverse-shop/aniverse-backend/internal/product"
)

// Group is one category's section of the admin catalog table.
type Group struct {
	Category category.Category `json:"category"`
	Products []product.Product `json:"products"`
}

// Overview is the reconciled admin view of the catalog: products grouped per
// category plus the Uncategorized bucket.
type Overview struct {
	Groups   []Group           `json:"groups"`
	Orphaned []product.Product `json:"orphaned"`
}

// Reconcile partitions products by category slug. Pure and deterministic:
// categories are walked in input order and each claims the not-yet-claimed
// products whose Category equals its slug, preserving product order. Groups
// with no products are omitted. When two categories share a slug the first
// one claims every matching product. Products matching no category land in
// Orphaned, order preserved; with no categories at all, that is every product.
func Reconcile(categories []category.Category, products []product.Product) Overview {
	claimed := make([]bool, len(products))
	groups := make([]Group, 0, len(categories))

	for _, cat := range categories {
		var members []product.Product
		for i, p := range products {
			if !claimed[i] && p.Category == cat.Slug {
				claimed[i] = true
				members = append(members, p)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{Category: cat, Products: members})
	}

	orphaned := make([]product.Product, 0)
	for i, p := range products {
		if !claimed[i] {
			orphaned = append(orphaned, p)
		}
	}

	return Overview{Groups: groups, Orphaned: orphaned}
}
