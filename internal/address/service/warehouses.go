package service

import (
	"sort"
	"strings"

	"shipping_portal_backend/platform/novaposhta"
)

// FilterWarehouses returns the warehouses whose description, short address or
// number contains the query as a case-insensitive substring. An empty or
// whitespace-only query returns the input list unchanged.
func FilterWarehouses(warehouses []novaposhta.Warehouse, query string) []novaposhta.Warehouse {
	searchTerm := strings.ToLower(strings.TrimSpace(query))
	if searchTerm == "" {
		return warehouses
	}

	filtered := make([]novaposhta.Warehouse, 0, len(warehouses))
	for _, warehouse := range warehouses {
		if strings.Contains(strings.ToLower(warehouse.Description), searchTerm) ||
			strings.Contains(strings.ToLower(warehouse.ShortAddress), searchTerm) ||
			strings.Contains(strings.ToLower(warehouse.Number), searchTerm) {
			filtered = append(filtered, warehouse)
		}
	}
	return filtered
}

// SortWarehousesByNumber returns a new list ordered by warehouse number
// ascending. Numbers that do not start with digits sort as zero; the sort is
// stable and the input is not mutated.
func SortWarehousesByNumber(warehouses []novaposhta.Warehouse) []novaposhta.Warehouse {
	sorted := make([]novaposhta.Warehouse, len(warehouses))
	copy(sorted, warehouses)

	sort.SliceStable(sorted, func(i, j int) bool {
		return warehouseNumber(sorted[i].Number) < warehouseNumber(sorted[j].Number)
	})
	return sorted
}

// GroupWarehousesByType buckets warehouses by their TypeOfWarehouse reference.
// Records without a type land under "Other".
func GroupWarehousesByType(warehouses []novaposhta.Warehouse) map[string][]novaposhta.Warehouse {
	groups := make(map[string][]novaposhta.Warehouse)
	for _, warehouse := range warehouses {
		key := warehouse.TypeOfWarehouse
		if key == "" {
			key = "Other"
		}
		groups[key] = append(groups[key], warehouse)
	}
	return groups
}

// warehouseNumber parses the leading digit run of a warehouse number.
func warehouseNumber(value string) int {
	value = strings.TrimSpace(value)
	n := 0
	parsed := false
	for _, r := range value {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		parsed = true
	}
	if !parsed {
		return 0
	}
	return n
}
