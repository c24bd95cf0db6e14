package service

import (
	"testing"

	"shipping_portal_backend/platform/novaposhta"
)

func TestFilterWarehouses_EmptyQueryReturnsSameList(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Ref: "a", Description: "Відділення №1"},
		{Ref: "b", Description: "Відділення №2"},
	}

	for _, query := range []string{"", "   ", "\t"} {
		got := FilterWarehouses(list, query)
		if len(got) != len(list) {
			t.Fatalf("query %q: expected %d warehouses, got %d", query, len(list), len(got))
		}
		for i := range got {
			if got[i].Ref != list[i].Ref {
				t.Fatalf("query %q: order changed at index %d", query, i)
			}
		}
	}
}

func TestFilterWarehouses_EmptyList(t *testing.T) {
	if got := FilterWarehouses([]novaposhta.Warehouse{}, "5"); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestFilterWarehouses_MatchesThreeFields(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Ref: "desc", Description: "Поштомат біля ТРЦ Ocean Plaza"},
		{Ref: "addr", ShortAddress: "вул. Хрещатик, 22"},
		{Ref: "num", Number: "105"},
		{Ref: "none", Description: "інше"},
	}

	cases := map[string]string{
		"ocean":    "desc",
		"хрещатик": "addr",
		"105":      "num",
	}
	for query, wantRef := range cases {
		got := FilterWarehouses(list, query)
		if len(got) != 1 || got[0].Ref != wantRef {
			t.Fatalf("query %q: expected single match %q, got %+v", query, wantRef, got)
		}
	}
}

func TestFilterWarehouses_MissingFieldsDoNotPanic(t *testing.T) {
	list := []novaposhta.Warehouse{{Ref: "empty"}}
	if got := FilterWarehouses(list, "5"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestSortWarehousesByNumber_Numeric(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Number: "10"},
		{Number: "2"},
		{Number: "1"},
	}

	got := SortWarehousesByNumber(list)

	want := []string{"1", "2", "10"}
	for i, number := range want {
		if got[i].Number != number {
			t.Fatalf("expected order %v, got position %d = %q", want, i, got[i].Number)
		}
	}
	// input untouched
	if list[0].Number != "10" {
		t.Fatal("input list was mutated")
	}
}

func TestSortWarehousesByNumber_UnparseableSortsAsZero(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Ref: "a", Number: "3"},
		{Ref: "b", Number: "цех"},
		{Ref: "c", Number: "1"},
	}

	got := SortWarehousesByNumber(list)
	if got[0].Ref != "b" || got[1].Ref != "c" || got[2].Ref != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSortWarehousesByNumber_StableForEqualKeys(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Ref: "first", Number: "7"},
		{Ref: "second", Number: "7"},
	}

	got := SortWarehousesByNumber(list)
	if got[0].Ref != "first" || got[1].Ref != "second" {
		t.Fatalf("equal keys reordered: %+v", got)
	}
}

func TestGroupWarehousesByType(t *testing.T) {
	list := []novaposhta.Warehouse{
		{Ref: "a", TypeOfWarehouse: "postomat"},
		{Ref: "b", TypeOfWarehouse: "branch"},
		{Ref: "c", TypeOfWarehouse: "postomat"},
		{Ref: "d"},
	}

	groups := GroupWarehousesByType(list)
	if len(groups["postomat"]) != 2 {
		t.Fatalf("expected 2 postomats, got %d", len(groups["postomat"]))
	}
	if len(groups["branch"]) != 1 {
		t.Fatalf("expected 1 branch, got %d", len(groups["branch"]))
	}
	if len(groups["Other"]) != 1 || groups["Other"][0].Ref != "d" {
		t.Fatalf("expected untyped record under Other, got %+v", groups["Other"])
	}
}
