package docstore

import (
	"testing"
	"time"
)

type sample struct {
	ID       string            `firestore:"id"`
	Price    float64           `firestore:"price"`
	Count    int               `firestore:"count"`
	Featured bool              `firestore:"featured"`
	Created  int64             `firestore:"createdAt"`
	Contact  map[string]string `firestore:"contactInfo"`
	Images   []string          `firestore:"images"`
	Note     string            `firestore:"note,omitempty"`
	Skip     string            `firestore:"-"`
}

func TestEncodeUsesFirestoreTags(t *testing.T) {
	doc, err := Encode(sample{ID: "bali", Price: 90, Count: 2, Created: 42, Contact: map[string]string{"phone": "1"}, Skip: "x"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if doc["id"] != "bali" || doc["price"] != 90.0 || doc["createdAt"] != int64(42) {
		t.Fatalf("unexpected document %#v", doc)
	}
	if _, ok := doc["note"]; ok {
		t.Error("omitempty field should be left out")
	}
	if _, ok := doc["Skip"]; ok {
		t.Error("ignored field was encoded")
	}
}

func TestDecodeAcceptsDriverTypes(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	data := map[string]any{
		"id":          "bali",
		"price":       int64(180),
		"count":       int64(3),
		"featured":    true,
		"createdAt":   created,
		"contactInfo": map[string]any{"email": "a@b.c"},
		"images":      []any{"a.jpg", "b.jpg"},
		"extra":       "ignored",
	}
	var s sample
	if err := Decode(data, &s); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Price != 180 || s.Count != 3 || !s.Featured {
		t.Fatalf("numeric/bool fields not decoded: %+v", s)
	}
	if s.Created != created.UnixMilli() {
		t.Errorf("timestamp decoded to %d, want %d", s.Created, created.UnixMilli())
	}
	if s.Contact["email"] != "a@b.c" || len(s.Images) != 2 {
		t.Errorf("nested values not decoded: %+v", s)
	}
}

func TestPathHelpers(t *testing.T) {
	p := Path("hotels", "bali_resort", "roomTypes", "deluxe", "rooms")
	if p != "hotels/bali_resort/roomTypes/deluxe/rooms" {
		t.Fatalf("Path = %q", p)
	}
	parent, names := splitPath(p)
	if parent != "hotels/bali_resort/roomTypes/deluxe" {
		t.Errorf("parent = %q", parent)
	}
	if len(names) != 3 || names[2] != "rooms" {
		t.Errorf("names = %v", names)
	}
	if !IsNested(p) || IsNested("trips") {
		t.Error("IsNested mismatch")
	}
	if parent, _ := splitPath("trips"); parent != "" {
		t.Errorf("root parent = %q", parent)
	}
}
