package hotelRepo

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"tripnest/database/docstore"
	"tripnest/utils"
)

// keyVariants returns the alternate spellings tried for a hotel id that does
// not resolve as given, in order: underscores stripped, CamelCase, Title Case.
// Spellings equal to the input or to an earlier variant are skipped.
func keyVariants(id string) []string {
	parts := make([]string, 0)
	for _, p := range strings.Split(id, "_") {
		if p != "" {
			parts = append(parts, capitalize(p))
		}
	}
	candidates := []string{
		strings.ReplaceAll(id, "_", ""),
		strings.Join(parts, ""),
		strings.Join(parts, " "),
	}

	seen := map[string]bool{id: true}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ResolveHotel maps an application hotel id onto its storage key. Each spelling
// is tried first as a hotelId field value, then as a key.
func (r *DocHotelRepo) ResolveHotel(ctx context.Context, hotelID string) (string, error) {
	if hotelID == "" {
		return "", utils.InvalidArgument("hotel id is required")
	}
	for _, candidate := range append([]string{hotelID}, keyVariants(hotelID)...) {
		key, err := r.lookupHotel(ctx, candidate)
		if err != nil {
			return "", utils.Wrap(err, "failed to resolve hotel %s", hotelID)
		}
		if key != "" {
			return key, nil
		}
	}
	return "", utils.NotFound("hotel %s not found", hotelID)
}

// lookupHotel returns "" with a nil error when candidate matches nothing.
func (r *DocHotelRepo) lookupHotel(ctx context.Context, candidate string) (string, error) {
	docs, err := r.store.Find(ctx, HotelsCollection, docstore.Where("hotelId", candidate).Take(1))
	if err != nil {
		return "", err
	}
	if len(docs) > 0 {
		return docs[0].Key, nil
	}
	return r.keyExists(ctx, HotelsCollection, candidate)
}

func (r *DocHotelRepo) keyExists(ctx context.Context, collection, key string) (string, error) {
	if _, err := r.store.Get(ctx, collection, key); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

// resolveRoomType maps a room type id onto its key under hotelKey: key first,
// then the id field.
func (r *DocHotelRepo) resolveRoomType(ctx context.Context, hotelKey, roomTypeID string) (string, error) {
	if roomTypeID == "" {
		return "", utils.InvalidArgument("room type id is required")
	}
	path := roomTypesPath(hotelKey)
	key, err := r.keyExists(ctx, path, roomTypeID)
	if err != nil {
		return "", utils.Wrap(err, "failed to resolve room type %s", roomTypeID)
	}
	if key != "" {
		return key, nil
	}
	docs, err := r.store.Find(ctx, path, docstore.Where("id", roomTypeID).Take(1))
	if err != nil {
		return "", utils.Wrap(err, "failed to resolve room type %s", roomTypeID)
	}
	if len(docs) == 0 {
		return "", utils.NotFound("room type %s not found", roomTypeID)
	}
	return docs[0].Key, nil
}
