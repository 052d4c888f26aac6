package handler

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ExtractVariantIDs pulls variant ids out of a catalog write response body.
// Supported shapes, matching what the catalog handlers produce:
//
//	{"product": {"variants": [{"id": "..."}]}}
//	{"variant": {"id": "..."}}
//	{"variants": [{"id": "..."}]}
//
// Unparseable bodies and unknown shapes yield no ids. Duplicates are removed
// while preserving first-seen order.
func ExtractVariantIDs(body []byte) []uuid.UUID {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	var ids []uuid.UUID

	if raw, ok := payload["product"]; ok {
		var product struct {
			Variants []idHolder `json:"variants"`
		}
		if err := json.Unmarshal(raw, &product); err == nil {
			ids = appendIDs(ids, product.Variants)
		}
	}

	if raw, ok := payload["variant"]; ok {
		var variant idHolder
		if err := json.Unmarshal(raw, &variant); err == nil {
			ids = appendIDs(ids, []idHolder{variant})
		}
	}

	if raw, ok := payload["variants"]; ok {
		var variants []idHolder
		if err := json.Unmarshal(raw, &variants); err == nil {
			ids = appendIDs(ids, variants)
		}
	}

	return dedupe(ids)
}

type idHolder struct {
	ID string `json:"id"`
}

func appendIDs(ids []uuid.UUID, holders []idHolder) []uuid.UUID {
	for _, holder := range holders {
		parsed, err := uuid.Parse(holder.ID)
		if err != nil {
			continue
		}
		ids = append(ids, parsed)
	}
	return ids
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
