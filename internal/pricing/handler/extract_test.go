package handler

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestExtractVariantIDsFromProductShape(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	body := fmt.Sprintf(`{"product":{"id":"x","variants":[{"id":%q},{"id":%q}]}}`, first, second)

	ids := ExtractVariantIDs([]byte(body))

	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestExtractVariantIDsFromVariantShape(t *testing.T) {
	id := uuid.New()
	body := fmt.Sprintf(`{"variant":{"id":%q,"title":"Small"}}`, id)

	ids := ExtractVariantIDs([]byte(body))

	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestExtractVariantIDsFromVariantsShape(t *testing.T) {
	id := uuid.New()
	body := fmt.Sprintf(`{"variants":[{"id":%q}]}`, id)

	ids := ExtractVariantIDs([]byte(body))

	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestExtractVariantIDsDeduplicates(t *testing.T) {
	id := uuid.New()
	body := fmt.Sprintf(`{"product":{"variants":[{"id":%q}]},"variants":[{"id":%q}]}`, id, id)

	ids := ExtractVariantIDs([]byte(body))

	if len(ids) != 1 {
		t.Fatalf("expected one id after dedupe, got %d", len(ids))
	}
}

func TestExtractVariantIDsIgnoresMalformedInput(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`[]`,
		`{"product":{"variants":"nope"}}`,
		`{"variant":{"id":"not-a-uuid"}}`,
		`{"unrelated":{"id":"also-unrelated"}}`,
	}

	for _, body := range cases {
		if ids := ExtractVariantIDs([]byte(body)); len(ids) != 0 {
			t.Fatalf("expected no ids for %q, got %v", body, ids)
		}
	}
}
