package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopifake/catalog-search/errs"
)

// Payload field keys. The index payload is a denormalized snapshot of the
// product's display and scoping fields, refreshed only on explicit upsert.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldSKU         = "sku"
	FieldSlug        = "slug"
	FieldPriceCents  = "price_cents"
	FieldStock       = "stock"
	FieldShopID      = "shop_id"
	FieldCategoryID  = "category_id"
	FieldAttributes  = "attributes"
	FieldIsActive    = "is_active"
)

// ParsePriceCents converts a decimal price string to scaled integer cents,
// the single canonical monetary encoding stored in index payloads.
// Accepts up to two fraction digits; "" means no price (0, no error).
func ParsePriceCents(price string) (int64, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return 0, nil
	}

	whole, frac, _ := strings.Cut(price, ".")
	if len(frac) > 2 {
		return 0, errs.Invalidf("catalog: price %q has more than two fraction digits", price)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, errs.Invalidf("catalog: malformed price %q", price)
	}
	return cents, nil
}

// FormatPriceCents renders scaled integer cents back to the decimal string
// used at the API edge.
func FormatPriceCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// BuildPayload snapshots a product's display and scoping fields for storage
// alongside its vector. The scoping fields (shop_id, category_id) back the
// index-side filters; everything else is display data returned with search
// results without a secondary lookup.
func BuildPayload(p Product) (map[string]any, error) {
	cents, err := ParsePriceCents(p.Price)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		FieldName:        p.Name,
		FieldDescription: p.Description,
		FieldSKU:         p.SKU,
		FieldSlug:        p.Slug,
		FieldPriceCents:  cents,
		FieldStock:       p.Stock,
		FieldShopID:      p.ShopID,
		FieldCategoryID:  p.CategoryID,
		FieldIsActive:    p.IsActive,
	}

	if len(p.Attributes) > 0 {
		attrs := make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			attrs[k] = v
		}
		payload[FieldAttributes] = attrs
	}

	return payload, nil
}

// ProductFromPayload rebuilds a product view from a stored payload snapshot.
// Tolerant of missing fields: payloads written by older versions simply
// yield zero values.
func ProductFromPayload(id uint64, payload map[string]any) Product {
	p := Product{ID: int64(id)}
	if payload == nil {
		return p
	}

	p.Name = payloadString(payload, FieldName)
	p.Description = payloadString(payload, FieldDescription)
	p.SKU = payloadString(payload, FieldSKU)
	p.Slug = payloadString(payload, FieldSlug)
	p.Stock = payloadInt(payload, FieldStock)
	p.ShopID = payloadInt(payload, FieldShopID)
	p.CategoryID = payloadInt(payload, FieldCategoryID)

	if cents := payloadInt(payload, FieldPriceCents); cents != 0 {
		p.Price = FormatPriceCents(cents)
	}
	if v, ok := payload[FieldIsActive].(bool); ok {
		p.IsActive = v
	}
	if attrs, ok := payload[FieldAttributes].(map[string]any); ok && len(attrs) > 0 {
		p.Attributes = make(map[string]string, len(attrs))
		for k, v := range attrs {
			if s, ok := v.(string); ok {
				p.Attributes[k] = s
			}
		}
	}

	return p
}

func payloadString(payload map[string]any, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

func payloadInt(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
