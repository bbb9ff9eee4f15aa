package domain

// CheckQuantities rejects any non-positive requested quantity. Called by the
// coordinator before it touches the catalog, and again inside ValidateOrder.
func CheckQuantities(requested []LineItemRequest) error {
	for _, it := range requested {
		if it.Quantity <= 0 {
			return &QuantityError{ProductID: it.ProductID, Quantity: it.Quantity}
		}
	}
	return nil
}

// DistinctProductIDs returns the distinct product ids in first-seen order.
func DistinctProductIDs(requested []LineItemRequest) []string {
	seen := make(map[string]struct{}, len(requested))
	ids := make([]string, 0, len(requested))
	for _, it := range requested {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// ValidateOrder checks the requested items against a catalog snapshot and
// computes the priced line items plus the post-order stock state. Pure: no
// I/O, no clock, the snapshot is the only input. Under concurrency the
// result is advisory; the store must re-affirm sufficiency at commit time.
//
// The snapshot must hold exactly the entries for the distinct requested
// product ids. A smaller snapshot means the catalog lookup dropped unknown
// products, which is surfaced as ErrProductNotFound rather than silently
// defaulting quantities.
func ValidateOrder(requested []LineItemRequest, snapshot []CatalogEntry) ([]OrderLineItem, []StockDelta, error) {
	if err := CheckQuantities(requested); err != nil {
		return nil, nil, err
	}

	merged, err := mergeRequested(requested)
	if err != nil {
		return nil, nil, err
	}

	if len(snapshot) != len(merged) {
		return nil, nil, &UnknownProductError{Requested: len(merged), Resolved: len(snapshot)}
	}

	byID := make(map[string]CatalogEntry, len(snapshot))
	for _, e := range snapshot {
		byID[e.ID] = e
	}

	items := make([]OrderLineItem, 0, len(merged))
	deltas := make([]StockDelta, 0, len(merged))
	for _, it := range merged {
		entry, ok := byID[it.ProductID]
		if !ok {
			return nil, nil, &UnknownProductError{Requested: len(merged), Resolved: len(snapshot)}
		}
		// A depleted entry is rejected on its own, not only through the
		// comparison below: keeps a zero request from sneaking past as
		// 0 <= 0 if the quantity check ever changes.
		if entry.StockQuantity == 0 || it.Quantity > entry.StockQuantity {
			return nil, nil, &StockError{ProductID: it.ProductID, Available: entry.StockQuantity}
		}
		items = append(items, OrderLineItem{
			ProductID:      it.ProductID,
			UnitPriceCents: entry.UnitPriceCents,
			Quantity:       it.Quantity,
		})
		deltas = append(deltas, StockDelta{
			ProductID:   it.ProductID,
			NewQuantity: entry.StockQuantity - it.Quantity,
			Ordered:     it.Quantity,
		})
	}
	return items, deltas, nil
}

// mergeRequested folds duplicate product ids into one request each, summing
// quantities and preserving first-seen order. Orders carry one line item per
// distinct product. Every addend is already known positive, so a sum that
// comes out non-positive can only be integer wraparound; that merged
// quantity is as invalid as a negative one in the request itself.
func mergeRequested(requested []LineItemRequest) ([]LineItemRequest, error) {
	idx := make(map[string]int, len(requested))
	out := make([]LineItemRequest, 0, len(requested))
	for _, it := range requested {
		if i, ok := idx[it.ProductID]; ok {
			sum := out[i].Quantity + it.Quantity
			if sum <= 0 {
				return nil, &QuantityError{ProductID: it.ProductID, Quantity: sum}
			}
			out[i].Quantity = sum
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out, nil
}
