package domain

import (
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// LineKind tags the cart line union.
type LineKind string

const (
	LineKindRegular LineKind = "regular"
	LineKindCombo   LineKind = "combo"
)

// CartLine is one entry of an inbound cart: either a plain menu item or a
// combo selection. The shape is validated at the JSON boundary so business
// logic never branches on missing fields.
type CartLine struct {
	Kind LineKind

	// regular
	MenuItemID snowflake.ID

	// combo
	ComboTypeID         snowflake.ID
	BaseChoiceID        *snowflake.ID
	SelectedEntreeIDs   []snowflake.ID
	AdditionalEntreeIDs []snowflake.ID

	Quantity int

	// DeclaredUnitPriceCents is a display hint from the client. Pricing
	// always recomputes from the catalog; this value is never trusted.
	DeclaredUnitPriceCents int64
}

type cartLineWire struct {
	Kind                   string   `json:"kind"`
	MenuItemID             string   `json:"menu_item_id"`
	ComboTypeID            string   `json:"combo_type_id"`
	BaseChoiceID           string   `json:"base_choice_id"`
	SelectedEntreeIDs      []string `json:"selected_entree_ids"`
	AdditionalEntreeIDs    []string `json:"additional_entree_ids"`
	Quantity               int      `json:"quantity"`
	DeclaredUnitPriceCents int64    `json:"unit_price_cents"`
}

// UnmarshalJSON coerces the wire shape into the tagged union, rejecting
// unknown kinds and malformed ids before any business logic runs.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var wire cartLineWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if wire.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidationFailed)
	}

	switch LineKind(wire.Kind) {
	case LineKindRegular:
		itemID, err := parseLineID(wire.MenuItemID, "menu_item_id")
		if err != nil {
			return err
		}
		*l = CartLine{
			Kind:                   LineKindRegular,
			MenuItemID:             itemID,
			Quantity:               wire.Quantity,
			DeclaredUnitPriceCents: wire.DeclaredUnitPriceCents,
		}
		return nil

	case LineKindCombo:
		comboID, err := parseLineID(wire.ComboTypeID, "combo_type_id")
		if err != nil {
			return err
		}
		line := CartLine{
			Kind:                   LineKindCombo,
			ComboTypeID:            comboID,
			Quantity:               wire.Quantity,
			DeclaredUnitPriceCents: wire.DeclaredUnitPriceCents,
		}
		if wire.BaseChoiceID != "" {
			baseID, err := parseLineID(wire.BaseChoiceID, "base_choice_id")
			if err != nil {
				return err
			}
			line.BaseChoiceID = &baseID
		}
		if line.SelectedEntreeIDs, err = parseLineIDs(wire.SelectedEntreeIDs, "selected_entree_ids"); err != nil {
			return err
		}
		if line.AdditionalEntreeIDs, err = parseLineIDs(wire.AdditionalEntreeIDs, "additional_entree_ids"); err != nil {
			return err
		}
		*l = line
		return nil

	default:
		return fmt.Errorf("%w: unknown cart line kind %q", ErrValidationFailed, wire.Kind)
	}
}

// SelectionIDs returns the deduplicated union of every menu item the combo
// line references. Duplicate picks (two of the same entree) are allowed and
// collapse to one id here; availability is checked on distinct ids only.
func (l CartLine) SelectionIDs() []snowflake.ID {
	seen := make(map[snowflake.ID]struct{})
	ids := make([]snowflake.ID, 0, len(l.SelectedEntreeIDs)+len(l.AdditionalEntreeIDs)+1)

	add := func(id snowflake.ID) {
		if id == 0 {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, id := range l.SelectedEntreeIDs {
		add(id)
	}
	for _, id := range l.AdditionalEntreeIDs {
		add(id)
	}
	if l.BaseChoiceID != nil {
		add(*l.BaseChoiceID)
	}
	return ids
}

func parseLineID(raw, field string) (snowflake.ID, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrValidationFailed, field)
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", ErrValidationFailed, field)
	}
	return id, nil
}

func parseLineIDs(raw []string, field string) ([]snowflake.ID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]snowflake.ID, 0, len(raw))
	for _, entry := range raw {
		if entry == "" {
			continue
		}
		id, err := snowflake.ParseString(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id in %s", ErrValidationFailed, field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
