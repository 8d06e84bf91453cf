package domain

import (
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// The display payload is the single-column serialization that lets a
// variable-shape cart line survive in the append-only order_items table and
// still reconstruct for receipts, kitchen display, and re-ordering. The
// codec is versioned so the on-disk format can evolve without a parse-and-hope
// read path.
const payloadVersion = 1

const (
	payloadTypeRegular = "regular"
	payloadTypeCombo   = "combo"
)

// DisplayPayload is the decoded form of OrderItem.DisplayPayload.
type DisplayPayload struct {
	Version int    `json:"v"`
	Type    string `json:"type"`
	Name    string `json:"name"`

	ComboTypeID         string   `json:"combo_type_id,omitempty"`
	BaseChoiceID        string   `json:"base_choice_id,omitempty"`
	SelectedEntreeIDs   []string `json:"selected_entree_ids,omitempty"`
	AdditionalEntreeIDs []string `json:"additional_entree_ids,omitempty"`
}

// IsCombo reports whether the payload describes a combo line.
func (p DisplayPayload) IsCombo() bool { return p.Type == payloadTypeCombo }

// EncodeRegularPayload serializes a plain line: just the item name as it read
// at order time.
func EncodeRegularPayload(name string) (datatypes.JSON, error) {
	return marshalPayload(DisplayPayload{
		Version: payloadVersion,
		Type:    payloadTypeRegular,
		Name:    name,
	})
}

// EncodeComboPayload serializes a combo selection with every id needed to
// rebuild it.
func EncodeComboPayload(line CartLine, comboName string) (datatypes.JSON, error) {
	payload := DisplayPayload{
		Version:             payloadVersion,
		Type:                payloadTypeCombo,
		Name:                comboName,
		ComboTypeID:         line.ComboTypeID.String(),
		SelectedEntreeIDs:   idsToStrings(line.SelectedEntreeIDs),
		AdditionalEntreeIDs: idsToStrings(line.AdditionalEntreeIDs),
	}
	if line.BaseChoiceID != nil {
		payload.BaseChoiceID = line.BaseChoiceID.String()
	}
	return marshalPayload(payload)
}

// DecodePayload parses a persisted display payload, rejecting unknown
// versions and types instead of guessing.
func DecodePayload(raw datatypes.JSON) (*DisplayPayload, error) {
	var payload DisplayPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode display payload: %w", err)
	}
	if payload.Version != payloadVersion {
		return nil, fmt.Errorf("unsupported display payload version %d", payload.Version)
	}
	switch payload.Type {
	case payloadTypeRegular, payloadTypeCombo:
		return &payload, nil
	default:
		return nil, fmt.Errorf("unknown display payload type %q", payload.Type)
	}
}

func marshalPayload(payload DisplayPayload) (datatypes.JSON, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func idsToStrings(ids []snowflake.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
