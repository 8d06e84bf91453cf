package domain

import "github.com/bwmarrin/snowflake"

// Equivalence maps a combo type id to the combo type whose availability set
// it reuses. Several combo types sharing one selectable-item pool is a static
// platform decision, declared once, never inferred per row. It must be
// applied before any ComboAvailability query.
type Equivalence map[snowflake.ID]snowflake.ID

// Canonical returns the availability-set id for the given combo type.
// Unmapped ids are their own canonical id.
func (e Equivalence) Canonical(id snowflake.ID) snowflake.ID {
	if canonical, ok := e[id]; ok {
		return canonical
	}
	return id
}

// ParseEquivalence builds an Equivalence from string pairs as held in the
// platform config file. Entries that do not parse as ids are skipped rather
// than failing the whole table.
func ParseEquivalence(raw map[string]string) Equivalence {
	eq := make(Equivalence, len(raw))
	for from, to := range raw {
		fromID, err := snowflake.ParseString(from)
		if err != nil {
			continue
		}
		toID, err := snowflake.ParseString(to)
		if err != nil {
			continue
		}
		eq[fromID] = toID
	}
	return eq
}
