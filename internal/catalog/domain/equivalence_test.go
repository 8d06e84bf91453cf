package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestEquivalenceCanonical(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	family := node.Generate()
	dinner := node.Generate()
	party := node.Generate()

	eq := Equivalence{
		dinner: family,
		party:  family,
	}

	assert.Equal(t, family, eq.Canonical(dinner))
	assert.Equal(t, family, eq.Canonical(party))
	// Unmapped ids canonicalize to themselves.
	assert.Equal(t, family, eq.Canonical(family))

	other := node.Generate()
	assert.Equal(t, other, eq.Canonical(other))
}

func TestParseEquivalenceSkipsBadEntries(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	from := node.Generate()
	to := node.Generate()

	eq := ParseEquivalence(map[string]string{
		from.String():  to.String(),
		"not-a-number": to.String(),
		from.String() + "0": "also-bad",
	})

	assert.Len(t, eq, 1)
	assert.Equal(t, to, eq.Canonical(from))
}
