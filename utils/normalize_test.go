package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.23, Round2(-1.234))
	assert.Equal(t, 0.0, Round2(0))
}

type createDTO struct {
	Name  string
	Price float64
	Count int
}

func TestNormalizeDTO(t *testing.T) {
	in := createDTO{Name: "  Widget  ", Price: 9.999, Count: 3}
	NormalizeDTO(&in)

	assert.Equal(t, "Widget", in.Name)
	assert.Equal(t, 10.0, in.Price)
	assert.Equal(t, 3, in.Count) // untouched
}

func TestNormalizeDTOIgnoresNonPointer(t *testing.T) {
	in := createDTO{Name: " x "}
	NormalizeDTO(in) // value, not pointer: no-op, no panic
	assert.Equal(t, " x ", in.Name)
}

type patchDTO struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price"`
	CustomerID *uint    `json:"customer_id"`
	Hidden     *string  `json:"-"`
	Untagged   *string
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  Widget "
	price := 9.999
	in := patchDTO{Name: &name, Price: &price}
	NormalizePtrDTO(&in)

	assert.Equal(t, "Widget", *in.Name)
	assert.Equal(t, 10.0, *in.Price)
	assert.Nil(t, in.CustomerID) // nils stay nil
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := "Widget"
	id := uint(7)
	hidden := "secret"
	in := patchDTO{Name: &name, CustomerID: &id, Hidden: &hidden}

	updates := UpdatesFromPtrDTO(&in, map[string]string{"customer_id": "c_id"})

	require.Len(t, updates, 2)
	assert.Equal(t, "Widget", updates["name"])
	assert.Equal(t, uint(7), updates["c_id"])
	_, ok := updates["-"]
	assert.False(t, ok, "json:\"-\" fields never leak into updates")
}

func TestUpdatesFromPtrDTOSkipsNils(t *testing.T) {
	updates := UpdatesFromPtrDTO(&patchDTO{}, nil)
	assert.Empty(t, updates)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault(" 5 ", 1))
	assert.Equal(t, 1, ParseIntDefault("abc", 1))
	assert.Equal(t, 1, ParseIntDefault("-3", 1)) // negatives fall back
	assert.Equal(t, 1, ParseIntDefault("", 1))
}

func TestJSONLinesRoundTrip(t *testing.T) {
	blob, err := JSONLines([]string{" Payment within 14 days. ", "", "Bank: AT12 3456"})
	require.NoError(t, err)

	lines := LinesFromJSON(blob)
	assert.Equal(t, []string{"Payment within 14 days.", "Bank: AT12 3456"}, lines)
}

func TestLinesFromJSONMalformed(t *testing.T) {
	assert.Nil(t, LinesFromJSON(nil))
	assert.Nil(t, LinesFromJSON([]byte(`{"not":"an array"}`)))
}
