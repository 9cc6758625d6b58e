package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filterRequest struct {
	Filter  string   `validate:"required,osmfilter"`
	Filters []string `validate:"omitempty,dive,osmfilter"`
}

func TestValidate_OSMFilter(t *testing.T) {
	assert.NoError(t, Validate(filterRequest{Filter: "diet:vegan"}))
	assert.NoError(t, Validate(filterRequest{Filter: "cuisine:pizza", Filters: []string{"diet:gluten_free"}}))

	tests := []string{"vegan", "diet:", ":vegan", `diet:"x"`, "diet:ve gan", "diet:x]"}
	for _, f := range tests {
		t.Run(f, func(t *testing.T) {
			assert.Error(t, Validate(filterRequest{Filter: f}))
		})
	}

	assert.Error(t, Validate(filterRequest{Filter: "diet:vegan", Filters: []string{"bad"}}))
}

func TestDetails(t *testing.T) {
	err := Validate(filterRequest{Filter: "bad"})
	require.Error(t, err)

	details := Details(err)
	assert.Equal(t, "osmfilter", details["filterRequest.Filter"])

	plain := Details(errors.New("boom"))
	assert.Equal(t, "boom", plain["error"])
}
