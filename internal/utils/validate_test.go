package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/contentfeed/internal/models"
)

type sample struct {
	Page  int    `query:"page" validate:"min=1"`
	Name  string `json:"name,omitempty" validate:"required"`
	Count int    `validate:"max=3"`
}

func TestValidateStructReportsFieldNames(t *testing.T) {
	assert.NoError(t, ValidateStruct(sample{Page: 1, Name: "x", Count: 3}))

	err := ValidateStruct(sample{Count: 4})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"page": "min", "name": "required", "Count": "max"}, verr.Fields)
}
