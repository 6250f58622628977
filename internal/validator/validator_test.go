package validator_test

import (
	"net/http"
	"testing"

	"handicrafts/internal/usecase"
	"handicrafts/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
	Email     string `json:"email" validate:"omitempty,email"`
	Action    string `json:"action" validate:"omitempty,oneof=login register"`
}

func ptr(v int64) *int64 { return &v }

func TestValidate(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name string
		in   sample
		msg  string
	}{
		{name: "ok", in: sample{ProductID: ptr(1), Quantity: 2}},
		{name: "required uses json name", in: sample{}, msg: "product_id is required"},
		{name: "negative", in: sample{ProductID: ptr(1), Quantity: -1}, msg: "Invalid quantity"},
		{name: "email", in: sample{ProductID: ptr(1), Email: "nope"}, msg: "Invalid email format"},
		{name: "oneof", in: sample{ProductID: ptr(1), Action: "x"}, msg: "action must be one of [login register]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			assert.Equal(t, tt.msg, he.Message)
		})
	}
}

func TestValidate_ZeroPointerIsPresent(t *testing.T) {
	// 0でもキーがあればrequiredは通る（範囲チェックはusecase側）
	err := validator.New().Validate(&sample{ProductID: ptr(0)})
	assert.NoError(t, err)
}
