package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     error
		errContains string
	}{
		{name: "valid json", body: `{"name":"abc"}`},
		{name: "invalid json", body: `{"name":"abc",}`, errContains: "invalid character"},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "unknown field", body: `{"name":"abc","age":3}`, errContains: "unknown field"},
		{name: "trailing data", body: `{"name":"abc"}{"name":"x"}`, errContains: "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest

			err := DecodeJSON(httptest.NewRecorder(), req, &dst)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			default:
				require.NoError(t, err)
				assert.Equal(t, "abc", dst.Name)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "abc"}))

	err := ValidateRequest(sampleRequest{Name: "toolong"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "max", verrs[0].Tag())

	require.Error(t, ValidateRequest(sampleRequest{}))
}
