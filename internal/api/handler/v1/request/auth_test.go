package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Username:   "alice",
		Email:      "alice@x.com",
		Password:   "password1",
		NationalID: "111122223333",
		Phone:      "9998887777",
	}

	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		wantErr bool
	}{
		{"valid", func(r *RegisterRequest) {}, false},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, true},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, true},
		{"national id too short", func(r *RegisterRequest) { r.NationalID = "12345678901" }, true},
		{"national id too long", func(r *RegisterRequest) { r.NationalID = "1234567890123" }, true},
		{"national id with letters", func(r *RegisterRequest) { r.NationalID = "11112222333a" }, true},
		{"phone too short", func(r *RegisterRequest) { r.Phone = "999888777" }, true},
		{"phone too long", func(r *RegisterRequest) { r.Phone = "99988877776" }, true},
		{"password too short", func(r *RegisterRequest) { r.Password = "pass1" }, true},
		{"password without digit", func(r *RegisterRequest) { r.Password = "passwords" }, true},
		{"password without letter", func(r *RegisterRequest) { r.Password = "123456789" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "alice@x.com", Password: "password1"}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&LoginRequest{Email: "", Password: "password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "alice@x.com", Password: ""}).Validate())
	assert.Error(t, (&LoginRequest{Email: "nope", Password: "password1"}).Validate())
}
