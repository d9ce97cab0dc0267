package validator

import (
	"testing"

	"yildizli-agac-api/modules/account/dto"
)

func TestValidateRegisterRequest(t *testing.T) {
	valid := dto.RegisterRequest{
		Email:           "ayse.demir@std.yildiz.edu.tr",
		Password:        "kardan",
		ConfirmPassword: "kardan",
		Gender:          "KADIN",
	}

	tests := []struct {
		name   string
		mutate func(r *dto.RegisterRequest)
		field  string
	}{
		{"valid", func(r *dto.RegisterRequest) {}, ""},
		{"upper case domain", func(r *dto.RegisterRequest) { r.Email = "Ayse.Demir@STD.YILDIZ.EDU.TR" }, ""},
		{"wrong domain", func(r *dto.RegisterRequest) { r.Email = "ayse@gmail.com" }, "email"},
		{"short password", func(r *dto.RegisterRequest) { r.Password, r.ConfirmPassword = "kar", "kar" }, "password"},
		{"mismatch", func(r *dto.RegisterRequest) { r.ConfirmPassword = "kardann" }, "confirm_password"},
		{"bad gender", func(r *dto.RegisterRequest) { r.Gender = "X" }, "gender"},
		{"missing gender", func(r *dto.RegisterRequest) { r.Gender = "" }, "gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			result := ValidateRegisterRequest(&req)
			if tt.field == "" {
				if result.HasError() {
					t.Fatalf("unexpected errors: %+v", result.Errors)
				}
				return
			}
			if !result.HasError() || result.Errors[0].Field != tt.field {
				t.Fatalf("errors = %+v, want field %s", result.Errors, tt.field)
			}
		})
	}
}

func TestValidateRegisterRequest_Messages(t *testing.T) {
	result := ValidateRegisterRequest(&dto.RegisterRequest{
		Email:           "ayse@gmail.com",
		Password:        "kardan",
		ConfirmPassword: "kartopu",
		Gender:          "ERKEK",
	})
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %+v", result.Errors)
	}
	if result.Errors[0].Message != "Lütfen YTÜ öğrenci mail adresinizi kullanın (@std.yildiz.edu.tr)" {
		t.Errorf("email message = %q", result.Errors[0].Message)
	}
	if result.Errors[1].Message != "Şifreler eşleşmiyor!" {
		t.Errorf("confirm message = %q", result.Errors[1].Message)
	}
}

func TestValidateForgotPasswordRequest(t *testing.T) {
	if r := ValidateForgotPasswordRequest(&dto.ForgotPasswordRequest{Email: "a.b@std.yildiz.edu.tr"}); r.HasError() {
		t.Fatalf("errors = %+v", r.Errors)
	}
	if r := ValidateForgotPasswordRequest(&dto.ForgotPasswordRequest{}); !r.HasError() {
		t.Fatal("expected error for empty email")
	}
}
