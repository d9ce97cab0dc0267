package validator

import (
	"strings"

	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/validator"
	"yildizli-agac-api/modules/account/dto"
)

const minPasswordLength = 6

var genders = []string{"ERKEK", "KADIN", "DIGER"}

func studentEmail(result *validator.Result, email string) {
	if !result.Required("email", email, "E-posta adresi gerekli") {
		return
	}
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), constants.StudentEmailDomain) {
		result.Add("email", "Lütfen YTÜ öğrenci mail adresinizi kullanın ("+constants.StudentEmailDomain+")")
		return
	}
	result.Email("email", strings.TrimSpace(email), "Geçerli bir e-posta adresi girin")
}

func ValidateRegisterRequest(req *dto.RegisterRequest) *validator.Result {
	result := &validator.Result{}
	studentEmail(result, req.Email)
	if result.Required("password", req.Password, "Şifre gerekli") {
		result.MinLength("password", req.Password, minPasswordLength, "Şifre en az 6 karakter olmalı")
	}
	if req.Password != req.ConfirmPassword {
		result.Add("confirm_password", "Şifreler eşleşmiyor!")
	}
	if result.Required("gender", req.Gender, "Cinsiyet seçin") {
		result.OneOf("gender", req.Gender, genders, "Geçersiz cinsiyet")
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *validator.Result {
	result := &validator.Result{}
	result.Required("email", req.Email, "E-posta adresi gerekli")
	result.Required("password", req.Password, "Şifre gerekli")
	return result
}

func ValidateVerifyRequest(req *dto.VerifyRequest) *validator.Result {
	result := &validator.Result{}
	result.Required("token", req.Token, "Doğrulama kodu gerekli")
	return result
}

func ValidateForgotPasswordRequest(req *dto.ForgotPasswordRequest) *validator.Result {
	result := &validator.Result{}
	studentEmail(result, req.Email)
	return result
}
