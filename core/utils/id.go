package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Unambiguous alphabet for codes a participant may read aloud: no 0/O, 1/I/L.
const confirmationAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateConfirmationCode returns a code like "YA-7K3M9Q2P" for a finalized
// proposal set.
func GenerateConfirmationCode() (string, error) {
	id, err := gonanoid.Generate(confirmationAlphabet, 8)
	if err != nil {
		return "", err
	}
	return "YA-" + id, nil
}
