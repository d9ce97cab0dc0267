package validator

import (
	"fmt"
	"time"

	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/core/validator"
	"yildizli-agac-api/modules/match/dto"
	"yildizli-agac-api/modules/match/entity"
)

var genders = []string{string(entity.GenderMale), string(entity.GenderFemale), string(entity.GenderOther)}

// ValidateMatchImport checks one entry of an import batch. Field names are
// prefixed with the entry index.
func ValidateMatchImport(index int, m dto.MatchImport) *validator.Result {
	result := &validator.Result{}
	field := func(name string) string { return fmt.Sprintf("matches[%d].%s", index, name) }

	userOK := result.Required(field("user_id"), m.UserID, "user_id is required")
	counterpartOK := result.Required(field("counterpart_id"), m.CounterpartID, "counterpart_id is required")
	if userOK && counterpartOK && utils.UserUUID(m.UserID) == utils.UserUUID(m.CounterpartID) {
		result.Add(field("counterpart_id"), "a user cannot be matched with themselves")
	}

	result.Required(field("counterpart.first_name"), m.Counterpart.FirstName, "first_name is required")
	result.Required(field("counterpart.last_name"), m.Counterpart.LastName, "last_name is required")
	result.Email(field("counterpart.email"), m.Counterpart.Email, "email is invalid")
	if m.Counterpart.Gender != "" {
		result.OneOf(field("counterpart.gender"), m.Counterpart.Gender, genders, "gender must be ERKEK, KADIN or DIGER")
	}

	if _, err := time.Parse(time.DateOnly, m.MatchDate); err != nil {
		result.Add(field("match_date"), "match_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(time.DateOnly, m.DeliveryDate); err != nil {
		result.Add(field("delivery_date"), "delivery_date must be YYYY-MM-DD")
	}
	return result
}
