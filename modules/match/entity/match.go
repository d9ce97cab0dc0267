package entity

import (
	"time"

	"yildizli-agac-api/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Gender string

const (
	GenderMale   Gender = "ERKEK"
	GenderFemale Gender = "KADIN"
	GenderOther  Gender = "DIGER"
)

// Match is one participant's side of a gift-exchange pair. Each pair is two
// rows, one per participant, pointing at each other through CounterpartID.
type Match struct {
	entity.BaseEntity
	UserID                   uuid.UUID      `db:"user_id" json:"user_id"`
	CounterpartID            uuid.UUID      `db:"counterpart_id" json:"counterpart_id"`
	CounterpartFirstName     string         `db:"counterpart_first_name" json:"-"`
	CounterpartLastName      string         `db:"counterpart_last_name" json:"-"`
	CounterpartEmail         string         `db:"counterpart_email" json:"-"`
	CounterpartGender        Gender         `db:"counterpart_gender" json:"counterpart_gender"`
	CounterpartPreferences   pq.StringArray `db:"counterpart_preferences" json:"counterpart_preferences"`
	FavoriteColor            string         `db:"favorite_color" json:"favorite_color"`
	Hobbies                  string         `db:"hobbies" json:"hobbies"`
	CounterpartProposedTimes pq.StringArray `db:"counterpart_proposed_times" json:"counterpart_proposed_times"`
	MatchDate                time.Time      `db:"match_date" json:"match_date"`
	DeliveryDate             time.Time      `db:"delivery_date" json:"delivery_date"`
	RevealedAt               *time.Time     `db:"revealed_at" json:"revealed_at,omitempty"`
}

func (m *Match) Revealed() bool {
	return m.RevealedAt != nil
}
