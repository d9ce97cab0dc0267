package service

import (
	"encoding/hex"
	"strings"

	"yildizli-agac-api/modules/proposal/entity"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint identifies an ordered proposal set. The same slots in the same
// order always produce the same value; reordering changes it.
func Fingerprint(set entity.ProposalSet) string {
	var b strings.Builder
	for _, s := range set {
		hour, err := NormalizeHour(s.Hour)
		if err != nil {
			hour = s.Hour
		}
		b.WriteString(s.Date)
		b.WriteByte('|')
		b.WriteString(hour)
		b.WriteByte('\n')
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
