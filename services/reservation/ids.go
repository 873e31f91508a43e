package reservation

import (
	"math/rand/v2"
	"strconv"
)

// Confirmation numbers are six decimal digits so they can be read back to
// the caller digit by digit.
const maxIDAttempts = 25

func generateConfirmationNumber() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// uniqueConfirmationNumber retries generation until the candidate is unused
// among all known (confirmed and cancelled) reservations. The caller must
// hold the store's write lock. The attempt bound is practically
// unreachable given the id space versus expected volume.
func (s *DefaultReservationStore) uniqueConfirmationNumber() (string, error) {
	for range maxIDAttempts {
		id := generateConfirmationNumber()
		if _, taken := s.records[id]; !taken {
			return id, nil
		}
	}
	return "", &ConfigurationError{Message: "confirmation number space exhausted"}
}
