// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

const (
	ExpirationTimeParam = "expiration-time"
	ExpirationDateParam = "expiration-date"
)

// ResolveExpiration picks the expiration timestamp of a currency network from
// at most one of an explicit unix timestamp or a date. Zero means the network
// never expires.
func ResolveExpiration(timestamp *uint64, date *string) (uint64, error) {
	switch {
	case timestamp != nil && date != nil:
		return 0, NewInvalidParameterError(
			ExpirationDateParam,
			*date,
			"both --%s and --%s have been specified",
			ExpirationDateParam,
			ExpirationTimeParam,
		)
	case timestamp != nil:
		return *timestamp, nil
	case date != nil:
		t, err := ParseDate(*date)
		if err != nil {
			return 0, err
		}
		if t.Unix() < 0 {
			return 0, NewInvalidParameterError(ExpirationDateParam, *date, "dates before 1970 cannot be used as expiration")
		}
		return uint64(t.Unix()), nil
	default:
		return 0, nil
	}
}
