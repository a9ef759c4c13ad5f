// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		text     string
		expected time.Time
	}{
		{"2020-09-28", time.Date(2020, 9, 28, 0, 0, 0, 0, time.UTC)},
		{"2020-09-28T13:56", time.Date(2020, 9, 28, 13, 56, 0, 0, time.UTC)},
		{"2020-09-28T13:56:10", time.Date(2020, 9, 28, 13, 56, 10, 0, time.UTC)},
		{"2020-09-28 13:56:10.5", time.Date(2020, 9, 28, 13, 56, 10, 500_000_000, time.UTC)},
		{"2020-09-28T13:56:10Z", time.Date(2020, 9, 28, 13, 56, 10, 0, time.UTC)},
		{"2020-09-28T13:56+02:00", time.Date(2020, 9, 28, 11, 56, 0, 0, time.UTC)},
		{"2020-09-28T1356-0130", time.Date(2020, 9, 28, 15, 26, 0, 0, time.UTC)},
		{"20200928", time.Date(2020, 9, 28, 0, 0, 0, 0, time.UTC)},
		{"2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-09", time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-W40", time.Date(2020, 9, 28, 0, 0, 0, 0, time.UTC)},
		{"2020-W40-3", time.Date(2020, 9, 30, 0, 0, 0, 0, time.UTC)},
		{"2020W403", time.Date(2020, 9, 30, 0, 0, 0, 0, time.UTC)},
		{"2021-W01-1", time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"2020-272", time.Date(2020, 9, 28, 0, 0, 0, 0, time.UTC)},
		{"2020-366", time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require := require.New(t)
			parsed, err := ParseDate(tt.text)
			require.NoError(err)
			require.True(tt.expected.Equal(parsed), "expected %s, got %s", tt.expected, parsed)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"tomorrow",
		"2020-13-01",
		"2021-02-29",
		"2020-09-31",
		"2021-366",
		"2020-W54",
		"2020-09-28T25:00",
		"2020-09-28T13:60",
		"2020-09-28T13:56+25:00",
		"28.09.2020",
	} {
		t.Run(text, func(t *testing.T) {
			require := require.New(t)
			_, err := ParseDate(text)
			require.ErrorIs(err, ErrInvalidParameter)
			require.Contains(err.Error(), "cannot be parsed as a date")
		})
	}
}

func TestResolveExpiration(t *testing.T) {
	require := require.New(t)
	ts := uint64(100)
	date := "2020-09-28"

	expiration, err := ResolveExpiration(nil, nil)
	require.NoError(err)
	require.Zero(expiration)

	expiration, err = ResolveExpiration(&ts, nil)
	require.NoError(err)
	require.Equal(uint64(100), expiration)

	_, err = ResolveExpiration(&ts, &date)
	require.ErrorIs(err, ErrInvalidParameter)

	expiration, err = ResolveExpiration(nil, &date)
	require.NoError(err)
	require.Equal(uint64(1_601_251_200), expiration)

	bad := "someday"
	_, err = ResolveExpiration(nil, &bad)
	require.ErrorIs(err, ErrInvalidParameter)
	require.Contains(err.Error(), "someday")

	old := "1969-12-31"
	_, err = ResolveExpiration(nil, &old)
	require.ErrorIs(err, ErrInvalidParameter)
}
