package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingContactTreatsBlankAsMissing(t *testing.T) {
	ref := func(s string) *string { return &s }
	cases := []struct {
		name    string
		contact *string
		missing bool
	}{
		{"nil", nil, true},
		{"empty", ref(""), true},
		{"blank", ref(" \t "), true},
		{"linked", ref("c-1"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.missing, ProjectedUserView{ContactID: tc.contact}.MissingContact())
		})
	}
}

func TestDisplayLayoutRoundTrips(t *testing.T) {
	at := time.Date(2024, 2, 29, 23, 30, 5, 0, time.UTC)
	text := at.Format(DisplayLayout)
	assert.Equal(t, "29/02/2024, 23:30:05", text)

	back, err := time.Parse(DisplayLayout, text)
	require.NoError(t, err)
	assert.True(t, at.Equal(back))
}
