package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueInputArgs_ZeroValuesBecomeNull(t *testing.T) {
	args := IssueInput{}.Args()
	require.Len(t, args, 5)
	require.Nil(t, args[0])
	require.Nil(t, args[1])

	resolver := int64(4)
	desc := "details"
	args = IssueInput{Title: "Crash", CreatorID: 3, ResolverID: &resolver, Description: &desc}.Args()
	require.Equal(t, "Crash", args[0])
	require.Equal(t, int64(3), args[1])
	require.Equal(t, &resolver, args[2])
	require.Equal(t, (*int64)(nil), args[3])
	require.Equal(t, &desc, args[4])
}
