package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanSpaces(t *testing.T) {
	require.Equal(t, "a b c", CleanSpaces("  a\t b \n c  "))
	require.Equal(t, "", CleanSpaces(" \n\t "))
}

func TestContainsWord(t *testing.T) {
	require.True(t, ContainsWord("built on AWS sensors", "AWS"))
	require.True(t, ContainsWord("built on aws sensors", "AWS"))
	require.True(t, ContainsWord("with Bristol Myers Squibb data", "Bristol Myers Squibb"))
	require.False(t, ContainsWord("an AWSome hack", "AWS"))
	require.False(t, ContainsWord("anything", ""))
}

func TestSplitAtGap(t *testing.T) {
	before, after, ok := SplitAtGap("EcoTrack        1st place, Best Sustainability Hack")
	require.True(t, ok)
	require.Equal(t, "EcoTrack", before)
	require.Equal(t, "1st place, Best Sustainability Hack", after)

	_, _, ok = SplitAtGap("NightOwl alone")
	require.False(t, ok)
}
