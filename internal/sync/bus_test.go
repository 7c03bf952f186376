package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnnouncementJSONForm(t *testing.T) {
	raw := Announcement{Kind: KindDataSync, URL: "https://node.example/api/v1/sync/snapshots/abc"}.Encode()

	a, ok := DecodeAnnouncement(raw)

	require.True(t, ok)
	assert.Equal(t, KindDataSync, a.Kind)
	assert.Equal(t, "https://node.example/api/v1/sync/snapshots/abc", a.URL)
}

func TestDecodeAnnouncementLegacyForm(t *testing.T) {
	a, ok := DecodeAnnouncement("[DATA_SYNC] https://node.example/snap/42 please fetch")

	require.True(t, ok)
	assert.Equal(t, "https://node.example/snap/42", a.URL)
}

func TestDecodeAnnouncementRejectsOtherTraffic(t *testing.T) {
	cases := []string{
		"hello everyone",
		"{\"kind\":\"chat\",\"url\":\"https://x\"}",
		"{\"kind\":\"data-sync\"}",
		"[DATA_SYNC] no url here",
		"",
		"{broken json",
	}
	for _, raw := range cases {
		_, ok := DecodeAnnouncement(raw)
		assert.False(t, ok, raw)
	}
}

func TestDecodeAnnouncementLegacyStripsTrailingParen(t *testing.T) {
	a, ok := DecodeAnnouncement("[DATA_SYNC] (https://node.example/snap/42)")

	require.True(t, ok)
	assert.Equal(t, "https://node.example/snap/42", a.URL)
}
