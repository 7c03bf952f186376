// Package sync implements the cloud synchronization channel: snapshot
// push/pull against a project-scoped object store and an announcement bus
// that tells other clients a new snapshot exists. Delivery is at-least-once;
// safety comes from merges being idempotent, not from the channel.
package sync

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// KindDataSync marks a snapshot announcement.
const KindDataSync = "data-sync"

// legacyMarker is the freeform text form older clients publish.
const legacyMarker = "[DATA_SYNC]"

var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// Announcement is the message schema carried on the bus.
type Announcement struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Encode renders the announcement for publishing.
func (a Announcement) Encode() string {
	raw, _ := json.Marshal(a)
	return string(raw)
}

// DecodeAnnouncement accepts either the JSON schema or the legacy
// "[DATA_SYNC] <url>" text form, extracting the first http(s) URL from the
// latter. The second return is false for messages that are not sync
// announcements; the bus is shared and other traffic is ignored.
func DecodeAnnouncement(raw string) (Announcement, bool) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "{") {
		var a Announcement
		if err := json.Unmarshal([]byte(trimmed), &a); err == nil && a.Kind == KindDataSync && a.URL != "" {
			return a, true
		}
		return Announcement{}, false
	}

	if !strings.Contains(trimmed, legacyMarker) {
		return Announcement{}, false
	}
	url := urlPattern.FindString(trimmed)
	if url == "" {
		return Announcement{}, false
	}
	return Announcement{Kind: KindDataSync, URL: url}, true
}

// Bus is the abstract pub/sub channel announcements travel on.
type Bus interface {
	// Publish sends one message to every current subscriber.
	Publish(ctx context.Context, message string) error
	// Subscribe returns a stream of raw messages plus an unsubscribe
	// function. Unsubscribing must be called on teardown so listeners do
	// not leak across session lifecycles.
	Subscribe(ctx context.Context) (<-chan string, func(), error)
}
