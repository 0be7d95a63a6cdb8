// Package common holds enumerations shared between the configuration layer
// and the rendering library. Keeping them out of config avoids pulling the
// whole configuration machinery into leaf packages that only need the values.
package common

// Provider of a video embed.
// ENUM(local, youtube, vimeo, unsupported)
type EmbedProvider int

func (p EmbedProvider) Embeddable() bool {
	return p == EmbedProviderYoutube || p == EmbedProviderVimeo
}

// Severity of an alert block.
// ENUM(info, warning, success, danger)
type AlertLevel int

// Kind of a card inside a card group.
// ENUM(event, address, document)
type CardKind int

// Style of a divider block.
// ENUM(dots, hr)
type DividerKind int
