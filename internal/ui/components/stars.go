// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/ui/styles"
)

// StarRating is the 1-5 star picker of the feedback modal. Zero means no
// rating has been chosen yet.
type StarRating struct {
	value int
}

// Value returns the chosen rating, 0 when unset.
func (r StarRating) Value() int { return r.value }

// Set picks n stars, clamped to [0, MaxRating].
func (r *StarRating) Set(n int) {
	switch {
	case n < 0:
		n = 0
	case n > model.MaxRating:
		n = model.MaxRating
	}
	r.value = n
}

// Inc adds one star.
func (r *StarRating) Inc() { r.Set(r.value + 1) }

// Dec removes one star. It never goes below one once a rating was chosen.
func (r *StarRating) Dec() {
	if r.value > model.MinRating {
		r.Set(r.value - 1)
	}
}

// Reset clears the rating.
func (r *StarRating) Reset() { r.value = 0 }

// View renders the five stars, filled up to the current value.
func (r StarRating) View(theme *styles.Theme) string {
	var b strings.Builder
	for i := model.MinRating; i <= model.MaxRating; i++ {
		if i > model.MinRating {
			b.WriteString(" ")
		}
		if i <= r.value {
			b.WriteString(theme.StarOn.Render(styles.GlyphStarOn))
		} else {
			b.WriteString(theme.StarOff.Render(styles.GlyphStarOff))
		}
	}
	return b.String()
}
