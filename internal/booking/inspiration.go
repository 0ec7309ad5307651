package booking

import (
	"regexp"
	"strings"

	"github.com/hcnails/studio/internal/models"
)

var (
	imageExtPattern    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	hostingHostPattern = regexp.MustCompile(`instagram\.com|pinterest\.com`)
)

// Board accumulates inspiration-image URLs one at a time, in order.
type Board struct {
	urls []string
}

// AddPasted accepts pasted text when it looks like a URL. Returns whether
// the text was taken, so the caller knows to clear its input.
func (b *Board) AddPasted(text string) bool {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		b.urls = append(b.urls, text)
		return true
	}
	return false
}

// AddTyped accepts typed input once it ends in a known image extension or
// mentions a known hosting domain.
func (b *Board) AddTyped(text string) bool {
	if text == "" {
		return false
	}
	if imageExtPattern.MatchString(text) || hostingHostPattern.MatchString(text) {
		b.urls = append(b.urls, text)
		return true
	}
	return false
}

// Remove drops the entry at index; out-of-range indexes are ignored.
func (b *Board) Remove(index int) {
	if index < 0 || index >= len(b.urls) {
		return
	}
	b.urls = append(b.urls[:index], b.urls[index+1:]...)
}

func (b *Board) URLs() models.StringList {
	cp := make(models.StringList, len(b.urls))
	copy(cp, b.urls)
	return cp
}
