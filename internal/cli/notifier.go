package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// BannerNotifier prints failure notices as a boxed banner
type BannerNotifier struct {
	mu    sync.Mutex
	out   io.Writer
	count int
}

// NewBannerNotifier writes banners to out
func NewBannerNotifier(out io.Writer) *BannerNotifier {
	return &BannerNotifier{out: out}
}

// Notify implements engine.Notifier
func (n *BannerNotifier) Notify(operation string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++

	message := fmt.Sprintf("%s failed: %s", operation, errors.GetUserMessage(err))
	rule := strings.Repeat("!", len(message)+4)
	fmt.Fprintf(n.out, "%s\n! %s !\n%s\n", rule, message, rule)
	logging.Debugf("notice for %s: %v", operation, err)
}

// Count returns how many notices have been shown
func (n *BannerNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
