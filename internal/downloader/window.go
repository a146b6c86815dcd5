package downloader

import (
	"github.com/gammazero/deque"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
)

// window holds the most recently delivered blocks, oldest first, with contiguous heights.
type window struct {
	entries *deque.Deque[*chain.Entry]
	size    int
}

func newWindow(size uint32) *window {
	return &window{
		entries: deque.New[*chain.Entry](int(size)),
		size:    int(size),
	}
}

// push appends entry, evicting the oldest block once the window is full.
func (w *window) push(entry *chain.Entry) {
	w.entries.PushBack(entry)
	if w.entries.Len() > w.size {
		w.entries.PopFront()
	}
	windowSizeSet(w.entries.Len())
}

func (w *window) pop() *chain.Entry {
	entry := w.entries.PopBack()
	windowSizeSet(w.entries.Len())
	return entry
}

// tip returns the last delivered block, or nil.
func (w *window) tip() *chain.Entry {
	if w.entries.Len() == 0 {
		return nil
	}
	return w.entries.Back()
}

func (w *window) at(i int) *chain.Entry {
	return w.entries.At(i)
}

func (w *window) len() int {
	return w.entries.Len()
}

func (w *window) full() bool {
	return w.entries.Len() >= w.size
}

func (w *window) clear() {
	w.entries.Clear()
	windowSizeSet(0)
}
