package mixer

import (
	"fmt"

	"github.com/ausocean/videomixer/pad"
)

// ChildrenCount returns the number of attached pads, mirroring
// gst_basemixer_child_proxy_get_children_count.
func (m *Mixer) ChildrenCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.inputs)
}

// ChildByIndex returns the pad at position i in attach order, mirroring
// gst_basemixer_child_proxy_get_child_by_index. The index is stable
// across AddPad/RemovePad calls only between those calls, the same
// caveat the original's GSList-index access carries.
func (m *Mixer) ChildByIndex(i int) (*pad.Pad, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if i < 0 || i >= len(m.inputs) {
		return nil, fmt.Errorf("mixer: child index %d out of range [0,%d)", i, len(m.inputs))
	}
	return m.inputs[i].pad, nil
}
