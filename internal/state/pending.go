package state

import "sync"

// PendingImport is a one-shot slot for an imported scene waiting to be
// loaded. A later Store overwrites an unconsumed earlier one.
type PendingImport struct {
	mu   sync.Mutex
	data *SceneData
}

func (p *PendingImport) Store(d SceneData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = &d
}

// Take empties the slot and returns what was in it.
func (p *PendingImport) Take() (SceneData, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return SceneData{}, false
	}
	d := *p.data
	p.data = nil
	return d, true
}
