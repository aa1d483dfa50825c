package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
)

// State shows the roots of the committed state as of the latest block.
type State struct {
	latest block.Block
	names  []string
	hashes []common.Hash
	root   common.Hash
}

func NewState(latest block.Block, names []string, hashes []common.Hash, root common.Hash) *State {
	return &State{latest: latest, names: names, hashes: hashes, root: root}
}

func (s State) GetMap() hal.Entry {
	roots := hal.Entry{}
	for i, name := range s.names {
		if i < len(s.hashes) {
			roots[name] = s.hashes[i]
		}
	}

	return hal.Entry{
		"height":     s.latest.Height,
		"block":      s.latest.Hash,
		"timestamp":  s.latest.Timestamp,
		"state_root": s.root,
		"roots":      roots,
	}
}

func (s State) Resource() *hal.Resource {
	r := hal.NewResource(s, s.LinkSelf())
	r.AddLink("block", hal.NewLink(expandURL(URLBlock, s.latest.Hash)))

	return r
}

func (s State) LinkSelf() string {
	return URLState
}
