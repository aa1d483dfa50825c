package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
	"boscoin.io/ballot/lib/storage"
)

// GetBlocksHandler lists the blocks by height; the position of a block in
// the list is its height.
func (api NetworkHandlerAPI) GetBlocksHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	readFunc := func(st *storage.LevelDBBackend) (*resource.ResourceList, error) {
		var total uint64
		latest, err := block.GetLatestBlock(st)
		if err == nil {
			total = latest.Height + 1
		} else if !errors.BlockNotFound.Is(errors.FromError(err)) {
			return nil, err
		}

		pg := newPage(p, total)

		var rs []resource.Resource
		for _, height := range pg.positions() {
			b, err := block.GetBlockByHeight(st, height)
			if err != nil {
				return nil, err
			}
			rs = append(rs, resource.NewBlock(&b))
		}

		return pg.resourceList(rs), nil
	}

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	list, err := readFunc(st)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, list)
}

func (api NetworkHandlerAPI) GetBlockHandler(w http.ResponseWriter, r *http.Request) {
	hashOrHeight := mux.Vars(r)["hashOrHeight"]

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	var b block.Block
	if height, perr := strconv.ParseUint(hashOrHeight, 10, 64); perr == nil {
		b, err = block.GetBlockByHeight(st, height)
	} else {
		b, err = block.GetBlock(st, hashOrHeight)
	}
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBlock(&b))
}

// GetStateHandler shows the roots of the state committed by the latest
// block.
func (api NetworkHandlerAPI) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	latest, err := block.GetLatestBlock(st)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	schema := ballot.NewSchema(st)
	hashes, err := schema.StateHash()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	root, err := schema.StateRoot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewState(latest, ballot.StateHashNames, hashes, root))
}
