package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
	"boscoin.io/ballot/lib/storage"
)

func votingID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.InvalidQueryString.Describe("voting id")
	}

	return id, nil
}

func (api NetworkHandlerAPI) GetVotingsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	readFunc := func(st *storage.LevelDBBackend) (*resource.ResourceList, error) {
		schema := ballot.NewSchema(st)

		total, err := schema.VotingsLen()
		if err != nil {
			return nil, err
		}

		pg := newPage(p, total)
		var votings []ballot.Voting
		if pg.count > 0 {
			if votings, err = schema.Votings(pg.start, pg.count); err != nil {
				return nil, err
			}
		}

		var rs []resource.Resource
		for _, position := range pg.positions() {
			v := votings[position-pg.start]
			rs = append(rs, resource.NewVoting(&v, nil, nil))
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

func (api NetworkHandlerAPI) GetVotingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := votingID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	schema := ballot.NewSchema(st)

	voting, proof, err := schema.VotingWithProof(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if voting == nil {
		httputils.WriteJSONError(w, errors.VotingNoneExists)
		return
	}

	proposals, err := schema.Proposals(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewVoting(voting, proposals, proof))
}

// GetVotingResultHandler tallies the voting as of the latest block; `done`
// tells whether the deadline has passed at that block.
func (api NetworkHandlerAPI) GetVotingResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := votingID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	now, err := ledgerTime(st)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	result, err := ballot.NewSchema(st).VotingResult(id, now)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if result == nil {
		httputils.WriteJSONError(w, errors.VotingNoneExists)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewVotingResult(result))
}
