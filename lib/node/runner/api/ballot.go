package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
	"boscoin.io/ballot/lib/storage"
)

func ballotHash(r *http.Request) (common.Hash, error) {
	hash, err := common.ParseHash(mux.Vars(r)["id"])
	if err != nil {
		return common.Hash{}, errors.InvalidQueryString.Describe("ballot hash")
	}

	return hash, nil
}

func (api NetworkHandlerAPI) GetBallotsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	readFunc := func(st *storage.LevelDBBackend) (*resource.ResourceList, error) {
		schema := ballot.NewSchema(st)

		total, err := schema.BallotsLen()
		if err != nil {
			return nil, err
		}

		pg := newPage(p, total)
		var ballots []ballot.BallotData
		if pg.count > 0 {
			if ballots, err = schema.Ballots(pg.start, pg.count); err != nil {
				return nil, err
			}
		}

		var rs []resource.Resource
		for _, position := range pg.positions() {
			b := ballots[position-pg.start]
			list, err := api.proposalList(b)
			if err != nil {
				return nil, err
			}
			rs = append(rs, resource.NewBallot(&b, &list, nil))
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

// GetBallotHandler shows the ballot with the proof of its record in the
// ballots index.
func (api NetworkHandlerAPI) GetBallotHandler(w http.ResponseWriter, r *http.Request) {
	hash, err := ballotHash(r)
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

	data, proof, err := ballot.NewSchema(st).BallotWithProof(hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if data == nil {
		httputils.WriteJSONError(w, errors.BallotNoneExists)
		return
	}

	list, err := api.proposalList(*data)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBallot(data, &list, proof))
}

func (api NetworkHandlerAPI) GetBallotVotesHandler(w http.ResponseWriter, r *http.Request) {
	hash, err := ballotHash(r)
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

	votes, err := ballot.NewSchema(st).Votes(hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if votes == nil {
		httputils.WriteJSONError(w, errors.BallotNoneExists)
		return
	}

	rs := []resource.Resource{}
	for i, vote := range votes {
		rs = append(rs, resource.NewVoteSlot(hash.String(), i, api.validator(i), vote, nil))
	}

	self := resource.NewResourceList(rs, r.URL.String(), "", "")
	httputils.MustWriteJSON(w, http.StatusOK, self)
}

// GetBallotVoteHandler shows one vote slot with the proof of the slot in
// the votes of the ballot.
func (api NetworkHandlerAPI) GetBallotVoteHandler(w http.ResponseWriter, r *http.Request) {
	hash, err := ballotHash(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	slot, err := strconv.ParseUint(mux.Vars(r)["slot"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidQueryString.Describe("slot"))
		return
	}

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	schema := ballot.NewSchema(st)
	if data, err := schema.Ballot(hash); err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if data == nil {
		httputils.WriteJSONError(w, errors.BallotNoneExists)
		return
	}

	vote, proof, err := schema.VoteSlotWithProof(hash, slot)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if vote == nil {
		httputils.WriteJSONError(w, errors.StorageRecordDoesNotExist.Describe("vote slot"))
		return
	}

	httputils.MustWriteJSON(
		w,
		http.StatusOK,
		resource.NewVoteSlot(hash.String(), int(slot), api.validator(int(slot)), *vote, proof),
	)
}

func (api NetworkHandlerAPI) GetBallotResultHandler(w http.ResponseWriter, r *http.Request) {
	hash, err := ballotHash(r)
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

	result, err := ballot.NewSchema(st).BallotResult(hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if result == nil {
		httputils.WriteJSONError(w, errors.BallotNoneExists)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBallotResult(result))
}

func (api NetworkHandlerAPI) validator(id int) string {
	if id < len(api.conf.Validators) {
		return api.conf.Validators[id]
	}

	return ""
}
