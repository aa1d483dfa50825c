package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetVoterHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]
	if _, err := keypair.Parse(address); err != nil {
		httputils.WriteJSONError(w, errors.BadPublicAddress)
		return
	}

	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	voter, proof, err := ballot.NewSchema(st).VoterWithProof(address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if voter == nil {
		httputils.WriteJSONError(w, errors.VoterNoneExists)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewVoter(voter, proof))
}

func (api NetworkHandlerAPI) GetChairpersonHandler(w http.ResponseWriter, r *http.Request) {
	st, err := api.snapshot()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	defer st.Release()

	chairperson, err := ballot.NewSchema(st).Chairperson()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if chairperson == nil {
		httputils.WriteJSONError(w, errors.VoterNoneExists.Describe("no chairperson"))
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewChairperson(chairperson))
}
