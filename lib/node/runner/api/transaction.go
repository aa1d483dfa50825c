package api

import (
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network/httputils"
	"boscoin.io/ballot/lib/node/runner/api/resource"
)

const MaxTransactionBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) PostTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidOperation.Describe(err))
		return
	}

	if api.PostTransaction == nil {
		httputils.WriteJSONError(w, errors.NotImplemented)
		return
	}

	tx, err := api.PostTransaction(body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewTransactionPost(tx))
}

// GetTransactionByHashHandler shows the transaction with the outcome of its
// execution, or as pending while it waits in the pool.
func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	readFunc := func() (resource.Resource, error) {
		st, err := api.snapshot()
		if err != nil {
			return nil, err
		}
		defer st.Release()

		bt, err := block.GetBlockTransaction(st, hash)
		if err == nil {
			result, err := ballot.NewSchema(st).TransactionResult(hash)
			if err != nil {
				return nil, err
			}
			return resource.NewTransaction(&bt, result), nil
		} else if !errors.TransactionNotFound.Is(errors.FromError(err)) {
			return nil, err
		}

		if api.pool != nil {
			if tx, found := api.pool.Get(hash); found {
				return resource.NewTransactionPost(tx), nil
			}
		}

		return nil, errors.TransactionNotFound
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
