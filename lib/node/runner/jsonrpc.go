package runner

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/storage"
)

const MaxLimitListOptions uint64 = 10000

type DBEchoArgs string
type DBEchoResult string

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult storage.IterItem

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
}

// jsonrpcDBApp reads the raw records of the committed storage. Every call
// works on its own snapshot.
type jsonrpcDBApp struct {
	st *storage.LevelDBBackend
}

func withSnapshot(st *storage.LevelDBBackend, f func(*storage.LevelDBBackend) error) error {
	snapshot, err := st.Snapshot()
	if err != nil {
		return err
	}
	defer snapshot.Release()

	return f(snapshot)
}

func (j *jsonrpcDBApp) Echo(r *http.Request, args *DBEchoArgs, result *DBEchoResult) error {
	*result = DBEchoResult(*args)
	return nil
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	return withSnapshot(j.st, func(snapshot *storage.LevelDBBackend) error {
		found, err := snapshot.Has(string(*args))
		*result = DBHasResult(found)
		return err
	})
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	return withSnapshot(j.st, func(snapshot *storage.LevelDBBackend) error {
		value, err := snapshot.GetRaw(string(*args))
		if err != nil {
			return err
		}
		*result = DBGetResult{Key: []byte(*args), Value: value}
		return nil
	})
}

func (j *jsonrpcDBApp) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	result.Limit = args.Options.Limit
	if result.Limit < 1 || result.Limit > MaxLimitListOptions {
		result.Limit = MaxLimitListOptions
	}
	result.Items = []storage.IterItem{}

	return withSnapshot(j.st, func(snapshot *storage.LevelDBBackend) error {
		options := storage.NewDefaultListOptions(args.Options.Reverse, args.Options.Cursor, result.Limit)
		next, closeFunc := snapshot.GetIterator(args.Prefix, options)
		defer closeFunc()

		for item, ok := next(); ok; item, ok = next() {
			result.Items = append(result.Items, item)
		}
		return nil
	})
}

type StateHashArgs struct{}

type StateHashResult struct {
	Names  []string
	Hashes []common.Hash
	Root   common.Hash
}

// jsonrpcStateApp exposes the roots other nodes compare to agree on the
// state.
type jsonrpcStateApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcStateApp) Hash(r *http.Request, args *StateHashArgs, result *StateHashResult) error {
	return withSnapshot(j.st, func(snapshot *storage.LevelDBBackend) (err error) {
		schema := ballot.NewSchema(snapshot)
		if result.Hashes, err = schema.StateHash(); err != nil {
			return
		}
		if result.Root, err = schema.StateRoot(); err != nil {
			return
		}
		result.Names = ballot.StateHashNames
		return
	})
}

// NewJSONRPCHandler serves the "DB" and "State" services, like
// `{"method": "State.Hash", "params": [{}], "id": 1}`, to browsers of any
// origin.
func NewJSONRPCHandler(st *storage.LevelDBBackend) http.Handler {
	s := rpc.NewServer()
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&jsonrpcDBApp{st: st}, "DB")
	s.RegisterService(&jsonrpcStateApp{st: st}, "State")

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept", "Authorization"}),
	)(s)
}
