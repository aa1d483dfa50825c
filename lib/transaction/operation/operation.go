package operation

import (
	"encoding/json"
	"reflect"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

type OperationType string

const (
	TypeCreateVoter         OperationType = "create-voter"
	TypeChangeChairperson   OperationType = "change-chairperson"
	TypeSetVoterActiveState OperationType = "set-voter-active-state"
	TypeNewProposals        OperationType = "new-proposals"
	TypeVoteProposal        OperationType = "vote-proposal"
	TypePostBallot          OperationType = "post-ballot"
	TypeVoteBallot          OperationType = "vote-ballot"
)

var Types = []OperationType{
	TypeCreateVoter,
	TypeChangeChairperson,
	TypeSetVoterActiveState,
	TypeNewProposals,
	TypeVoteProposal,
	TypePostBallot,
	TypeVoteBallot,
}

func IsValidOperationType(oType string) bool {
	for _, t := range Types {
		if string(t) == oType {
			return true
		}
	}
	return false
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreateVoter:
		t = TypeCreateVoter
	case ChangeChairperson:
		t = TypeChangeChairperson
	case SetVoterActiveState:
		t = TypeSetVoterActiveState
	case NewProposals:
		t = TypeNewProposals
	case VoteProposal:
		t = TypeVoteProposal
	case PostBallot:
		t = TypePostBallot
	case VoteBallot:
		t = TypeVoteBallot
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}
	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation is self consistent, without looking at the
	// state.
	//
	// Returns:
	//   An `error` if that operation is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error
}

// Targetable is implemented by operations which act on another voter.
type Targetable interface {
	TargetAddress() string
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	if !IsValidOperationType(string(o.H.Type)) {
		return errors.UnknownOperationType
	}

	if o.B == nil {
		return errors.InvalidOperation
	}

	if t, err := NewOperation(o.B); err != nil {
		return err
	} else if t.H.Type != o.H.Type {
		return errors.InvalidOperation
	}

	return o.B.IsWellFormed(conf)
}

func (o Operation) MakeHashString() string {
	return base58.Encode(common.MustMakeObjectHash(o))
}

func (o Operation) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreateVoter:
		return &CreateVoter{}, nil
	case TypeChangeChairperson:
		return &ChangeChairperson{}, nil
	case TypeSetVoterActiveState:
		return &SetVoterActiveState{}, nil
	case TypeNewProposals:
		return &NewProposals{}, nil
	case TypeVoteProposal:
		return &VoteProposal{}, nil
	case TypePostBallot:
		return &PostBallot{}, nil
	case TypeVoteBallot:
		return &VoteBallot{}, nil
	default:
		return nil, errors.UnknownOperationType
	}
}
