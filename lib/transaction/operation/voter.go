package operation

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
)

// CreateVoter registers the transaction source as a voter.
type CreateVoter struct {
	Name string `json:"name"`
}

func NewCreateVoter(name string) CreateVoter {
	return CreateVoter{Name: name}
}

func (o CreateVoter) IsWellFormed(common.Config) error {
	if len(o.Name) < 1 {
		return errors.InvalidOperation.Describe("empty name")
	}
	return nil
}

type ChangeChairperson struct {
	Target string `json:"target"`
}

func NewChangeChairperson(target string) ChangeChairperson {
	return ChangeChairperson{Target: target}
}

func (o ChangeChairperson) IsWellFormed(common.Config) error {
	if _, err := keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}
	return nil
}

func (o ChangeChairperson) TargetAddress() string {
	return o.Target
}

type SetVoterActiveState struct {
	Target string `json:"target"`
	Active bool   `json:"active"`
}

func NewSetVoterActiveState(target string, active bool) SetVoterActiveState {
	return SetVoterActiveState{Target: target, Active: active}
}

func (o SetVoterActiveState) IsWellFormed(common.Config) error {
	if _, err := keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}
	return nil
}

func (o SetVoterActiveState) TargetAddress() string {
	return o.Target
}

// EncodeRLP encodes `Active` as 0 or 1.
func (o SetVoterActiveState) EncodeRLP(w io.Writer) error {
	var active uint
	if o.Active {
		active = 1
	}

	return rlp.Encode(w, struct {
		Target string
		Active uint
	}{
		Target: o.Target,
		Active: active,
	})
}
