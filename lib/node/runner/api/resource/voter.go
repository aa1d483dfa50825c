package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/merkle"
)

type Voter struct {
	v     *ballot.Voter
	proof *merkle.Proof
}

func NewVoter(v *ballot.Voter, proof *merkle.Proof) *Voter {
	return &Voter{v: v, proof: proof}
}

func (v Voter) GetMap() hal.Entry {
	m := hal.Entry{
		"address":   v.v.Address,
		"name":      v.v.Name,
		"weight":    v.v.Weight,
		"is_active": v.v.IsActive,
	}
	if v.proof != nil {
		m["proof"] = v.proof
	}

	return m
}

func (v Voter) Resource() *hal.Resource {
	return hal.NewResource(v, v.LinkSelf())
}

func (v Voter) LinkSelf() string {
	return expandURL(URLVoters, v.v.Address)
}

type Chairperson struct {
	c *ballot.Chairperson
}

func NewChairperson(c *ballot.Chairperson) *Chairperson {
	return &Chairperson{c: c}
}

func (c Chairperson) GetMap() hal.Entry {
	return hal.Entry{
		"address": c.c.Address,
		"name":    c.c.Name,
	}
}

func (c Chairperson) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("voter", hal.NewLink(expandURL(URLVoters, c.c.Address)))

	return r
}

func (c Chairperson) LinkSelf() string {
	return URLChairperson
}
