package ballot

// Voter is registered once per address and never removed; only its active
// state changes.
type Voter struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Weight   uint64 `json:"weight"`
	IsActive bool   `json:"is_active"`
}

func NewVoter(address, name string, weight uint64) Voter {
	return Voter{
		Address:  address,
		Name:     name,
		Weight:   weight,
		IsActive: true,
	}
}

func (v Voter) WithActiveState(active bool) Voter {
	v.IsActive = active
	return v
}

type Chairperson struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func NewChairperson(v Voter) Chairperson {
	return Chairperson{Address: v.Address, Name: v.Name}
}
