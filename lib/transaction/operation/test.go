package operation

import (
	"boscoin.io/ballot/lib/common/keypair"
)

func MakeTestCreateVoter(name string) Operation {
	return MustNewOperation(NewCreateVoter(name))
}

func MakeTestChangeChairperson() Operation {
	return MustNewOperation(NewChangeChairperson(keypair.Random().Address()))
}
