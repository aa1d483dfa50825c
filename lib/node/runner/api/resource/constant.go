package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLTransactions      = APIPrefix + APIVersionV1 + "/transactions"
	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLVoters            = APIPrefix + APIVersionV1 + "/voters/{id}"
	URLChairperson       = APIPrefix + APIVersionV1 + "/chairperson"
	URLVotings           = APIPrefix + APIVersionV1 + "/votings"
	URLVoting            = APIPrefix + APIVersionV1 + "/votings/{id}"
	URLVotingResult      = APIPrefix + APIVersionV1 + "/votings/{id}/result"
	URLBallots           = APIPrefix + APIVersionV1 + "/ballots"
	URLBallot            = APIPrefix + APIVersionV1 + "/ballots/{id}"
	URLBallotVotes       = APIPrefix + APIVersionV1 + "/ballots/{id}/votes"
	URLBallotVote        = APIPrefix + APIVersionV1 + "/ballots/{id}/votes/{slot}"
	URLBallotResult      = APIPrefix + APIVersionV1 + "/ballots/{id}/result"
	URLBlocks            = APIPrefix + APIVersionV1 + "/blocks"
	URLBlock             = APIPrefix + APIVersionV1 + "/blocks/{id}"
	URLState             = APIPrefix + APIVersionV1 + "/state"
)
