package errors

// Transaction rejection kinds. The codes are part of the wire format and
// must never be renumbered.
var (
	VoterAlreadyExists            = NewError(0, "voter already exists")
	VoterPermissionRequired       = NewError(1, "voter permission required")
	ExcessMaxProposals            = NewError(2, "excess max proposals")
	ProposalNoneExists            = NewError(3, "proposal does not exist")
	VoterAlreadyVoted             = NewError(4, "voter already voted")
	ChairpersonPermissionRequired = NewError(5, "chairperson permission required")
	VoterNoneExists               = NewError(6, "voter does not exist")
	VoterInactive                 = NewError(7, "voter is inactive")
	VotingNoneExists              = NewError(8, "voting does not exist")
	BallotNoneExists              = NewError(9, "ballot does not exist")
	BallotAlreadyPosted           = NewError(10, "ballot already posted")
	InvalidProposals              = NewError(11, "invalid proposals")
	PostDuplicateProposalId       = NewError(12, "duplicate proposal id in ballot")
	UnknownSender                 = NewError(13, "unknown sender")
	VotedProposalNoneExists       = NewError(14, "voted proposal does not exist")
	AlreadyVoted                  = NewError(15, "already voted")
	VotingClosed                  = NewError(16, "voting is closed")
	VoterActiveStateSelfChange    = NewError(17, "voter can not change own active state")
	InvalidSignature              = NewError(18, "signature verification failed")
	BadPublicAddress              = NewError(19, "failed to parse public address")
	InvalidOperation              = NewError(20, "invalid operation")
	UnknownOperationType          = NewError(21, "unknown operation type")
	InvalidTransactionHash        = NewError(22, "transaction hash does not match")
	TransactionNotFound           = NewError(23, "transaction not found")
	TransactionAlreadyExists      = NewError(24, "transaction already exists")
	TransactionPoolFull           = NewError(25, "transaction pool is full")
	BlockNotFound                 = NewError(26, "block not found")
	BlockAlreadyExists            = NewError(27, "block already exists")
)

// Storage and proof failures. They never leave the engine as is; the engine
// reports them as `InternalError`.
var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")
	NotImplemented             = NewError(103, "not implemented")
	InvalidProof               = NewError(104, "invalid merkle proof")
	InvalidQueryString         = NewError(105, "found invalid query string")
	TooManyRequests            = NewError(106, "too many requests")
	HTTPServerError            = NewError(107, "Internal Server Error")
)

var InternalError = NewError(255, "internal error")
